/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/structx"
	"dirpx.dev/structx/config"
	"dirpx.dev/structx/internal/logger"
	"dirpx.dev/structx/style"
)

// Viper keys of the style flags. The traverse.* keys live in package config.
const (
	keyStyle     = "style.name"
	keyStyleFile = "style.file"

	envPrefix      = "STRUCTX"
	defaultCfgName = ".structx.yaml"
)

type rootOpts struct {
	cfgFile string
	verbose bool
}

var longRootCmdDescription = `structx compares, orders and renders structured documents
(YAML, JSON or TOML) with the same traversal rules the structx library
applies to Go values.

Flags may also be set in $HOME/.structx.yaml or through STRUCTX_* environment
variables, e.g. STRUCTX_TRAVERSE_MAX_DEPTH=4 or STRUCTX_STYLE_NAME=json.
`

// NewRootCmd creates the root command for structx. Every call returns an
// independent command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "structx",
		Short: "Compare, order and render structured documents",
		Long:  longRootCmdDescription,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/"+defaultCfgName+")")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log traversal decisions at debug level")
	flags.String("style", style.NameDefault, "rendering style, one of: "+strings.Join(style.Names(), ", "))
	flags.String("style-file", "", "YAML or TOML style document, overrides --style")
	flags.StringSlice("exclude", nil, "field names to skip, also dropped as document keys")
	flags.Bool("ancestors", config.DefaultIncludeAncestors, "walk embedded structs as ancestors")
	flags.Bool("transient", config.DefaultIncludeTransient, "include fields tagged transient")
	flags.Bool("recursive", config.DefaultRecursive, "compare nested values structurally instead of with their own equality")
	flags.Int("max-depth", config.DefaultMaxDepth, "bound on reference descents, 0 is unlimited")
	flags.String("order", "", "field order: declaration or name")

	for key, flag := range map[string]string{
		keyStyle:            "style",
		keyStyleFile:        "style-file",
		config.KeyExclude:   "exclude",
		config.KeyAncestors: "ancestors",
		config.KeyTransient: "transient",
		config.KeyRecursive: "recursive",
		config.KeyMaxDepth:  "max-depth",
		config.KeyOrder:     "order",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	cmd.AddCommand(
		newRenderCmd(),
		newEqualCmd(),
		newCompareCmd(),
		newStylesCmd(),
	)
	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

// initConfig reads the config file and environment, then publishes the
// resulting options and style as the structx defaults.
func initConfig(v *viper.Viper, opts *rootOpts) error {
	if opts.verbose {
		structx.SetLogger(logger.New(logrus.DebugLevel))
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfgFile := opts.cfgFile
	if cfgFile == "" {
		// A missing default config file is not an error.
		if home, err := homedir.Dir(); err == nil {
			path := filepath.Join(home, defaultCfgName)
			if _, err := os.Stat(path); err == nil {
				cfgFile = path
			}
		}
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", cfgFile)
		}
		logger.Get().Debugf("using config file %s", cfgFile)
	}

	traversal, err := config.FromViper(v)
	if err != nil {
		return err
	}
	sty, err := styleOf(v)
	if err != nil {
		return err
	}
	structx.SetOptions(traversal...)
	structx.SetDefaultStyle(sty)
	return nil
}

func styleOf(v *viper.Viper) (style.Style, error) {
	if path := v.GetString(keyStyleFile); path != "" {
		path, err := homedir.Expand(path)
		if err != nil {
			return nil, errors.Wrap(err, "expand style file path")
		}
		return style.Load(path)
	}
	name := v.GetString(keyStyle)
	if name == "" {
		name = style.NameDefault
	}
	return style.Lookup(name)
}
