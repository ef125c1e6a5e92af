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

package style

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a style document.
type Format string

const (
	// YAML also accepts JSON documents.
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf guesses the document format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", errors.Wrapf(ErrInvalidConfig, "unsupported style file %s", path)
}

// Load reads a style document from path. See Parse.
func Load(path string) (Style, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "read style file %s", path)
	}
	return Parse(data, format)
}

// Parse builds a style from a document such as
//
//	name: compact
//	base: short-prefix
//	fieldSeparator: "; "
//
// The keys other than name and base override the knobs of the base preset
// ("default" when absent). The result is validated but not registered.
func Parse(data []byte, format Format) (Style, error) {
	src := map[string]interface{}{}
	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &src)
	case TOML:
		err = toml.Unmarshal(data, &src)
	default:
		return nil, errors.Wrapf(ErrInvalidConfig, "unsupported style format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s style document", format)
	}

	name, _ := src["name"].(string)
	baseName, _ := src["base"].(string)
	delete(src, "name")
	delete(src, "base")
	if baseName == "" {
		baseName = NameDefault
	}
	base, err := Lookup(baseName)
	if err != nil {
		return nil, err
	}

	dst, err := toMap(base.Config())
	if err != nil {
		return nil, err
	}
	if err = mergo.Merge(&dst, &src, mergo.WithOverride); err != nil {
		return nil, errors.Wrap(err, "merge style document over its base")
	}
	cfg, err := fromMap(dst)
	if err != nil {
		return nil, err
	}
	return build(base, name, cfg)
}

func toMap(cfg Config) (map[string]interface{}, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "encode style config")
	}
	m := map[string]interface{}{}
	if err = yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "decode style config")
	}
	return m, nil
}

func fromMap(m map[string]interface{}) (Config, error) {
	var cfg Config
	data, err := yaml.Marshal(m)
	if err != nil {
		return cfg, errors.Wrap(err, "encode merged style config")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	return cfg, nil
}
