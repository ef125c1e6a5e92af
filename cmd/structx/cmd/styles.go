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
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"dirpx.dev/structx"
	"dirpx.dev/structx/style"
)

// sample is rendered with every style in the listing.
type sample struct {
	Name string   `structx:"name"`
	Tags []string `structx:"tags"`
}

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the registered rendering styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"name", "type name", "identity", "field names", "sample"})
			table.SetAutoWrapText(false)
			table.SetBorder(false)

			v := sample{Name: "a", Tags: []string{"x", "y"}}
			for _, name := range style.Names() {
				st, err := style.Lookup(name)
				if err != nil {
					return err
				}
				cfg := st.Config()
				out, err := structx.RenderWith(v, st)
				if err != nil {
					out = err.Error()
				}
				table.Append([]string{
					name,
					typeNameMode(cfg),
					strconv.FormatBool(cfg.UseIdentity),
					strconv.FormatBool(cfg.UseFieldNames),
					out,
				})
			}
			table.Render()
			return nil
		},
	}
}

func typeNameMode(cfg style.Config) string {
	switch {
	case !cfg.UseTypeName:
		return "none"
	case cfg.UseShortTypeName:
		return "short"
	default:
		return "full"
	}
}
