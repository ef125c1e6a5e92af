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
	"fmt"

	"github.com/spf13/cobra"

	"dirpx.dev/structx"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render FILE...",
		Short: "Render documents with the selected style",
		Example: `  structx render config.yaml
  structx render --style json --order name a.toml b.yaml
  cat doc.json | structx render -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				doc, err := readDocument(path, cmd.InOrStdin())
				if err != nil {
					return err
				}
				out, err := structx.Render(doc)
				if err != nil {
					return err
				}
				if _, err = fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
