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

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func (e *exitError) ExitCode() int { return e.code }

func newEqualCmd() *cobra.Command {
	var exitCode bool
	cmd := &cobra.Command{
		Use:   "equal A B",
		Short: "Report whether two documents are structurally equal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := readPair(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			eq := structx.Equal(a, b)
			if _, err = fmt.Fprintln(cmd.OutOrStdout(), eq); err != nil {
				return err
			}
			if exitCode && !eq {
				return &exitError{code: 1, msg: fmt.Sprintf("%s and %s differ", args[0], args[1])}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit with status 1 when the documents differ")
	return cmd
}
