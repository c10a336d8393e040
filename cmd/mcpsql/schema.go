/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rulego/mcpsql/types"
	"github.com/rulego/mcpsql/utils/table"
)

func newSchemaCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "List the columns of the configured table or sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := opts.openEngine(cmd.Context())
			if err != nil {
				printError(cmd, "%v", err)
				return errReported
			}
			defer closeFn()

			s, err := engine.Schema(cmd.Context())
			if err != nil {
				printError(cmd, "%v", err)
				return errReported
			}
			w := cmd.OutOrStdout()
			switch opts.format {
			case "json":
				b, err := json.MarshalIndent(s.Columns(), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(b))
			case "yaml":
				return yaml.NewEncoder(w).Encode(s.Columns())
			default:
				r := types.NewResult("column", "type")
				for _, c := range s.Columns() {
					r.Rows = append(r.Rows, []any{c.Name, c.DataType})
				}
				fmt.Fprintf(w, "table %s\n", s.Table())
				table.Print(w, r)
			}
			return nil
		},
	}
}
