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
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rulego/mcpsql/types"
	"github.com/rulego/mcpsql/utils/table"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query <mini-query>",
		Short: "Run a mini-query and print the result",
		Example: `  mcpsql query "SELECT SUM(Amount) WHERE Year=2025 AND Month=7"
  mcpsql query --sheet ventas.xlsx -f json "SELECT SalesRep, SUM(Amount) GROUP BY SalesRep"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mini := strings.Join(args, " ")
			engine, closeFn, err := opts.openEngine(cmd.Context())
			if err != nil {
				printError(cmd, "%v", err)
				return errReported
			}
			defer closeFn()

			resp := engine.Query(cmd.Context(), mini)
			if !resp.OK() && opts.format == "table" {
				printError(cmd, "%s (%s)\nquery: %s", resp.Failure.Error, resp.Failure.Kind, resp.Failure.Query)
				return errReported
			}
			if err := writeResponse(cmd.OutOrStdout(), opts.format, resp); err != nil {
				return err
			}
			if !resp.OK() {
				return errReported
			}
			return nil
		},
	}
}

// writeResponse prints resp in format. Failures are only printed here for
// the machine-readable formats.
func writeResponse(w io.Writer, format string, resp types.Response) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resp.Value()); err != nil {
			return err
		}
		return enc.Close()
	default:
		table.Print(w, resp.Result)
		return nil
	}
}
