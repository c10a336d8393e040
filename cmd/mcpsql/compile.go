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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rulego/mcpsql/rsql"
	"github.com/rulego/mcpsql/schema"
	"github.com/rulego/mcpsql/sqlgen"
	"github.com/rulego/mcpsql/types"
)

func newCompileCmd(opts *rootOptions) *cobra.Command {
	var columns []string
	cmd := &cobra.Command{
		Use:   "compile <mini-query>",
		Short: "Print the SQL or the operator plan a mini-query compiles to",
		Long: `compile shows what query would run without running it.

With --columns the statement is compiled offline against the given
column names using the configured driver's dialect. Otherwise the
configured backend is opened and its schema is used; a sheet backend
prints its operator plan.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mini := strings.Join(args, " ")
			var (
				out string
				err error
			)
			if len(columns) > 0 {
				out, err = compileOffline(mini, opts.cfg.Driver, opts.cfg.Table, columns)
			} else {
				engine, closeFn, openErr := opts.openEngine(cmd.Context())
				if openErr != nil {
					printError(cmd, "%v", openErr)
					return errReported
				}
				defer closeFn()
				out, err = engine.Explain(cmd.Context(), mini)
			}
			if err != nil {
				printError(cmd, "%v", err)
				return errReported
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "compile offline against these column names")
	return cmd
}

func compileOffline(mini, driver, table string, columns []string) (string, error) {
	d, err := sqlgen.DialectFor(driver)
	if err != nil {
		return "", err
	}
	parsed, err := rsql.Parse(mini)
	if err != nil {
		return "", types.WrapQueryError(types.KindEmptyQuery, mini, err)
	}
	s := schema.FromNames(table, columns...)
	return sqlgen.Compile(s.ResolveCommand(parsed), table, d), nil
}
