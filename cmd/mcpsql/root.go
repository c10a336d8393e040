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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rulego/mcpsql"
	"github.com/rulego/mcpsql/config"
	"github.com/rulego/mcpsql/dataset"
	"github.com/rulego/mcpsql/logger"
	"github.com/rulego/mcpsql/sqlexec"
	"github.com/rulego/mcpsql/tabular"
)

// errReported is returned after the failure has already been printed.
var errReported = errors.New("query failed")

type rootOptions struct {
	configFile string
	driver     string
	dsn        string
	table      string
	sheet      string
	sheetName  string
	logLevel   string
	timeout    time.Duration
	format     string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "mcpsql",
		Short: "Run restricted SQL-like queries against a database or a spreadsheet",
		Long: `mcpsql answers mini-queries such as

    SELECT SUM(Amount) WHERE Year=2025 AND Month=7
    SELECT SUM(Amount) GROUP BY SalesRep ORDER BY SUM(Amount) DESC LIMIT 1

against a PostgreSQL, MySQL or SQLite table, or against an .xlsx/.csv
file given with --sheet. Settings come from .mcpsql.yaml, .env and the
environment (POSTGRES_HOST, POSTGRES_DB, TABLE_NAME, EXCEL_PATH, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default .mcpsql.yaml)")
	flags.StringVar(&opts.driver, "driver", "", "database driver: postgres, mysql or sqlite3")
	flags.StringVar(&opts.dsn, "dsn", "", "data source name, overrides the assembled one")
	flags.StringVar(&opts.table, "table", "", "table to query")
	flags.StringVar(&opts.sheet, "sheet", "", "query this .xlsx or .csv file instead of a database")
	flags.StringVar(&opts.sheetName, "sheet-name", "", "worksheet to read (default the first)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn, error or off")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-query timeout")
	flags.StringVarP(&opts.format, "format", "f", "table", "output format: table, json or yaml")

	root.AddCommand(newQueryCmd(opts), newCompileCmd(opts), newSchemaCmd(opts))
	return root
}

// load reads the configuration and applies the flags the user set.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Loader{ConfigFile: o.configFile}.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Driver = o.driver
	}
	if flags.Changed("dsn") {
		cfg.DSN = o.dsn
	}
	if flags.Changed("table") {
		cfg.Table = o.table
	}
	if flags.Changed("sheet") {
		cfg.ExcelPath = o.sheet
	}
	if flags.Changed("sheet-name") {
		cfg.Sheet = o.sheetName
	}
	if flags.Changed("log-level") {
		if _, ok := logger.ParseLevel(o.logLevel); !ok {
			return fmt.Errorf("invalid log level %q", o.logLevel)
		}
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("timeout") {
		cfg.QueryTimeout = o.timeout
	}
	switch o.format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid format %q", o.format)
	}
	logger.SetDefault(logger.NewLogger(cfg.Level(), cmd.ErrOrStderr()))
	o.cfg = cfg
	return nil
}

// openEngine connects the configured backend. The returned func releases
// it.
func (o *rootOptions) openEngine(ctx context.Context) (*mcpsql.Engine, func(), error) {
	cfg := o.cfg
	if cfg.UseSheet() {
		var loadOpts []dataset.LoadOption
		if cfg.Sheet != "" {
			loadOpts = append(loadOpts, dataset.WithSheet(cfg.Sheet))
		}
		b, err := tabular.Open(config.AppFs, cfg.ExcelPath, loadOpts)
		if err != nil {
			return nil, nil, err
		}
		return mcpsql.New(b, mcpsql.WithQueryTimeout(cfg.QueryTimeout)), func() {}, nil
	}

	dsn, err := cfg.DataSourceName()
	if err != nil {
		return nil, nil, err
	}
	exec, err := sqlexec.Open(ctx, cfg.Driver, dsn, cfg.Table)
	if err != nil {
		return nil, nil, err
	}
	return mcpsql.New(exec, mcpsql.WithQueryTimeout(cfg.QueryTimeout)), func() { exec.Close() }, nil
}

var errorColor = color.New(color.FgRed, color.Bold)

func printError(cmd *cobra.Command, format string, args ...any) {
	errorColor.Fprint(cmd.ErrOrStderr(), "error: ")
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
