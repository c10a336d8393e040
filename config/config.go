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

// Package config loads the settings of the mcpsql command.
//
// Values come, lowest priority first, from built-in defaults, a
// .mcpsql.yaml file, .env, .env.local and finally the process
// environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/rulego/mcpsql/logger"
)

// AppFs is the file system config files are read from.
var AppFs = afero.NewOsFs()

// Config holds the settings of one run.
type Config struct {
	Driver       string        `mapstructure:"driver" yaml:"driver"`
	DSN          string        `mapstructure:"dsn" yaml:"dsn,omitempty"`
	Host         string        `mapstructure:"host" yaml:"host"`
	Port         int           `mapstructure:"port" yaml:"port"`
	Database     string        `mapstructure:"database" yaml:"database"`
	User         string        `mapstructure:"user" yaml:"user"`
	Password     string        `mapstructure:"password" yaml:"-"`
	Table        string        `mapstructure:"table" yaml:"table"`
	ExcelPath    string        `mapstructure:"excel_path" yaml:"excel_path,omitempty"`
	Sheet        string        `mapstructure:"sheet" yaml:"sheet,omitempty"`
	LogLevel     string        `mapstructure:"log_level" yaml:"log_level"`
	QueryTimeout time.Duration `mapstructure:"query_timeout" yaml:"query_timeout"`
}

// binding ties a config key to its environment variable and default.
type binding struct {
	key, env string
	def      any
}

var bindings = []binding{
	{"driver", "MCP_DRIVER", "postgres"},
	{"dsn", "MCP_DSN", ""},
	{"host", "POSTGRES_HOST", "db"},
	{"port", "POSTGRES_PORT", 5432},
	{"database", "POSTGRES_DB", ""},
	{"user", "POSTGRES_USER", ""},
	{"password", "POSTGRES_PASSWORD", ""},
	{"table", "TABLE_NAME", "ventas"},
	{"excel_path", "EXCEL_PATH", ""},
	{"sheet", "EXCEL_SHEET", ""},
	{"log_level", "MCP_LOG_LEVEL", "info"},
	{"query_timeout", "MCP_QUERY_TIMEOUT", "30s"},
}

// Loader reads configuration from one directory.
type Loader struct {
	// Fs defaults to AppFs.
	Fs afero.Fs
	// Dir holds .mcpsql.yaml and the .env files. Empty means ".".
	Dir string
	// ConfigFile, when set, replaces the .mcpsql.yaml search.
	ConfigFile string
}

// Load reads configuration from the working directory.
func Load() (*Config, error) {
	return Loader{}.Load()
}

// Load reads and validates the configuration.
func (l Loader) Load() (*Config, error) {
	fs := l.Fs
	if fs == nil {
		fs = AppFs
	}
	dir := l.Dir
	if dir == "" {
		dir = "."
	}

	v := viper.New()
	v.SetFs(fs)
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, err
		}
	}

	if l.ConfigFile != "" {
		v.SetConfigFile(l.ConfigFile)
	} else {
		v.SetConfigName(".mcpsql")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "mcpsql"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	dotenv, err := readDotenv(fs, dir)
	if err != nil {
		return nil, err
	}
	for _, b := range bindings {
		val, ok := dotenv[b.env]
		if !ok {
			continue
		}
		// The process environment wins over .env files.
		if _, set := os.LookupEnv(b.env); set {
			continue
		}
		v.Set(b.key, val)
	}

	cfg := &Config{
		Driver:    strings.ToLower(strings.TrimSpace(v.GetString("driver"))),
		DSN:       v.GetString("dsn"),
		Host:      v.GetString("host"),
		Port:      v.GetInt("port"),
		Database:  v.GetString("database"),
		User:      v.GetString("user"),
		Password:  v.GetString("password"),
		Table:     v.GetString("table"),
		ExcelPath: v.GetString("excel_path"),
		Sheet:     v.GetString("sheet"),
		LogLevel:  v.GetString("log_level"),
	}
	if cfg.ExcelPath != "" {
		if cfg.ExcelPath, err = homedir.Expand(cfg.ExcelPath); err != nil {
			return nil, err
		}
	}
	if cfg.QueryTimeout, err = parseTimeout(v.GetString("query_timeout")); err != nil {
		return nil, err
	}
	if _, ok := logger.ParseLevel(cfg.LogLevel); !ok {
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	return cfg, nil
}

// readDotenv parses .env and then .env.local from dir. Later files win.
// Missing files are skipped.
func readDotenv(fs afero.Fs, dir string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(dir, name)
		if _, err := fs.Stat(path); err != nil {
			continue
		}
		f, err := fs.Open(path)
		if err != nil {
			return nil, err
		}
		values, err := godotenv.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for k, val := range values {
			merged[k] = val
		}
	}
	return merged, nil
}

// parseTimeout accepts a Go duration or a whole number of seconds.
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid query timeout %q", s)
	}
	return d, nil
}

// Level returns the configured log level.
func (c *Config) Level() logger.Level {
	level, _ := logger.ParseLevel(c.LogLevel)
	return level
}

// UseSheet reports whether queries run against a spreadsheet instead of a
// database.
func (c *Config) UseSheet() bool {
	return c.ExcelPath != ""
}

// DataSourceName returns the DSN for Driver. An explicit DSN is used as
// is; otherwise one is assembled from the connection fields.
func (c *Config) DataSourceName() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	addr := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	switch c.Driver {
	case "postgres", "pgx":
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     addr,
			Path:     "/" + c.Database,
			RawQuery: "sslmode=disable",
		}
		return u.String(), nil
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = addr
		mc.DBName = c.Database
		return mc.FormatDSN(), nil
	case "sqlite3":
		if c.Database == "" {
			return "", fmt.Errorf("sqlite3 needs MCP_DSN or POSTGRES_DB naming the database file")
		}
		return c.Database, nil
	}
	return "", fmt.Errorf("unsupported driver %q", c.Driver)
}
