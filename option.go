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

package mcpsql

import (
	"io"
	"time"

	"github.com/rulego/mcpsql/logger"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger installs log as the package default and as the engine's
// logger. Backends created before this option keep their own logger.
//
// Example:
//
//	engine := mcpsql.New(backend, mcpsql.WithLogger(logger.NewLogger(logger.DEBUG, os.Stderr)))
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		logger.SetDefault(log)
		e.log = logger.GetDefault().Named("engine")
	}
}

// WithLogLevel sets the level of the default logger.
func WithLogLevel(level logger.Level) Option {
	return func(e *Engine) {
		logger.GetDefault().SetLevel(level)
	}
}

// WithLogOutput writes logs at level and above to output.
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return WithLogger(logger.NewLogger(level, output))
}

// WithDiscardLog disables logging.
func WithDiscardLog() Option {
	return WithLogger(logger.NewDiscardLogger())
}

// WithQueryTimeout bounds every query. Zero means no bound beyond the
// caller's context.
func WithQueryTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}
