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
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rulego/mcpsql/logger"
	"github.com/rulego/mcpsql/schema"
	"github.com/rulego/mcpsql/types"
)

// Backend executes mini-queries against one data source. sqlexec.Executor
// and tabular.Backend implement it.
type Backend interface {
	// Execute runs mini. Failures are *types.QueryError.
	Execute(ctx context.Context, mini string) (*types.Result, error)
	// Explain describes how mini would run without running it.
	Explain(ctx context.Context, mini string) (string, error)
	// Schema returns the columns mini-queries are resolved against.
	Schema(ctx context.Context) (*schema.Schema, error)
}

// Engine is the query boundary in front of a Backend. It bounds each query
// by a timeout and turns every failure, including panics, into a
// types.Failure.
//
// Example:
//
//	exec, err := sqlexec.Open(ctx, "postgres", dsn, "ventas")
//	if err != nil {
//		return err
//	}
//	engine := mcpsql.New(exec, mcpsql.WithQueryTimeout(10*time.Second))
//	resp := engine.Query(ctx, "SELECT SUM(Amount) WHERE Year=2025 AND Month=7")
type Engine struct {
	backend Backend
	timeout time.Duration
	log     logger.Logger
}

// New creates an engine over backend.
func New(backend Backend, options ...Option) *Engine {
	e := &Engine{backend: backend}
	for _, option := range options {
		option(e)
	}
	if e.log == nil {
		e.log = logger.GetDefault().Named("engine")
	}
	return e
}

// Backend returns the wrapped backend.
func (e *Engine) Backend() Backend {
	return e.backend
}

// Schema returns the backend's schema.
func (e *Engine) Schema(ctx context.Context) (*schema.Schema, error) {
	return e.backend.Schema(ctx)
}

// Explain returns the backend's description of mini.
func (e *Engine) Explain(ctx context.Context, mini string) (string, error) {
	return e.backend.Explain(ctx, mini)
}

// Execute runs mini within the configured timeout. A panic in the backend
// is reported as a BackendExecutionError.
func (e *Engine) Execute(ctx context.Context, mini string) (result *types.Result, err error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("panic while executing %q: %v\n%s", mini, r, debug.Stack())
			result = nil
			err = types.WrapQueryError(types.KindBackendExecutionError, mini, fmt.Errorf("internal error: %v", r))
		}
	}()

	start := time.Now()
	result, err = e.backend.Execute(ctx, mini)
	if err != nil {
		return nil, err
	}
	e.log.Debug("query %q returned %d rows in %s", mini, len(result.Rows), time.Since(start))
	return result, nil
}

// Query is Execute for the service boundary. It never fails: errors come
// back as a Failure that echoes mini.
func (e *Engine) Query(ctx context.Context, mini string) types.Response {
	result, err := e.Execute(ctx, mini)
	if err != nil {
		e.log.Warn("query %q failed: %v", mini, err)
		return types.Fail(err, mini)
	}
	return types.Succeed(result)
}
