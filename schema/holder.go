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

package schema

import (
	"context"
	"sync/atomic"

	"github.com/rulego/mcpsql/logger"
)

// Holder publishes the current schema snapshot. Readers never block;
// Reload swaps in a freshly built snapshot.
type Holder struct {
	table    string
	provider Provider
	current  atomic.Pointer[Schema]
	log      logger.Logger
}

// NewHolder creates a holder that loads table through provider.
func NewHolder(table string, provider Provider) *Holder {
	return &Holder{
		table:    table,
		provider: provider,
		log:      logger.GetDefault().Named("schema"),
	}
}

// SetLogger replaces the holder's logger.
func (h *Holder) SetLogger(l logger.Logger) {
	h.log = l
}

// Table returns the table the holder describes.
func (h *Holder) Table() string {
	return h.table
}

// Current returns the published snapshot, or nil before the first load.
func (h *Holder) Current() *Schema {
	return h.current.Load()
}

// Store publishes s.
func (h *Holder) Store(s *Schema) {
	h.current.Store(s)
}

// Get returns the published snapshot, loading it on first use.
func (h *Holder) Get(ctx context.Context) (*Schema, error) {
	if s := h.current.Load(); s != nil {
		return s, nil
	}
	return h.Reload(ctx)
}

// Reload builds a new snapshot from the provider and publishes it. On
// error the previous snapshot stays in place.
func (h *Holder) Reload(ctx context.Context) (*Schema, error) {
	columns, err := h.provider.Columns(ctx, h.table)
	if err != nil {
		return nil, err
	}
	s := New(h.table, columns)
	h.current.Store(s)
	h.log.Debug("loaded %d columns for %s: %v", s.Len(), h.table, s.ColumnNames())
	return s, nil
}
