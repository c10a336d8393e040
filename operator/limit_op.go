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

package operator

import (
	"context"
	"strconv"

	"github.com/rulego/mcpsql/dataset"
)

// LimitOp keeps the first N rows.
type LimitOp struct {
	BaseOp
	N int
}

func (o *LimitOp) Apply(_ context.Context, in *dataset.Table) (*dataset.Table, error) {
	out := dataset.NewBuilder(in.Columns()...)
	for i := 0; i < in.Len() && i < o.N; i++ {
		out.Add(in.Row(i))
	}
	return out.Build(), nil
}

func (o *LimitOp) Explain() string {
	return "Limit(" + strconv.Itoa(o.N) + ")"
}
