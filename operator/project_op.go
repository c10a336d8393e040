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
	"strings"

	"github.com/rulego/mcpsql/dataset"
)

// ProjectOp keeps Columns in the given order. With Distinct, only the
// first of each set of equal output rows survives.
type ProjectOp struct {
	BaseOp
	Columns  []string
	Distinct bool
}

func (o *ProjectOp) Apply(ctx context.Context, in *dataset.Table) (*dataset.Table, error) {
	idx, err := columnIndexes(in, o.Columns)
	if err != nil {
		return nil, err
	}
	var seen map[dataset.GroupValues]struct{}
	if o.Distinct {
		seen = make(map[dataset.GroupValues]struct{})
	}

	out := dataset.NewBuilder(o.Columns...)
	for i := 0; i < in.Len(); i++ {
		if err := o.canceled(ctx, i); err != nil {
			return nil, err
		}
		src := in.Row(i)
		row := make(dataset.Row, len(idx))
		for j, k := range idx {
			row[j] = src[k]
		}
		if seen != nil {
			key := dataset.KeyOf(row...)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out.Add(row)
	}
	return out.Build(), nil
}

func (o *ProjectOp) Explain() string {
	name := "Project"
	if o.Distinct {
		name = "Distinct"
	}
	return name + "(" + strings.Join(o.Columns, ", ") + ")"
}
