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
	"github.com/rulego/mcpsql/dataset"
)

// rowGroup is the set of rows sharing one group key value.
type rowGroup struct {
	key  any
	rows []int
}

// groupRows partitions the rows of t by the value in column col, keeping
// groups in first-seen order. A negative col puts every row in one group,
// which exists even when t is empty.
func groupRows(t *dataset.Table, col int) []*rowGroup {
	if col < 0 {
		all := &rowGroup{rows: make([]int, t.Len())}
		for i := range all.rows {
			all.rows[i] = i
		}
		return []*rowGroup{all}
	}
	var groups []*rowGroup
	index := make(map[dataset.GroupValues]*rowGroup)
	for i := 0; i < t.Len(); i++ {
		v := t.Value(i, col)
		k := dataset.KeyOf(v)
		g, ok := index[k]
		if !ok {
			g = &rowGroup{key: v}
			index[k] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, i)
	}
	return groups
}
