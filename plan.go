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
	"encoding/json"
	"strings"

	"github.com/rulego/mcpsql/types"
)

// Actions a planner may choose.
const (
	ActionQuery   = "query_postgres"
	ActionSummary = "summary"
)

// ActionPlan is the routing decision produced by a language model: either
// answer from data by running Query, or summarise without data.
type ActionPlan struct {
	Action   string `json:"action"`
	Query    string `json:"query,omitempty"`
	NeedData bool   `json:"need_data"`
}

// DecodeActionPlan reads a plan from model output. A Markdown code fence
// around the JSON is tolerated. Anything unreadable becomes a summary
// plan that needs no data.
func DecodeActionPlan(text string) ActionPlan {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	var plan ActionPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return ActionPlan{Action: ActionSummary}
	}
	return plan
}

// RunsQuery reports whether the plan asks for data.
func (p ActionPlan) RunsQuery() bool {
	return p.NeedData && p.Action == ActionQuery
}

// RunPlan executes the plan's query when it asks for data. The second
// result reports whether anything ran.
func (e *Engine) RunPlan(ctx context.Context, plan ActionPlan) (*types.Response, bool) {
	if !plan.RunsQuery() {
		return nil, false
	}
	resp := e.Query(ctx, plan.Query)
	return &resp, true
}
