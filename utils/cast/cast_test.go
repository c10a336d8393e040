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

package cast

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		expect float64
		ok     bool
	}{
		{"int", 123, 123, true},
		{"int64", int64(-4), -4, true},
		{"uint8", uint8(7), 7, true},
		{"float32", float32(1.5), 1.5, true},
		{"float64", 2.25, 2.25, true},
		{"numeric string", " 10.5 ", 10.5, true},
		{"bytes", []byte("42"), 42, true},
		{"text", "abc", 0, false},
		{"empty string", "", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"time", time.Now(), 0, false},
		{"nan", math.NaN(), 0, false},
		{"slice", []int{1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expect, got)
			assert.Equal(t, tt.ok, IsNumeric(tt.input))
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		expect int64
		ok     bool
	}{
		{"int", 2025, 2025, true},
		{"float", 2025.0, 2025, true},
		{"fraction", 7.9, 7, true},
		{"leading zero", "08", 8, true},
		{"text", "July", 0, false},
		{"nil", nil, 0, false},
		{"bool", false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "12", ToString(12))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "2025-01-02T00:00:00Z", ToString(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
}
