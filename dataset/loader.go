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

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
)

// LoadOptions controls how a file becomes a table.
type LoadOptions struct {
	// Sheet names the worksheet to read; empty means the first one.
	Sheet string
	// DateColumn overrides date-column detection.
	DateColumn string
	// NoDerive skips adding Year, Month and Day.
	NoDerive bool
}

// LoadOption configures LoadFile.
type LoadOption func(*LoadOptions)

// WithSheet selects a worksheet by name.
func WithSheet(name string) LoadOption {
	return func(o *LoadOptions) { o.Sheet = name }
}

// WithDateColumn names the primary date column explicitly.
func WithDateColumn(name string) LoadOption {
	return func(o *LoadOptions) { o.DateColumn = name }
}

// WithoutDerivedColumns keeps the sheet's columns as they are.
func WithoutDerivedColumns() LoadOption {
	return func(o *LoadOptions) { o.NoDerive = true }
}

// Loaded is a table read from a file plus the date column it was derived
// from, if any.
type Loaded struct {
	*Table
	DateColumn string
}

// LoadFile reads an .xlsx or .csv file from fs. The first row is the
// header. Columns whose every non-empty cell is numeric become int64 or
// float64; other cells stay text and empty cells are nil. When a date
// column is found the temporal columns are derived from it.
func LoadFile(fs afero.Fs, path string, opts ...LoadOption) (*Loaded, error) {
	var o LoadOptions
	for _, opt := range opts {
		opt(&o)
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var records [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readXLSX(f, o.Sheet)
	case ".csv":
		records, err = readCSV(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return FromRecords(records, o)
}

// FromRecords builds a table from a header row and text rows.
func FromRecords(records [][]string, o LoadOptions) (*Loaded, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	header := make([]string, len(records[0]))
	seen := make(map[string]int, len(header))
	for i, h := range records[0] {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Column" + strconv.Itoa(i+1)
		}
		// Repeated headers get a .N suffix.
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n)
		} else {
			seen[name] = 1
		}
		header[i] = name
	}

	body := records[1:]
	rows := make([]Row, 0, len(body))
	for _, rec := range body {
		if isBlank(rec) {
			continue
		}
		row := make(Row, len(header))
		for j := range header {
			if j < len(rec) {
				if s := strings.TrimSpace(rec[j]); s != "" {
					row[j] = s
				}
			}
		}
		rows = append(rows, row)
	}
	typeColumns(rows, len(header))

	t, err := NewTable(header, rows)
	if err != nil {
		return nil, err
	}
	loaded := &Loaded{Table: t}
	if o.NoDerive {
		return loaded, nil
	}

	dateColumn := o.DateColumn
	if dateColumn == "" {
		dateColumn, _ = DetectDateColumn(header)
	}
	if dateColumn == "" {
		return loaded, nil
	}
	derived, err := Derive(t, dateColumn)
	if err != nil {
		return nil, err
	}
	return &Loaded{Table: derived, DateColumn: dateColumn}, nil
}

func readXLSX(r io.Reader, sheet string) ([][]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	// Raw values keep date cells as serial numbers instead of text in the
	// cell's display format.
	return wb.GetRows(sheet, excelize.Options{RawCellValue: true})
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func isBlank(rec []string) bool {
	for _, s := range rec {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// typeColumns converts columns whose cells all parse as numbers. A column
// of whole numbers becomes int64, otherwise float64.
func typeColumns(rows []Row, width int) {
	for j := 0; j < width; j++ {
		numeric, integral := true, true
		for _, r := range rows {
			s, ok := r[j].(string)
			if !ok {
				continue
			}
			if _, err := strconv.ParseInt(s, 10, 64); err == nil {
				continue
			}
			integral = false
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				numeric = false
				break
			}
		}
		if !numeric {
			continue
		}
		for _, r := range rows {
			s, ok := r[j].(string)
			if !ok {
				continue
			}
			if integral {
				r[j], _ = strconv.ParseInt(s, 10, 64)
			} else {
				r[j], _ = strconv.ParseFloat(s, 64)
			}
		}
	}
}
