// Package analysis loads divide & conquer benchmark measurements from CSV
// and computes the derived series consumed by the chart renderer: the
// normalized theoretical curve and the mean efficiency percentage.
package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Error kinds. All failures from this package wrap one of these so callers
// can classify with errors.Is.
var (
	// ErrData marks malformed or degenerate measurement input.
	ErrData = errors.New("measurement data error")
	// ErrIO marks an unreadable input path or unwritable output path.
	ErrIO = errors.New("i/o error")
)

// MeasurementRow is one benchmarked input size.
type MeasurementRow struct {
	GridSize              int     // independent variable (n)
	ActualTime            float64 // measured wall-clock time, ms
	StdDev                float64 // std dev of ActualTime across trials, ms
	ActualComparisons     int     // measured operation count
	TheoreticalComplexity float64 // reference function (n² log n) at GridSize
}

// Required CSV header names, matched exactly. Column order is irrelevant and
// extra columns (the benchmark driver emits ActualComplexityNormalized) are
// ignored.
var requiredColumns = []string{
	"GridSize",
	"ActualTime",
	"StdDev",
	"ActualComparisons",
	"TheoreticalComplexity",
}

// LoadMeasurements parses the benchmark results CSV at path.
// The table must be non-empty and grid sizes strictly increasing: row 0 is
// the normalization anchor, so row order is load-bearing.
func LoadMeasurements(path string) ([]MeasurementRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %s: empty file", ErrData, path)
		}
		return nil, fmt.Errorf("%w: %s: read header: %v", ErrData, path, err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %s: missing column %q", ErrData, path, name)
		}
	}

	var rows []MeasurementRow
	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrData, path, line, err)
		}
		row, err := parseRow(rec, col)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrData, path, line, err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: no measurement rows", ErrData, path)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].GridSize <= rows[i-1].GridSize {
			return nil, fmt.Errorf("%w: %s: grid sizes must be strictly increasing (row %d: %d after %d)",
				ErrData, path, i+1, rows[i].GridSize, rows[i-1].GridSize)
		}
	}
	return rows, nil
}

func parseRow(rec []string, col map[string]int) (MeasurementRow, error) {
	var row MeasurementRow
	field := func(name string) string { return strings.TrimSpace(rec[col[name]]) }

	gs, err := strconv.Atoi(field("GridSize"))
	if err != nil {
		return row, fmt.Errorf("GridSize: %v", err)
	}
	if gs <= 0 {
		return row, fmt.Errorf("GridSize must be positive, got %d", gs)
	}
	at, err := strconv.ParseFloat(field("ActualTime"), 64)
	if err != nil {
		return row, fmt.Errorf("ActualTime: %v", err)
	}
	if at < 0 {
		return row, fmt.Errorf("ActualTime must be non-negative, got %g", at)
	}
	sd, err := strconv.ParseFloat(field("StdDev"), 64)
	if err != nil {
		return row, fmt.Errorf("StdDev: %v", err)
	}
	if sd < 0 {
		return row, fmt.Errorf("StdDev must be non-negative, got %g", sd)
	}
	ac, err := strconv.Atoi(field("ActualComparisons"))
	if err != nil {
		return row, fmt.Errorf("ActualComparisons: %v", err)
	}
	if ac <= 0 {
		return row, fmt.Errorf("ActualComparisons must be positive, got %d", ac)
	}
	// Zero is tolerated at load; the operations that divide by it reject it
	// with a precise message instead.
	tc, err := strconv.ParseFloat(field("TheoreticalComplexity"), 64)
	if err != nil {
		return row, fmt.Errorf("TheoreticalComplexity: %v", err)
	}
	if tc < 0 {
		return row, fmt.Errorf("TheoreticalComplexity must be non-negative, got %g", tc)
	}
	row = MeasurementRow{
		GridSize:              gs,
		ActualTime:            at,
		StdDev:                sd,
		ActualComparisons:     ac,
		TheoreticalComplexity: tc,
	}
	return row, nil
}

// NormalizeTheoretical scales the theoretical series so its first value
// matches the first measured time. Element 0 of the result equals
// rows[0].ActualTime exactly (the t/t ratio is computed before the multiply).
func NormalizeTheoretical(rows []MeasurementRow) ([]float64, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: normalize: empty measurement table", ErrData)
	}
	anchor := rows[0].TheoreticalComplexity
	if anchor == 0 {
		return nil, fmt.Errorf("%w: normalize: first theoretical complexity is zero", ErrData)
	}
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.TheoreticalComplexity / anchor * rows[0].ActualTime
	}
	return out, nil
}

// MeanEfficiencyPercent returns the mean over all rows of
// ActualComparisons/TheoreticalComplexity expressed as a percentage.
func MeanEfficiencyPercent(rows []MeasurementRow) (float64, error) {
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: efficiency: empty measurement table", ErrData)
	}
	sum := 0.0
	for i, r := range rows {
		if r.TheoreticalComplexity == 0 {
			return 0, fmt.Errorf("%w: efficiency: zero theoretical complexity at row %d", ErrData, i+1)
		}
		sum += float64(r.ActualComparisons) / r.TheoreticalComplexity * 100
	}
	return sum / float64(len(rows)), nil
}
