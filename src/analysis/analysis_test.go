package analysis

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeCSV writes content to a temp file and returns its path.
func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dc_analysis_results.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

// sampleRows is the well-formed 3-row table used across tests.
func sampleRows() []MeasurementRow {
	return []MeasurementRow{
		{GridSize: 8, ActualTime: 10.0, StdDev: 0.5, ActualComparisons: 100, TheoreticalComplexity: 96},
		{GridSize: 16, ActualTime: 45.0, StdDev: 2.0, ActualComparisons: 500, TheoreticalComplexity: 512},
		{GridSize: 32, ActualTime: 200.0, StdDev: 8.0, ActualComparisons: 2500, TheoreticalComplexity: 2560},
	}
}

const sampleCSV = `GridSize,ActualTime,StdDev,ActualComparisons,TheoreticalComplexity
8,10.0,0.5,100,96
16,45.0,2.0,500,512
32,200.0,8.0,2500,2560
`

func TestLoadMeasurements(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	rows, err := LoadMeasurements(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := sampleRows()
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows got %d", len(want), len(rows))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d: got %+v want %+v", i, rows[i], want[i])
		}
	}
}

func TestLoadColumnOrderIrrelevant(t *testing.T) {
	// Shuffled columns plus the extra ActualComplexityNormalized column the
	// benchmark driver emits; both must be handled.
	csv := `TheoreticalComplexity,GridSize,ActualComplexityNormalized,StdDev,ActualTime,ActualComparisons
96,8,100,0.5,10.0,100
512,16,480,2.0,45.0,500
`
	rows, err := LoadMeasurements(writeCSV(t, csv))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rows[1].GridSize != 16 || rows[1].ActualTime != 45.0 || rows[1].TheoreticalComplexity != 512 {
		t.Fatalf("columns mismapped: %+v", rows[1])
	}
}

func TestLoadMissingStdDevColumn(t *testing.T) {
	csv := `GridSize,ActualTime,ActualComparisons,TheoreticalComplexity
8,10.0,100,96
`
	_, err := LoadMeasurements(writeCSV(t, csv))
	if !errors.Is(err, ErrData) {
		t.Fatalf("expected ErrData for missing column, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadMeasurements(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO for missing file, got %v", err)
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	csv := "GridSize,ActualTime,StdDev,ActualComparisons,TheoreticalComplexity\n"
	_, err := LoadMeasurements(writeCSV(t, csv))
	if !errors.Is(err, ErrData) {
		t.Fatalf("expected ErrData for empty table, got %v", err)
	}
}

func TestNormalizeFirstElementExact(t *testing.T) {
	rows := sampleRows()
	norm, err := NormalizeTheoretical(rows)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if norm[0] != rows[0].ActualTime {
		t.Fatalf("norm[0]=%v want exactly %v", norm[0], rows[0].ActualTime)
	}
}

func TestNormalizeLinearScaling(t *testing.T) {
	rows := sampleRows()
	norm, err := NormalizeTheoretical(rows)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	scale := rows[0].ActualTime / rows[0].TheoreticalComplexity
	for i, r := range rows {
		want := r.TheoreticalComplexity * scale
		if math.Abs(norm[i]-want) > 1e-9*math.Abs(want) {
			t.Fatalf("norm[%d]=%v want %v (scale %v)", i, norm[i], want, scale)
		}
	}
}

func TestNormalizeZeroAnchor(t *testing.T) {
	rows := sampleRows()
	rows[0].TheoreticalComplexity = 0
	norm, err := NormalizeTheoretical(rows)
	if !errors.Is(err, ErrData) {
		t.Fatalf("expected ErrData for zero anchor, got norm=%v err=%v", norm, err)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if _, err := NormalizeTheoretical(nil); !errors.Is(err, ErrData) {
		t.Fatalf("expected ErrData for empty table, got %v", err)
	}
}

func TestMeanEfficiencyPercent(t *testing.T) {
	rows := sampleRows()
	got, err := MeanEfficiencyPercent(rows)
	if err != nil {
		t.Fatalf("efficiency: %v", err)
	}
	want := (100.0/96 + 500.0/512 + 2500.0/2560) / 3 * 100
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("efficiency=%v want %v", got, want)
	}
}

func TestMeanEfficiencyOrderInvariant(t *testing.T) {
	rows := sampleRows()
	fwd, err := MeanEfficiencyPercent(rows)
	if err != nil {
		t.Fatalf("efficiency: %v", err)
	}
	rev := []MeasurementRow{rows[2], rows[1], rows[0]}
	bwd, err := MeanEfficiencyPercent(rev)
	if err != nil {
		t.Fatalf("efficiency reversed: %v", err)
	}
	if math.Abs(fwd-bwd) > 1e-9 {
		t.Fatalf("efficiency depends on row order: %v vs %v", fwd, bwd)
	}
}

func TestMeanEfficiencyZeroDenominator(t *testing.T) {
	rows := sampleRows()
	rows[1].TheoreticalComplexity = 0
	if _, err := MeanEfficiencyPercent(rows); !errors.Is(err, ErrData) {
		t.Fatalf("expected ErrData for zero denominator, got %v", err)
	}
}

func TestMeanEfficiencyEmpty(t *testing.T) {
	if _, err := MeanEfficiencyPercent(nil); !errors.Is(err, ErrData) {
		t.Fatalf("expected ErrData for empty table, got %v", err)
	}
}
