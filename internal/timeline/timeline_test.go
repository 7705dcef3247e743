package timeline

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/possn/stress-strain-vni/internal/scenario"
)

func TestSample(t *testing.T) {
	sc := scenario.Default()
	rows := Sample(sc, 20)

	if len(rows) != 1200 {
		t.Fatalf("expected 1200 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.T != 0 {
		t.Errorf("expected first row at t=0, got %v", first.T)
	}
	if first.Phase != "healthy" {
		t.Errorf("expected phase healthy, got %s", first.Phase)
	}
	if first.CRF != 2.5 {
		t.Errorf("expected crf 2.5, got %v", first.CRF)
	}
	if first.Strain != 0.18 {
		t.Errorf("expected strain 0.18, got %v", first.Strain)
	}

	mid := rows[600] // t = 30
	if mid.Phase != "low_crf" {
		t.Errorf("expected phase low_crf at t=30, got %s", mid.Phase)
	}
	if mid.Strain != 0.45 {
		t.Errorf("expected strain 0.45 at t=30, got %v", mid.Strain)
	}
}

func TestSampleInvalidFPS(t *testing.T) {
	if rows := Sample(scenario.Default(), 0); rows != nil {
		t.Errorf("expected nil rows for fps 0, got %d", len(rows))
	}
}

func TestSummarize(t *testing.T) {
	sc := scenario.Default()
	rows := Sample(sc, 20)
	s := Summarize(sc, rows)

	if s.Samples != 1200 {
		t.Errorf("expected 1200 samples, got %d", s.Samples)
	}
	if s.MaxStrain != 0.45 {
		t.Errorf("expected max strain 0.45, got %v", s.MaxStrain)
	}
	if s.MinCRF != 1.0 {
		t.Errorf("expected min crf 1.0, got %v", s.MinCRF)
	}
	// First frame past the eased rupture threshold lands at 28.1 on
	// the 20 fps grid.
	if math.Abs(s.RuptureOnset-28.1) > 1e-9 {
		t.Errorf("expected rupture onset 28.1, got %v", s.RuptureOnset)
	}
	if s.UnsafeFrac <= 0 || s.UnsafeFrac >= 1 {
		t.Errorf("expected unsafe fraction in (0,1), got %v", s.UnsafeFrac)
	}

	for _, phase := range []string{"healthy", "low_crf", "vni"} {
		if s.PhaseSamples[phase] != 400 {
			t.Errorf("expected 400 %s samples, got %d", phase, s.PhaseSamples[phase])
		}
	}
}

func TestSummarizeNoRupture(t *testing.T) {
	sc := scenario.Default()
	sc.RuptureOnset = 2 // unreachable, eased progress tops out at 1
	rows := Sample(sc, 10)
	s := Summarize(sc, rows)
	if s.RuptureOnset != -1 {
		t.Errorf("expected no rupture onset, got %v", s.RuptureOnset)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(scenario.Default(), nil)
	if s.Samples != 0 {
		t.Errorf("expected 0 samples, got %d", s.Samples)
	}
	if s.RuptureOnset != -1 {
		t.Errorf("expected rupture onset -1, got %v", s.RuptureOnset)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	sc := scenario.Default()
	sc.HealthyDur = 2
	sc.LowCRFDur = 2
	sc.VNIDur = 2
	rows := Sample(sc, 5)

	path := filepath.Join(t.TempDir(), "timeline.csv")
	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(got))
	}
	for i := range rows {
		if math.Abs(got[i].Strain-rows[i].Strain) > 1e-6 {
			t.Errorf("row %d: expected strain %v, got %v", i, rows[i].Strain, got[i].Strain)
		}
		if got[i].Phase != rows[i].Phase {
			t.Errorf("row %d: expected phase %s, got %s", i, rows[i].Phase, got[i].Phase)
		}
		if got[i].Rupture != rows[i].Rupture {
			t.Errorf("row %d: rupture mismatch", i)
		}
	}
}

func TestCSVHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.csv")
	if err := WriteCSV(path, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	first := strings.SplitN(string(data), "\n", 2)[0]
	if strings.TrimSpace(first) != "time,phase,crf,tidal_volume,strain,rupture" {
		t.Errorf("unexpected header: %q", first)
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	if _, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteJSON(t *testing.T) {
	sc := scenario.Default()
	rows := Sample(sc, 2)
	data := BuildExport("classic", sc, 2, rows)

	path := filepath.Join(t.TempDir(), "timeline.json")
	if err := WriteJSON(path, data); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got ExportData
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if got.Scenario != "classic" {
		t.Errorf("expected scenario 'classic', got '%s'", got.Scenario)
	}
	if got.Duration != 60 {
		t.Errorf("expected duration 60, got %v", got.Duration)
	}
	if got.Samples != 120 {
		t.Errorf("expected 120 samples, got %d", got.Samples)
	}
	if got.SafeStrain != 0.20 {
		t.Errorf("expected safe strain 0.20, got %v", got.SafeStrain)
	}
	if len(got.Rows) != 120 {
		t.Errorf("expected 120 rows, got %d", len(got.Rows))
	}
}
