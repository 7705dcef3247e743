package viz

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/possn/stress-strain-vni/internal/scenario"
)

func TestStrainBar(t *testing.T) {
	bar := StrainBar(0.18, 0.20, 0.60, 24)
	if len(bar) != 26 {
		t.Fatalf("expected 26 chars, got %d: %q", len(bar), bar)
	}
	if !strings.Contains(bar, "|") {
		t.Errorf("expected safe marker in %q", bar)
	}
	if !strings.Contains(bar, "=") {
		t.Errorf("expected fill in %q", bar)
	}

	empty := StrainBar(0, 0.20, 0.60, 24)
	if strings.Contains(empty, "=") {
		t.Errorf("expected no fill at zero strain, got %q", empty)
	}

	full := StrainBar(0.60, 0.20, 0.60, 24)
	if strings.Contains(strings.Trim(full, "[]"), "-") {
		t.Errorf("expected full bar at axis max, got %q", full)
	}
}

func TestStrainBarMarkerPosition(t *testing.T) {
	// safe 0.20 of axis 0.60 puts the marker a third of the way in
	bar := StrainBar(0, 0.20, 0.60, 30)
	inner := strings.Trim(bar, "[]")
	if inner[10] != '|' {
		t.Errorf("expected marker at index 10, got %q", bar)
	}
}

func TestPlotStrain(t *testing.T) {
	out := PlotStrain(scenario.Default(), 60, 8)
	if out == "" {
		t.Fatal("expected non-empty plot")
	}
	if !strings.Contains(out, "strain") {
		t.Errorf("expected caption in plot output")
	}
	if len(strings.Split(out, "\n")) < 8 {
		t.Errorf("expected at least 8 plot lines")
	}
}

func TestPlotCRF(t *testing.T) {
	out := PlotCRF(scenario.Default(), 60, 8)
	if !strings.Contains(out, "CRF") {
		t.Errorf("expected caption in plot output")
	}
}

func TestTimelineChart(t *testing.T) {
	var buf bytes.Buffer
	if err := TimelineChart(scenario.Default(), 2, 640, 360, &buf); err != nil {
		t.Fatalf("chart render failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("expected decodable PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 640 || b.Dy() != 360 {
		t.Errorf("expected 640x360, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestTimelineChartInvalidFPS(t *testing.T) {
	var buf bytes.Buffer
	if err := TimelineChart(scenario.Default(), 0, 640, 360, &buf); err == nil {
		t.Fatal("expected error for fps 0")
	}
}

func TestModelTickAdvances(t *testing.T) {
	m := NewModel(scenario.Default(), "classic")

	next, cmd := m.Update(TickMsg{})
	got := next.(Model)
	if got.t <= 0 {
		t.Errorf("expected playback to advance, t=%v", got.t)
	}
	if cmd == nil {
		t.Error("expected a re-armed tick command")
	}
	if len(got.history) != 1 {
		t.Errorf("expected 1 history sample, got %d", len(got.history))
	}
}

func TestModelPauseAndReset(t *testing.T) {
	m := NewModel(scenario.Default(), "classic")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	got := next.(Model)
	if got.running {
		t.Error("expected space to pause")
	}

	next, _ = got.Update(TickMsg{})
	got = next.(Model)
	if got.t != 0 {
		t.Errorf("expected paused playback to hold, t=%v", got.t)
	}

	got.t = 12
	next, _ = got.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	got = next.(Model)
	if got.t != 0 {
		t.Errorf("expected reset to t=0, got %v", got.t)
	}
}

func TestModelSeekClamps(t *testing.T) {
	m := NewModel(scenario.Default(), "classic")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	got := next.(Model)
	if got.t != 0 {
		t.Errorf("expected seek to clamp at 0, got %v", got.t)
	}

	got.t = 59.5
	next, _ = got.Update(tea.KeyMsg{Type: tea.KeyRight})
	got = next.(Model)
	if got.t != 60 {
		t.Errorf("expected seek to clamp at duration, got %v", got.t)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(scenario.Default(), "classic")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(scenario.Default(), "classic")
	view := m.View()

	if !strings.Contains(view, "CLASSIC") {
		t.Error("expected scenario name in view")
	}
	if !strings.Contains(view, "CRF") {
		t.Error("expected CRF label in view")
	}
	if !strings.Contains(view, "0,18") {
		t.Error("expected formatted strain value in view")
	}
	if !strings.Contains(view, "Pulmão saudável") {
		t.Error("expected phase title in view")
	}
}

func TestModelViewRupture(t *testing.T) {
	m := NewModel(scenario.Default(), "classic")
	m.t = 35
	view := m.View()
	if !strings.Contains(view, "lesão provável") {
		t.Error("expected rupture warning in view at t=35")
	}
}
