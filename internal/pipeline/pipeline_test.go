package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/possn/stress-strain-vni/internal/encode"
	"github.com/possn/stress-strain-vni/internal/render"
	"github.com/possn/stress-strain-vni/internal/scenario"
)

func testScenario() scenario.Scenario {
	sc := scenario.Default()
	sc.HealthyDur = 2
	sc.LowCRFDur = 2
	sc.VNIDur = 2
	return sc
}

func testRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New(render.Options{Width: 192, Height: 108})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestFrameCount(t *testing.T) {
	if n := FrameCount(scenario.Default(), 20); n != 1200 {
		t.Errorf("expected 1200 frames, got %d", n)
	}
	if n := FrameCount(testScenario(), 10); n != 60 {
		t.Errorf("expected 60 frames, got %d", n)
	}
}

func TestRun(t *testing.T) {
	sink := &encode.Null{}
	p := New(testScenario(), testRenderer(t), sink, zerolog.Nop())

	res, err := p.Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Frames != 60 {
		t.Errorf("expected 60 frames, got %d", res.Frames)
	}
	if sink.Frames() != 60 {
		t.Errorf("expected 60 frames in sink, got %d", sink.Frames())
	}
	if res.Duration != 6 {
		t.Errorf("expected duration 6, got %v", res.Duration)
	}
	if res.RenderFPS <= 0 {
		t.Errorf("expected positive render fps, got %v", res.RenderFPS)
	}
	if _, err := uuid.Parse(res.JobID); err != nil {
		t.Errorf("job id %q is not a uuid: %v", res.JobID, err)
	}
}

func TestRunObservers(t *testing.T) {
	sink := &encode.Null{}
	p := New(testScenario(), testRenderer(t), sink, zerolog.Nop())

	var states []scenario.FrameState
	p.AddObserver(func(frame int, fs scenario.FrameState) {
		states = append(states, fs)
	})

	if _, err := p.Run(context.Background(), 10); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(states) != 60 {
		t.Fatalf("expected 60 observed frames, got %d", len(states))
	}
	if states[0].Phase != scenario.PhaseHealthy {
		t.Errorf("expected first frame healthy, got %v", states[0].Phase)
	}
	if last := states[len(states)-1]; last.Phase != scenario.PhaseVNI {
		t.Errorf("expected last frame vni, got %v", last.Phase)
	}
}

func TestRunCancel(t *testing.T) {
	sink := &encode.Null{}
	p := New(testScenario(), testRenderer(t), sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	p.AddObserver(func(frame int, fs scenario.FrameState) {
		if frame == 3 {
			cancel()
		}
	})

	_, err := p.Run(ctx, 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sink.Frames() != 4 {
		t.Errorf("expected 4 frames before cancel, got %d", sink.Frames())
	}
}

func TestRunInvalidFPS(t *testing.T) {
	p := New(testScenario(), testRenderer(t), &encode.Null{}, zerolog.Nop())
	if _, err := p.Run(context.Background(), 0); err == nil {
		t.Fatal("expected error for fps 0")
	}
}

func TestRunInvalidScenario(t *testing.T) {
	sc := testScenario()
	sc.TidalVolume = -1
	p := New(sc, testRenderer(t), &encode.Null{}, zerolog.Nop())
	if _, err := p.Run(context.Background(), 10); err == nil {
		t.Fatal("expected error for invalid scenario")
	}
}

func TestManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	m := Manifest{
		JobID:     uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Output:    "out.mp4",
		Format:    "mp4",
		Width:     1536,
		Height:    864,
		FPS:       20,
		Frames:    1200,
		Duration:  60,
		Scenario:  "classic",
		ElapsedMS: 1234,
	}
	if err := WriteManifest(path, m); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	got, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if *got != m {
		t.Errorf("manifest mismatch: got %+v, want %+v", *got, m)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 || data[0] != '{' {
		t.Errorf("expected indented JSON object, got %q", data)
	}
}
