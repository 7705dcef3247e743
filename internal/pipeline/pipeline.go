package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/possn/stress-strain-vni/internal/encode"
	"github.com/possn/stress-strain-vni/internal/render"
	"github.com/possn/stress-strain-vni/internal/scenario"
)

// Observer is called after each frame is rendered and encoded.
type Observer func(frame int, fs scenario.FrameState)

// Pipeline walks a scenario timeline, renders every frame and streams it
// into a sink.
type Pipeline struct {
	sc        scenario.Scenario
	renderer  *render.Renderer
	sink      encode.Sink
	log       zerolog.Logger
	observers []Observer
}

// Result summarizes one render job.
type Result struct {
	JobID     string
	Frames    int
	Duration  float64 // timeline seconds
	Elapsed   time.Duration
	RenderFPS float64
}

func New(sc scenario.Scenario, r *render.Renderer, sink encode.Sink, log zerolog.Logger) *Pipeline {
	return &Pipeline{sc: sc, renderer: r, sink: sink, log: log}
}

// AddObserver registers a per-frame callback.
func (p *Pipeline) AddObserver(fn Observer) {
	p.observers = append(p.observers, fn)
}

// FrameCount returns the number of frames a timeline yields at fps.
func FrameCount(sc scenario.Scenario, fps int) int {
	return int(math.Round(sc.Duration() * float64(fps)))
}

// Run renders the whole timeline at fps. The sink is closed before Run
// returns, on success and on failure, so the output artifact is always
// finalized or abandoned cleanly. The context cancels between frames.
func (p *Pipeline) Run(ctx context.Context, fps int) (*Result, error) {
	if fps <= 0 {
		p.sink.Close()
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}
	if err := p.sc.Validate(); err != nil {
		p.sink.Close()
		return nil, err
	}

	jobID := uuid.NewString()
	frames := FrameCount(p.sc, fps)
	log := p.log.With().Str("job_id", jobID).Logger()
	log.Info().
		Int("frames", frames).
		Int("fps", fps).
		Float64("duration", p.sc.Duration()).
		Msg("render started")

	start := time.Now()
	buf := p.renderer.Frame()

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			p.sink.Close()
			return nil, ctx.Err()
		default:
		}

		t := float64(i) / float64(fps)
		fs := p.sc.Compute(t)
		p.renderer.Draw(buf, p.sc, fs)
		if err := p.sink.Append(buf); err != nil {
			p.sink.Close()
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		for _, fn := range p.observers {
			fn(i, fs)
		}

		if i > 0 && i%(fps*5) == 0 {
			log.Debug().
				Int("frame", i).
				Float64("t", t).
				Str("phase", fs.Phase.String()).
				Msg("render progress")
		}
	}

	if err := p.sink.Close(); err != nil {
		return nil, fmt.Errorf("finalizing output: %w", err)
	}

	elapsed := time.Since(start)
	res := &Result{
		JobID:    jobID,
		Frames:   frames,
		Duration: p.sc.Duration(),
		Elapsed:  elapsed,
	}
	if s := elapsed.Seconds(); s > 0 {
		res.RenderFPS = float64(frames) / s
	}
	log.Info().
		Int("frames", res.Frames).
		Dur("elapsed", elapsed).
		Float64("render_fps", res.RenderFPS).
		Msg("render finished")
	return res, nil
}
