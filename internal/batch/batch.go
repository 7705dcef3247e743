// Package batch renders several scenario variants from one YAML plan.
package batch

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/possn/stress-strain-vni/internal/cliconfig"
	"github.com/possn/stress-strain-vni/internal/config"
	"github.com/possn/stress-strain-vni/internal/encode"
	"github.com/possn/stress-strain-vni/internal/pipeline"
	"github.com/possn/stress-strain-vni/internal/render"
	"github.com/possn/stress-strain-vni/internal/scenario"
)

// Job is a single render in a plan. Preset or Scenario picks the
// timeline; geometry left at zero falls back to the plan and then to
// the CLI configuration.
type Job struct {
	Name     string `yaml:"name,omitempty"`
	Preset   string `yaml:"preset,omitempty"`
	Scenario string `yaml:"scenario,omitempty"`
	Out      string `yaml:"out"`
	Format   string `yaml:"format,omitempty"`
	Width    int    `yaml:"width,omitempty"`
	Height   int    `yaml:"height,omitempty"`
	FPS      int    `yaml:"fps,omitempty"`
}

// Plan is a scripted sequence of render jobs.
type Plan struct {
	Name      string `yaml:"name,omitempty"`
	LungImage string `yaml:"lung_image,omitempty"`
	Width     int    `yaml:"width,omitempty"`
	Height    int    `yaml:"height,omitempty"`
	FPS       int    `yaml:"fps,omitempty"`
	Jobs      []Job  `yaml:"jobs"`
}

func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}
	return &plan, nil
}

func (p *Plan) Validate() error {
	if len(p.Jobs) == 0 {
		return fmt.Errorf("plan has no jobs")
	}
	for i, job := range p.Jobs {
		if job.Out == "" {
			return fmt.Errorf("job %d: out is required", i+1)
		}
		if job.Preset != "" && job.Scenario != "" {
			return fmt.Errorf("job %d: preset and scenario are mutually exclusive", i+1)
		}
	}
	return nil
}

// Result is the outcome of one job.
type Result struct {
	Job    string
	Out    string
	Frames int
}

// Run executes every job in order. It stops on the first failure and
// returns the results collected so far.
func Run(ctx context.Context, plan *Plan, cfg cliconfig.Config, log zerolog.Logger) ([]Result, error) {
	results := make([]Result, 0, len(plan.Jobs))

	lung := plan.LungImage
	if lung == "" {
		lung = cfg.LungImage
	}

	for i, job := range plan.Jobs {
		sc, name, err := resolveScenario(job)
		if err != nil {
			return results, fmt.Errorf("job %d: %w", i+1, err)
		}

		w := fallback(job.Width, plan.Width, cfg.Width)
		h := fallback(job.Height, plan.Height, cfg.Height)
		fps := fallback(job.FPS, plan.FPS, cfg.FPS)

		r, err := render.New(render.Options{Width: w, Height: h, LungImage: lung})
		if err != nil {
			return results, fmt.Errorf("job %d: %w", i+1, err)
		}

		format := encode.DetectFormat(job.Format, job.Out)
		sink, err := openSink(ctx, format, job.Out, w, h, fps, cfg)
		if err != nil {
			r.Close()
			return results, fmt.Errorf("job %d: %w", i+1, err)
		}

		log.Info().
			Int("job", i+1).
			Int("jobs", len(plan.Jobs)).
			Str("scenario", name).
			Str("out", job.Out).
			Msg("batch render")
		res, err := pipeline.New(sc, r, sink, log).Run(ctx, fps)
		r.Close()
		if err != nil {
			return results, fmt.Errorf("job %d run: %w", i+1, err)
		}

		label := job.Name
		if label == "" {
			label = name
		}
		results = append(results, Result{Job: label, Out: job.Out, Frames: res.Frames})
	}

	return results, nil
}

func resolveScenario(job Job) (scenario.Scenario, string, error) {
	switch {
	case job.Preset != "":
		p := config.GetPreset(job.Preset)
		if p == nil {
			return scenario.Scenario{}, "", fmt.Errorf("unknown preset: %s (available: %v)", job.Preset, config.ListPresets())
		}
		return p.Scenario(), p.Name, nil
	case job.Scenario != "":
		doc, err := config.Load(job.Scenario)
		if err != nil {
			return scenario.Scenario{}, "", err
		}
		return doc.Scenario(), doc.Name, nil
	default:
		doc := config.Default()
		return doc.Scenario(), doc.Name, nil
	}
}

func openSink(ctx context.Context, format encode.Format, out string, w, h, fps int, cfg cliconfig.Config) (encode.Sink, error) {
	switch format {
	case encode.FormatMP4:
		return encode.StartFFmpeg(ctx, encode.FFmpegOptions{
			Binary:  cfg.FFmpegBin,
			Width:   w,
			Height:  h,
			FPS:     fps,
			CRF:     cfg.X264CRF,
			Preset:  cfg.X264Preset,
			OutPath: out,
		})
	case encode.FormatGIF:
		return encode.NewGIF(out, fps, cfg.GIFStride)
	case encode.FormatNull:
		return &encode.Null{}, nil
	default:
		return encode.NewPNGDir(out)
	}
}

func fallback(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
