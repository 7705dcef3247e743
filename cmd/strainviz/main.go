package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/possn/stress-strain-vni/internal/batch"
	"github.com/possn/stress-strain-vni/internal/cliconfig"
	"github.com/possn/stress-strain-vni/internal/config"
	"github.com/possn/stress-strain-vni/internal/encode"
	"github.com/possn/stress-strain-vni/internal/pipeline"
	"github.com/possn/stress-strain-vni/internal/render"
	"github.com/possn/stress-strain-vni/internal/scenario"
	"github.com/possn/stress-strain-vni/internal/timeline"
	"github.com/possn/stress-strain-vni/internal/viz"
	"github.com/possn/stress-strain-vni/internal/watch"
)

var (
	cfg     = cliconfig.DefaultConfig()
	cfgPath string
	// frame command
	frameTime float64
	frameOut  string
	// chart command
	chartOut    string
	chartWidth  int
	chartHeight int
	chartFPS    int
	// plot command
	plotWidth  int
	plotHeight int
	// presets command
	writePreset string
	presetOut   string
)

var exampleUsage = strings.TrimSpace(`
  strainviz
  strainviz render --preset breathing --format gif
  strainviz preview --preset short
  strainviz frame --time 28.5 --out rupture.png
  strainviz export-csv timeline.csv --scenario aula.yaml
  strainviz batch plan.yaml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "strainviz",
		Short:   "didactic stress/strain animation: CRF and the role of NIV",
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:    cobra.NoArgs,
		// Bare invocation renders the full video, like the original
		// one-shot script.
		RunE: renderVideo,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: $HOME/.strainviz/config.toml)")
	rootCmd.PersistentFlags().StringVar(&cfg.Scenario, "scenario", "", "scenario YAML file")
	rootCmd.PersistentFlags().StringVar(&cfg.Preset, "preset", cfg.Preset, "scenario preset")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	addRenderFlags(rootCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the animation",
		Args:  cobra.NoArgs,
		RunE:  renderVideo,
	}
	addRenderFlags(renderCmd)

	frameCmd := &cobra.Command{
		Use:   "frame",
		Short: "render a single frame to PNG",
		Args:  cobra.NoArgs,
		RunE:  renderFrame,
	}
	frameCmd.Flags().Float64Var(&frameTime, "time", 30.0, "timeline instant in seconds")
	frameCmd.Flags().StringVar(&frameOut, "out", "frame.png", "output PNG path")
	frameCmd.Flags().IntVar(&cfg.Width, "width", cfg.Width, "frame width in pixels")
	frameCmd.Flags().IntVar(&cfg.Height, "height", cfg.Height, "frame height in pixels")
	frameCmd.Flags().StringVar(&cfg.LungImage, "lung-image", cfg.LungImage, "PNG/JPEG lung illustration")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "play the scenario in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPreview,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "ASCII strain and CRF curves",
		Args:  cobra.NoArgs,
		RunE:  plotTimeline,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width in characters")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height in characters")

	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "PNG chart of strain and CRF over time",
		Args:  cobra.NoArgs,
		RunE:  chartTimeline,
	}
	chartCmd.Flags().StringVar(&chartOut, "out", "timeline.png", "output PNG path")
	chartCmd.Flags().IntVar(&chartWidth, "width", 1024, "chart width in pixels")
	chartCmd.Flags().IntVar(&chartHeight, "height", 512, "chart height in pixels")
	chartCmd.Flags().IntVar(&chartFPS, "fps", 10, "samples per second")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [path]",
		Short: "export the sampled timeline to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().IntVar(&cfg.FPS, "fps", cfg.FPS, "samples per second")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [path]",
		Short: "export the sampled timeline to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().IntVar(&cfg.FPS, "fps", cfg.FPS, "samples per second")

	phasesCmd := &cobra.Command{
		Use:   "phases",
		Short: "show the segment table and timeline summary",
		Args:  cobra.NoArgs,
		RunE:  showPhases,
	}
	phasesCmd.Flags().IntVar(&cfg.FPS, "fps", cfg.FPS, "samples per second")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVar(&writePreset, "write", "", "write the named preset as a scenario file")
	presetsCmd.Flags().StringVar(&presetOut, "out", "scenario.yaml", "path for --write")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame rendering",
		Args:  cobra.NoArgs,
		RunE:  benchRender,
	}
	benchCmd.Flags().StringVar(&cfg.LungImage, "lung-image", cfg.LungImage, "PNG/JPEG lung illustration")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "re-render whenever the scenario file changes",
		Args:  cobra.NoArgs,
		RunE:  watchScenario,
	}
	addRenderFlags(watchCmd)

	batchCmd := &cobra.Command{
		Use:   "batch <plan.yaml>",
		Short: "render every job in a YAML plan",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	addRenderFlags(batchCmd)

	rootCmd.AddCommand(renderCmd, frameCmd, previewCmd, plotCmd, chartCmd, exportCSVCmd, exportJSONCmd, phasesCmd, presetsCmd, benchCmd, watchCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRenderFlags(c *cobra.Command) {
	c.Flags().StringVar(&cfg.Out, "out", cfg.Out, "output path (mp4, gif or png directory)")
	c.Flags().StringVar(&cfg.Format, "format", cfg.Format, "output format: auto, mp4, png, gif, null")
	c.Flags().IntVar(&cfg.Width, "width", cfg.Width, "frame width in pixels")
	c.Flags().IntVar(&cfg.Height, "height", cfg.Height, "frame height in pixels")
	c.Flags().IntVar(&cfg.FPS, "fps", cfg.FPS, "frames per second")
	c.Flags().StringVar(&cfg.FFmpegBin, "ffmpeg", cfg.FFmpegBin, "ffmpeg binary")
	c.Flags().StringVar(&cfg.X264Preset, "x264-preset", cfg.X264Preset, "libx264 preset")
	c.Flags().IntVar(&cfg.X264CRF, "x264-crf", cfg.X264CRF, "libx264 quality, lower is better (0-51)")
	c.Flags().IntVar(&cfg.GIFStride, "gif-stride", cfg.GIFStride, "keep every n-th frame in gif output")
	c.Flags().StringVar(&cfg.LungImage, "lung-image", cfg.LungImage, "PNG/JPEG lung illustration (default: built-in drawing)")
	c.Flags().BoolVar(&cfg.Manifest, "manifest", cfg.Manifest, "write a JSON manifest next to the output")
}

// applyConfig layers file config and environment under explicit flags,
// then validates.
func applyConfig(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
			return err
		}
	}
	if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return cliconfig.ApplyLogLevel(cfg.LogLevel)
}

// loadScenario resolves the scenario: defaults, then preset, then file.
func loadScenario() (scenario.Scenario, string, error) {
	doc := config.Default()
	if cfg.Preset != "" {
		p := config.GetPreset(cfg.Preset)
		if p == nil {
			return scenario.Scenario{}, "", fmt.Errorf("unknown preset: %s (available: %v)", cfg.Preset, config.ListPresets())
		}
		doc = p
	}
	if cfg.Scenario != "" {
		d, err := config.Load(cfg.Scenario)
		if err != nil {
			return scenario.Scenario{}, "", err
		}
		doc = d
	}
	return doc.Scenario(), doc.Name, nil
}

// outputPath swaps the default output name when the format does not
// match its .mp4 extension. Explicit --out values are left alone.
func outputPath(format encode.Format) string {
	if cfg.Out != cliconfig.DefaultOutput {
		return cfg.Out
	}
	switch format {
	case encode.FormatGIF:
		return "stress_strain_crf_vni.gif"
	case encode.FormatPNG:
		return "frames"
	default:
		return cfg.Out
	}
}

func openSink(ctx context.Context, format encode.Format, out string) (encode.Sink, error) {
	switch format {
	case encode.FormatMP4:
		return encode.StartFFmpeg(ctx, encode.FFmpegOptions{
			Binary:  cfg.FFmpegBin,
			Width:   cfg.Width,
			Height:  cfg.Height,
			FPS:     cfg.FPS,
			CRF:     cfg.X264CRF,
			Preset:  cfg.X264Preset,
			OutPath: out,
		})
	case encode.FormatGIF:
		return encode.NewGIF(out, cfg.FPS, cfg.GIFStride)
	case encode.FormatNull:
		return &encode.Null{}, nil
	default:
		return encode.NewPNGDir(out)
	}
}

func renderVideo(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	sc, name, err := loadScenario()
	if err != nil {
		return err
	}
	log := cliconfig.Logger()

	format := encode.DetectFormat(cfg.Format, cfg.Out)
	out := outputPath(format)

	r, err := render.New(render.Options{Width: cfg.Width, Height: cfg.Height, LungImage: cfg.LungImage})
	if err != nil {
		return err
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink, err := openSink(ctx, format, out)
	if err != nil {
		return err
	}

	fmt.Printf("rendering %s (%dx%d @ %d fps, %s)...\n", name, cfg.Width, cfg.Height, cfg.FPS, format)
	res, err := pipeline.New(sc, r, sink, log).Run(ctx, cfg.FPS)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", res.Elapsed.Round(time.Millisecond))
	if format != encode.FormatNull {
		fmt.Printf("output: %s\n", out)
	}
	fmt.Printf("frames: %d (%.0f frames/sec rendered)\n", res.Frames, res.RenderFPS)

	if cfg.Manifest {
		m := pipeline.Manifest{
			JobID:     res.JobID,
			CreatedAt: time.Now().UTC(),
			Output:    out,
			Format:    string(format),
			Width:     cfg.Width,
			Height:    cfg.Height,
			FPS:       cfg.FPS,
			Frames:    res.Frames,
			Duration:  res.Duration,
			Scenario:  name,
			ElapsedMS: res.Elapsed.Milliseconds(),
		}
		mp := out + ".manifest.json"
		if err := pipeline.WriteManifest(mp, m); err != nil {
			return err
		}
		fmt.Printf("manifest: %s\n", mp)
	}
	return nil
}

func renderFrame(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	sc, _, err := loadScenario()
	if err != nil {
		return err
	}

	r, err := render.New(render.Options{Width: cfg.Width, Height: cfg.Height, LungImage: cfg.LungImage})
	if err != nil {
		return err
	}
	defer r.Close()

	fs := sc.Compute(frameTime)
	img := r.Frame()
	r.Draw(img, sc, fs)

	f, err := os.Create(frameOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}

	fmt.Printf("wrote %s (t=%.2fs, phase=%s, strain=%.3f)\n", frameOut, frameTime, fs.Phase, fs.Strain)
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	sc, name, err := loadScenario()
	if err != nil {
		return err
	}
	return viz.RunPreview(sc, name)
}

func plotTimeline(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	sc, name, err := loadScenario()
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s (%.0fs)\n\n", name, sc.Duration())
	fmt.Println(viz.PlotStrain(sc, plotWidth, plotHeight))
	fmt.Println()
	fmt.Println(viz.PlotCRF(sc, plotWidth, plotHeight))
	return nil
}

func chartTimeline(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	sc, _, err := loadScenario()
	if err != nil {
		return err
	}

	f, err := os.Create(chartOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := viz.TimelineChart(sc, chartFPS, chartWidth, chartHeight, f); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", chartOut)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	sc, _, err := loadScenario()
	if err != nil {
		return err
	}

	rows := timeline.Sample(sc, cfg.FPS)
	if len(args) > 0 {
		if err := timeline.WriteCSV(args[0], rows); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d rows)\n", args[0], len(rows))
		return nil
	}
	return timeline.EncodeCSV(os.Stdout, rows)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	sc, name, err := loadScenario()
	if err != nil {
		return err
	}

	rows := timeline.Sample(sc, cfg.FPS)
	data := timeline.BuildExport(name, sc, cfg.FPS, rows)
	if len(args) > 0 {
		if err := timeline.WriteJSON(args[0], data); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d rows)\n", args[0], len(rows))
		return nil
	}
	return timeline.EncodeJSON(os.Stdout, data)
}

func showPhases(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	sc, name, err := loadScenario()
	if err != nil {
		return err
	}

	lowStart, vniStart := sc.Boundaries()
	hs := sc.Compute(lowStart / 2)
	ls := sc.Compute((lowStart + vniStart) / 2)
	vs := sc.Compute(vniStart)
	ve := sc.Compute(sc.Duration())

	fmt.Printf("scenario: %s\n\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHASE\tSTART\tEND\tCRF\tSTRAIN")
	fmt.Fprintf(w, "healthy\t%.0fs\t%.0fs\t%s\t%s\n",
		0.0, lowStart, render.FormatLiters(hs.CRF), render.FormatStrain(hs.Strain))
	fmt.Fprintf(w, "low_crf\t%.0fs\t%.0fs\t%s\t%s\n",
		lowStart, vniStart, render.FormatLiters(ls.CRF), render.FormatStrain(ls.Strain))
	fmt.Fprintf(w, "vni\t%.0fs\t%.0fs\t%s → %s\t%s → %s\n",
		vniStart, sc.Duration(),
		render.FormatLiters(vs.CRF), render.FormatLiters(ve.CRF),
		render.FormatStrain(vs.Strain), render.FormatStrain(ve.Strain))
	if err := w.Flush(); err != nil {
		return err
	}

	s := timeline.Summarize(sc, timeline.Sample(sc, cfg.FPS))
	fmt.Printf("\nmax strain: %.3f at t=%.1fs\n", s.MaxStrain, s.MaxStrainT)
	if s.RuptureOnset >= 0 {
		fmt.Printf("rupture marks from t=%.1fs\n", s.RuptureOnset)
	}
	fmt.Printf("time above safe line (%.2f): %.0f%%\n", sc.SafeStrain, s.UnsafeFrac*100)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	if writePreset != "" {
		p := config.GetPreset(writePreset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", writePreset, config.ListPresets())
		}
		if err := config.Save(presetOut, p); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", presetOut)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDURATION\tCRF\tVT\tSAFE")
	for _, name := range config.ListPresets() {
		sc := config.Presets[name].Scenario()
		fmt.Fprintf(w, "%s\t%.0fs\t%.1f/%.1f→%.1f L\t%s\t%s\n",
			name, sc.Duration(),
			sc.CRFHealthy, sc.CRFLow, sc.CRFVNIEnd,
			render.FormatLiters(sc.TidalVolume), render.FormatStrain(sc.SafeStrain))
	}
	return w.Flush()
}

func benchRender(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	sc := config.GetPreset("short").Scenario()

	sizes := []struct{ w, h int }{{640, 360}, {1280, 720}, {1536, 864}}
	rates := []int{10, 20}

	fmt.Println("benchmarking renderer (null sink)")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tFPS\tFRAMES\tTIME\tFRAMES/SEC")

	for _, size := range sizes {
		for _, fps := range rates {
			r, err := render.New(render.Options{Width: size.w, Height: size.h, LungImage: cfg.LungImage})
			if err != nil {
				return err
			}
			res, err := pipeline.New(sc, r, &encode.Null{}, zerolog.Nop()).Run(context.Background(), fps)
			r.Close()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\n",
				size.w, size.h, fps, res.Frames, res.Elapsed.Round(time.Millisecond), res.RenderFPS)
		}
	}
	return w.Flush()
}

func watchScenario(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	if cfg.Scenario == "" {
		return fmt.Errorf("watch needs --scenario pointing at a YAML file")
	}
	log := cliconfig.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watch.New(cfg.Scenario, log, func(ctx context.Context) {
		if err := renderOnce(ctx, log); err != nil {
			log.Error().Err(err).Msg("render failed")
		}
	})
	fmt.Printf("watching %s (ctrl-c to stop)\n", cfg.Scenario)
	return w.Run(ctx)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	plan, err := batch.LoadPlan(args[0])
	if err != nil {
		return err
	}
	log := cliconfig.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if plan.Name != "" {
		fmt.Printf("plan: %s (%d jobs)\n", plan.Name, len(plan.Jobs))
	}
	start := time.Now()
	results, err := batch.Run(ctx, plan, cfg, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "JOB\tOUTPUT\tFRAMES")
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\n", res.Job, res.Out, res.Frames)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("completed %d jobs in %v\n", len(results), time.Since(start).Round(time.Millisecond))
	return nil
}

func renderOnce(ctx context.Context, log zerolog.Logger) error {
	sc, name, err := loadScenario()
	if err != nil {
		return err
	}

	format := encode.DetectFormat(cfg.Format, cfg.Out)
	out := outputPath(format)

	r, err := render.New(render.Options{Width: cfg.Width, Height: cfg.Height, LungImage: cfg.LungImage})
	if err != nil {
		return err
	}
	defer r.Close()

	sink, err := openSink(ctx, format, out)
	if err != nil {
		return err
	}
	res, err := pipeline.New(sc, r, sink, log).Run(ctx, cfg.FPS)
	if err != nil {
		return err
	}
	log.Info().Str("scenario", name).Str("output", out).Int("frames", res.Frames).Msg("rendered")
	return nil
}
