package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/quakeviz/quakeviz/internal/analysis"
	"github.com/quakeviz/quakeviz/internal/anim"
	"github.com/quakeviz/quakeviz/internal/config"
	"github.com/quakeviz/quakeviz/internal/dataset"
	"github.com/quakeviz/quakeviz/internal/export"
	"github.com/quakeviz/quakeviz/internal/render"
	"github.com/quakeviz/quakeviz/internal/video"
	"github.com/quakeviz/quakeviz/internal/viz"
)

var (
	configFile string
	preset     string
	output     string
	startTime  float64
	switchTime float64
	endTime    float64
	fastStep   float64
	slowStep   float64
	fps        int
	// Frame export
	frameIndex int
	svgOut     string
	// Timeline binning
	bins int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quakeviz",
		Short: "fault-valve fluid animation renderer",
		Long:  "quakeviz renders a precomputed fluid-diffusion run (mass field, valve states, rupture catalog) into a frame-by-frame video.",
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_dir]",
		Short: "render a run to video",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	addConfigFlags(renderCmd)
	renderCmd.Flags().StringVar(&output, "out", "", "output video path (overrides config)")

	previewCmd := &cobra.Command{
		Use:   "preview [run_dir]",
		Short: "play a run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	addConfigFlags(previewCmd)

	infoCmd := &cobra.Command{
		Use:   "info [run_dir]",
		Short: "summarize a run directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	frameCmd := &cobra.Command{
		Use:   "frame [run_dir]",
		Short: "export a single frame",
		Args:  cobra.ExactArgs(1),
		RunE:  runFrame,
	}
	addConfigFlags(frameCmd)
	frameCmd.Flags().IntVar(&frameIndex, "index", 1, "frame index to export")
	frameCmd.Flags().StringVar(&output, "out", "frame.png", "output PNG path")
	frameCmd.Flags().StringVar(&svgOut, "svg", "", "also export a canvas SVG to this path")

	timelineCmd := &cobra.Command{
		Use:   "timeline [run_dir]",
		Short: "plot total mass and event rate over the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runTimeline,
	}
	timelineCmd.Flags().IntVar(&bins, "bins", 60, "event histogram bins")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_dir]",
		Short: "frequency analysis of the total mass series",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list render presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(renderCmd, previewCmd, infoCmd, frameCmd, timelineCmd, analyzeCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&startTime, "start", config.DefaultStartTime, "start time")
	cmd.Flags().Float64Var(&switchTime, "switch", config.DefaultSwitchTime, "fast→slow switch time")
	cmd.Flags().Float64Var(&endTime, "end", config.DefaultEndTime, "end time")
	cmd.Flags().Float64Var(&fastStep, "fast-step", config.DefaultFastStep, "fast phase step")
	cmd.Flags().Float64Var(&slowStep, "slow-step", config.DefaultSlowStep, "slow phase step")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "video frame rate")
}

// resolveConfig layers preset, config file and explicit flags, then
// validates before any frame work starts.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override both.
	if cmd.Flags().Changed("start") {
		cfg.StartTime = startTime
	}
	if cmd.Flags().Changed("switch") {
		cfg.SwitchTime = switchTime
	}
	if cmd.Flags().Changed("end") {
		cfg.EndTime = endTime
	}
	if cmd.Flags().Changed("fast-step") {
		cfg.FastStep = fastStep
	}
	if cmd.Flags().Changed("slow-step") {
		cfg.SlowStep = slowStep
	}
	if cmd.Flags().Changed("fps") {
		cfg.Video.FPS = fps
	}
	if cmd.Flags().Changed("out") {
		cfg.Video.Output = output
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(args[0])
	if err != nil {
		return err
	}

	r, err := render.New(cfg.Video.Width, cfg.Video.Height, len(ds.Mass[0]), ds.MassMax())
	if err != nil {
		return err
	}

	w, err := video.NewWriter(cfg.Video.Output, r, cfg.Video.Width, cfg.Video.Height, cfg.Video.FPS)
	if err != nil {
		return err
	}

	st, err := cfg.Stepper()
	if err != nil {
		return err
	}
	a := anim.NewAnimator(st, ds.Valves(), ds.Events, ds.Mass, ds.Bitmap, cfg.FadeParams(), cfg.EventWindow)

	fmt.Printf("rendering %s: %d frames at %d fps...\n", ds.Meta.ID, a.FrameCount()-1, cfg.Video.FPS)
	start := time.Now()

	runErr := a.Run(cmd.Context(), w)
	if err := w.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("wrote %d frames to %s\n", w.Frames(), cfg.Video.Output)
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(args[0])
	if err != nil {
		return err
	}

	player, err := viz.NewPlayer(ds, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(player)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	ds, err := dataset.Load(args[0])
	if err != nil {
		return err
	}

	lo, hi := ds.TimeRange()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", ds.Meta.ID)
	fmt.Fprintf(w, "STEPS\t%d\n", ds.Steps())
	fmt.Fprintf(w, "GRID\t%d cells (dx=%g)\n", len(ds.Mass[0]), ds.Meta.Dx)
	fmt.Fprintf(w, "VALVES\t%d\n", ds.ValveCount())
	fmt.Fprintf(w, "EVENTS\t%d\n", len(ds.Events))
	fmt.Fprintf(w, "TIME\t%.4fs – %.4fs\n", lo, hi)
	fmt.Fprintf(w, "SAMPLE\t%gs\n", ds.Meta.SampleStep)
	return w.Flush()
}

func runFrame(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(args[0])
	if err != nil {
		return err
	}

	st, err := cfg.Stepper()
	if err != nil {
		return err
	}
	if frameIndex < 1 || frameIndex >= st.FrameCount() {
		return fmt.Errorf("frame index %d outside [1, %d)", frameIndex, st.FrameCount())
	}
	if st.FrameCount() > ds.Steps() {
		return fmt.Errorf("%w: %d frames, %d data rows", anim.ErrShapeMismatch, st.FrameCount(), ds.Steps())
	}

	// Replay the clock up to the requested frame so the dual-speed
	// phase state is correct.
	var now float64
	for i := 1; i <= frameIndex; i++ {
		now = st.Time(i)
	}

	valves := ds.Valves()
	if err := anim.AdvanceValves(frameIndex, ds.Bitmap, valves); err != nil {
		return err
	}
	active := anim.ActiveEvents(ds.Events, now-cfg.EventWindow, now, cfg.FadeParams())

	frame := &anim.Frame{
		Index:  frameIndex,
		Time:   now,
		Mass:   ds.Mass[frameIndex],
		Valves: valves,
		Events: active,
	}

	r, err := render.New(cfg.Video.Width, cfg.Video.Height, len(ds.Mass[0]), ds.MassMax())
	if err != nil {
		return err
	}
	img, err := r.Frame(frame)
	if err != nil {
		return err
	}
	if err := render.SavePNG(img, output); err != nil {
		return err
	}
	fmt.Printf("wrote %s (t=%.4fs)\n", output, now)

	if svgOut != "" {
		canvas := viz.NewCanvas(80, 24)
		viz.DrawFrame(canvas, frame.Mass, ds.MassMax(), valves, active)
		if err := export.SaveSVG(canvas, 4.0, svgOut); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func runTimeline(cmd *cobra.Command, args []string) error {
	if bins < 1 {
		return fmt.Errorf("bins must be at least 1, got %d", bins)
	}

	ds, err := dataset.Load(args[0])
	if err != nil {
		return err
	}

	totals := ds.TotalMass()
	if len(totals) == 0 {
		return fmt.Errorf("no data to plot")
	}

	graph := asciigraph.Plot(totals,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total mass vs step"),
	)
	fmt.Println(graph)
	fmt.Println()

	if len(ds.Events) > 0 {
		lo, hi := ds.TimeRange()
		span := hi - lo
		if span <= 0 {
			span = 1
		}
		hist := make([]float64, bins)
		for _, ev := range ds.Events {
			b := int((ev.T - lo) / span * float64(bins-1))
			if b >= 0 && b < bins {
				hist[b]++
			}
		}
		graph = asciigraph.Plot(hist,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("events per bin"),
		)
		fmt.Println(graph)
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ds, err := dataset.Load(args[0])
	if err != nil {
		return err
	}

	totals := ds.TotalMass()
	if len(totals) == 0 {
		return fmt.Errorf("no data")
	}

	ps := analysis.Spectrum(totals)
	plotData := ps[:len(ps)/4]
	if len(plotData) < 2 {
		plotData = ps
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (total mass)"),
	)
	fmt.Println(graph)
	fmt.Println()

	step := ds.Meta.SampleStep
	if step == 0 && len(ds.Times) > 1 {
		step = ds.Times[1] - ds.Times[0]
	}
	freq := analysis.DominantFrequency(ps, step)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}
