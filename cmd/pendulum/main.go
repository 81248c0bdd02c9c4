package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pendulum/internal/analysis"
	"github.com/san-kum/pendulum/internal/config"
	"github.com/san-kum/pendulum/internal/export"
	"github.com/san-kum/pendulum/internal/gui"
	"github.com/san-kum/pendulum/internal/metrics"
	"github.com/san-kum/pendulum/internal/sim"
	"github.com/san-kum/pendulum/internal/storage"
	"github.com/san-kum/pendulum/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	gravity    float64
	debug      bool
	logDir     string
	frames     int
	steps      int
	runName    string
	svgPath    string
	frameRate  int
	arm        int
)

// main registers the pendulum commands and runs the root command, which opens
// the desktop window when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "pendulum",
		Short: "interactive pendulum chain simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if f := setupLogging(debug, logDir); f != nil {
				cobra.OnFinalize(func() { f.Close() })
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			gui.Run(cfg, newSimulator(cfg), cfg.Rand())
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".pendulum", "data directory for recorded runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a preset chain")
	pf.Int64Var(&seed, "seed", 0, "random seed for new arms (0: time based)")
	pf.Float64Var(&gravity, "gravity", 0.1, "gravity")
	pf.IntVar(&steps, "steps", sim.StepsPerFrame, "physics sub-steps per frame")
	pf.BoolVar(&debug, "debug", false, "write a debug log")
	pf.StringVar(&logDir, "log-dir", "logs", "directory for the debug log")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulator in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record the run",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	runCmd.Flags().StringVar(&runName, "name", "", "run name (defaults to the preset)")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as svg")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energies and the path of an arm",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&arm, "arm", -1, "arm to trace (negative counts from the end)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of an arm's swing",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&arm, "arm", -1, "arm to analyze (negative counts from the end)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Printf("  %-12s %d arms, gravity %.2f\n", name, len(p.Arms), p.Gravity)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the current configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
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

	flags := cmd.Flags()
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("steps") {
		cfg.StepsPerFrame = steps
	}
	if flags.Lookup("frames") != nil && flags.Changed("frames") {
		cfg.Frames = frames
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSimulator(cfg *config.Config) *sim.Simulator {
	s := sim.New(cfg.BuildChain(cfg.Anchor()), cfg.StepsPerFrame)
	s.SetPaused(cfg.Paused)
	return s
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	name := preset
	if name == "" {
		name = "pendulum"
	}
	return viz.Run(newSimulator(cfg), cfg.Rand(), name, frameRate)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(cfg.Arms) == 0 {
		return fmt.Errorf("nothing to simulate: choose a --preset or a --config with arms")
	}

	name := runName
	if name == "" {
		name = preset
	}
	if name == "" {
		name = "custom"
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := newSimulator(cfg)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s for %d frames...\n", name, cfg.Frames)
	start := time.Now()

	result, runErr := s.Run(ctx, cfg.SimConfig())
	if result == nil {
		return runErr
	}
	if errors.Is(runErr, context.Canceled) {
		fmt.Println("interrupted, saving partial run")
		runErr = nil
	}
	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Name:          name,
		Seed:          cfg.Seed,
		Gravity:       cfg.Gravity,
		StepsPerFrame: cfg.StepsPerFrame,
	}
	for _, a := range cfg.Arms {
		meta.Arms = append(meta.Arms, storage.ArmInfo{Length: a.Length, Mass: a.Mass, Drag: a.Drag})
	}

	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d frames in %v\n", result.FramesRun, elapsed)
	fmt.Printf("run id: %s\n", runID)
	if len(result.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range result.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}

	total := result.Series(func(s sim.Sample) float64 { return s.Total })
	if len(total) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(total, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("total energy")))
	}

	if svgPath != "" {
		w, h := cfg.Window.Width-cfg.Window.PanelWidth, cfg.Window.Height
		if err := os.WriteFile(svgPath, []byte(export.ChainToSVG(s.Chain(), w, h)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	return runErr
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tARMS\tFRAMES\tGRAVITY\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.3f\t%.4f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Arms),
			run.Frames,
			run.Gravity,
			run.Metrics["energy_drift"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("arms: %d\n", len(meta.Arms))
	fmt.Printf("samples: %d\n\n", len(samples))

	if len(samples) > 1 {
		result := &sim.Result{Samples: samples}
		series := []struct {
			caption string
			pick    func(sim.Sample) float64
		}{
			{"kinetic energy", func(s sim.Sample) float64 { return s.Kinetic }},
			{"potential energy", func(s sim.Sample) float64 { return s.Potential }},
			{"total energy", func(s sim.Sample) float64 { return s.Total }},
		}
		for _, sr := range series {
			fmt.Println(asciigraph.Plot(result.Series(sr.pick),
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(sr.caption),
			))
			fmt.Println()
		}
	}

	path := analysis.TraceArm(samples, arm)
	if len(path) == 0 {
		return fmt.Errorf("run %s has no arm %d", meta.ID, arm)
	}
	fmt.Printf("path of arm %d:\n", arm)
	fmt.Print(analysis.TraceToASCII(path, 80, 24))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	xs := analysis.ArmSeries(samples, arm, analysis.AxisX)
	if len(xs) < 4 {
		return fmt.Errorf("not enough samples of arm %d", arm)
	}

	// one sample per frame
	f := analysis.DominantFrequency(xs, 1)
	fmt.Printf("samples: %d\n", len(xs))
	fmt.Printf("dominant frequency: %.5f per frame\n", f)
	if f > 0 {
		fmt.Printf("swing period: %.1f frames\n", 1/f)
	} else {
		fmt.Println("swing period: none (arm at rest)")
	}

	ps := analysis.PowerSpectrum(xs)
	if len(ps) > 1 {
		limit := int(math.Min(float64(len(ps)), 80))
		fmt.Println()
		fmt.Println(asciigraph.Plot(ps[1:limit], asciigraph.Height(10), asciigraph.Caption("power spectrum (low bins)")))
	}
	return nil
}
