package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/BonnyAD9/stick-ants/internal/config"
	"github.com/BonnyAD9/stick-ants/internal/metrics"
	"github.com/BonnyAD9/stick-ants/internal/rod"
	"github.com/BonnyAD9/stick-ants/internal/sim"
	"github.com/BonnyAD9/stick-ants/internal/storage"
	"github.com/BonnyAD9/stick-ants/internal/tui"
	"github.com/BonnyAD9/stick-ants/internal/viz"
)

var (
	dataDir    string
	count      int
	mollyIndex int
	step       float64
	delayMs    int
	regular    bool
	resolution int
	seed       int64
	configFile string
	preset     string
	maxTicks   int
	runs       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stickants",
		Short: "ants on a rod simulator",
		Long: "Ants walk a rod at fixed speed, turn around when they bump " +
			"into each other and drop off the ends. One of them is Molly.",
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".stickants", "data directory")

	addSimFlags := func(cmd *cobra.Command) {
		cmd.Flags().IntVarP(&count, "count", "c", config.DefaultCount, "total number of ants")
		cmd.Flags().IntVarP(&mollyIndex, "molly", "m", -1, "molly's position rank (default center)")
		cmd.Flags().Float64VarP(&step, "speed", "s", config.DefaultStep, "distance walked per tick")
		cmd.Flags().IntVarP(&delayMs, "delta", "d", config.DefaultDelayMs, "delay between ticks in milliseconds")
		cmd.Flags().BoolVar(&regular, "regular", false, "evenly spaced ants facing the far end")
		cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with in-place terminal rendering",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVarP(&resolution, "resolution", "r", 0, "rod width in characters (default terminal width)")
	addSimFlags(rootCmd)
	rootCmd.Flags().IntVarP(&resolution, "resolution", "r", 0, "rod width in characters (default terminal width)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record the result",
		RunE:  runHeadless,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&maxTicks, "max-ticks", 0, "stop after this many ticks (0 = until the rod clears)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal UI",
		RunE:  runTUI,
	}
	addSimFlags(tuiCmd)
	tuiCmd.Flags().IntVarP(&resolution, "resolution", "r", 0, "rod width in characters")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export per-tick run history as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run many seeds and aggregate clear times",
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 32, "number of seeded runs")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, runCmd, tuiCmd, ensembleCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig resolves preset, then config file, then explicitly set flags,
// later sources winning.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("count") {
		cfg.Count = count
	}
	if cmd.Flags().Changed("molly") {
		cfg.MollyIndex = mollyIndex
	}
	if cmd.Flags().Changed("speed") {
		cfg.Step = step
	}
	if cmd.Flags().Changed("delta") {
		cfg.DelayMs = delayMs
	}
	if regular {
		cfg.Placement = "regular"
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if f := cmd.Flags().Lookup("resolution"); f != nil && f.Changed {
		cfg.Resolution = resolution
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func rodWidth(cfg *config.Config) int {
	if cfg.Resolution > 0 {
		return cfg.Resolution
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return config.DefaultResolution
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	rodCfg, err := cfg.RodConfig()
	if err != nil {
		return err
	}

	state, err := rod.NewState(rodCfg, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}

	renderer := tui.NewLiveRenderer(os.Stdout, rodWidth(cfg))
	renderer.Start()
	defer renderer.Stop()

	runner := sim.New(state)
	runner.AddObserver(renderer)

	_, err = runner.Run(context.Background(), sim.Config{
		Delay: time.Duration(cfg.DelayMs) * time.Millisecond,
	})
	return err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	rodCfg, err := cfg.RodConfig()
	if err != nil {
		return err
	}

	state, err := rod.NewState(rodCfg, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(state)
	runner.AddMetric(metrics.NewPopulation())
	runner.AddMetric(metrics.NewMollySurvival())
	runner.AddMetric(metrics.NewMollyExcursion())

	fmt.Printf("running %d ants (%s placement)...\n", rodCfg.Count, rodCfg.Placement)
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{MaxTicks: maxTicks})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Count, cfg.MollyIndex, cfg.Step, rodCfg.Placement.String(), cfg.Seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Ticks)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	rodCfg, err := cfg.RodConfig()
	if err != nil {
		return err
	}
	return viz.Run(rodCfg, cfg.Seed, time.Duration(cfg.DelayMs)*time.Millisecond, rodWidth(cfg))
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	rodCfg, err := cfg.RodConfig()
	if err != nil {
		return err
	}

	e := sim.NewEnsemble(rodCfg, runs, cfg.Seed)
	e.AddMetric(func() sim.Metric { return metrics.NewMollySurvival() })
	e.AddMetric(func() sim.Metric { return metrics.NewMollyExcursion() })

	fmt.Printf("running %d seeds of %d ants...\n", runs, rodCfg.Count)
	start := time.Now()

	results, err := e.Run(context.Background())
	if err != nil {
		return err
	}

	clear := make([]float64, len(results))
	var clearSum, survivalSum, excursionSum float64
	for i, res := range results {
		clear[i] = float64(res.Ticks)
		clearSum += float64(res.Ticks)
		survivalSum += res.Metrics["molly_survival_ticks"]
		excursionSum += res.Metrics["molly_excursion"]
	}
	n := float64(len(results))

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Printf("mean clear ticks:     %.1f\n", clearSum/n)
	fmt.Printf("mean molly survival:  %.1f ticks\n", survivalSum/n)
	fmt.Printf("mean molly excursion: %.3f\n\n", excursionSum/n)

	fmt.Println(asciigraph.Plot(clear,
		asciigraph.Height(8),
		asciigraph.Width(min(len(clear)*2, 80)),
		asciigraph.Caption("clear ticks per seed"),
	))

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tANTS\tPLACEMENT\tSTEP\tTICKS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.4f\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Count,
			run.Placement,
			run.Step,
			run.Ticks,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, counts, molly, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("ants: %d (%s)\n", meta.Count, meta.Placement)
	fmt.Printf("samples: %d\n\n", len(times))

	population := make([]float64, len(counts))
	for i, c := range counts {
		population[i] = float64(c)
	}
	fmt.Println(asciigraph.Plot(population,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("ants on the rod"),
	))
	fmt.Println()

	// molly's trace ends when she falls off
	trace := make([]float64, 0, len(molly))
	for _, m := range molly {
		if math.IsNaN(m) {
			break
		}
		trace = append(trace, m)
	}
	if len(trace) > 1 {
		fmt.Println(asciigraph.Plot(trace,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("molly position"),
		))
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.CopyHistory(args[0], os.Stdout)
}
