package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/yongdeokkim7/rodsim/internal/config"
	"github.com/yongdeokkim7/rodsim/internal/engine"
	"github.com/yongdeokkim7/rodsim/internal/metrics"
	"github.com/yongdeokkim7/rodsim/internal/scenario"
	"github.com/yongdeokkim7/rodsim/internal/sim"
	"github.com/yongdeokkim7/rodsim/internal/store"
	"github.com/yongdeokkim7/rodsim/internal/tui"
	"github.com/yongdeokkim7/rodsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	nodes      int
	length     float64
	mass       float64
	stiffness  float64
	damping    float64
	gravity    float64
	integrator string
	configFile string
	preset     string
	// Plot options
	axis      int
	systemIdx int
	// Export options
	outFile string
	// Bench options
	profiling bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rodsim",
		Short: "elastic rod dynamics lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rodsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&axis, "axis", 1, "probe axis (0=x 1=y 2=z)")
	plotCmd.Flags().IntVar(&systemIdx, "system", 0, "system index")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "interactive live view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  liveView,
	}
	addScenarioFlags(liveCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}
	addScenarioFlags(benchCmd)
	benchCmd.Flags().BoolVar(&profiling, "profile", false, "write a CPU profile")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios and integrators",
		RunE:  listScenarios,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, liveCmd, benchCmd, scenariosCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "rod nodes")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "rod length")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "rod mass")
	cmd.Flags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "axial stiffness")
	cmd.Flags().Float64Var(&damping, "damping", config.DefaultDamping, "internal damping")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravity acceleration")
	cmd.Flags().StringVar(&integrator, "integrator", "verlet", "integrator")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves configuration precedence: config file, then preset,
// then defaults, with explicitly set flags overriding all of them.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	case preset != "" && name != "":
		cfg = config.GetPreset(name, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q for scenario %q (have: %s)",
				preset, name, strings.Join(config.ListPresets(name), ", "))
		}
	default:
		cfg = config.DefaultConfig()
	}

	if name != "" {
		cfg.Scenario = name
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("nodes") {
		cfg.Rod.Nodes = nodes
	}
	if flags.Changed("length") {
		cfg.Rod.Length = length
	}
	if flags.Changed("mass") {
		cfg.Rod.Mass = mass
	}
	if flags.Changed("stiffness") {
		cfg.Rod.Stiffness = stiffness
	}
	if flags.Changed("damping") {
		cfg.Rod.Damping = damping
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	registry := scenario.NewRegistry()
	drv, col, err := registry.Build(cfg)
	if err != nil {
		return err
	}
	drv.AddMetric(metrics.NewEnergy())
	drv.AddMetric(metrics.NewEnergyDrift())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := drv.Run(ctx, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Scenario, cfg.Integrator, cfg.Dt, cfg.Duration, result)
	if err != nil {
		return err
	}

	fields := [][2]string{
		{"run", runID},
		{"systems", fmt.Sprintf("%d", col.Len())},
		{"steps", fmt.Sprintf("%d", result.StepsTaken)},
		{"wall time", elapsed.Round(time.Millisecond).String()},
	}
	for name, value := range result.Metrics {
		fields = append(fields, [2]string{name, fmt.Sprintf("%.6g", value)})
	}
	if len(result.Errors) > 0 {
		fields = append(fields, [2]string{"errors", fmt.Sprintf("%v", result.Errors)})
	}
	fmt.Println(viz.Summary(fmt.Sprintf("rodsim — %s (%s)", cfg.Scenario, cfg.Integrator), fields))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tINTEGRATOR\tDT\tDURATION\tSYSTEMS\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%d\t%d\n",
			run.ID, run.Scenario, run.Integrator, run.Dt, run.Duration, run.Systems, run.Steps)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, _, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	col := systemIdx*3 + axis
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if col >= len(row) {
			return fmt.Errorf("system %d axis %d not recorded (run has %d systems)",
				systemIdx, axis, meta.Systems)
		}
		values = append(values, row[col])
	}

	axes := []string{"x", "y", "z"}
	caption := fmt.Sprintf("%s: system %d, %s", meta.ID, systemIdx, axes[axis%3])
	fmt.Println(viz.PlotSeries(values, caption, 15, 80))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, times, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	result := &sim.Result{
		Times:      times,
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
	}
	for _, row := range rows {
		step := make([]engine.Vec3, 0, len(row)/3)
		for j := 0; j+2 < len(row); j += 3 {
			step = append(step, engine.Vec3{row[j], row[j+1], row[j+2]})
		}
		result.Probes = append(result.Probes, step)
	}

	if outFile != "" {
		return store.ExportJSON(outFile, meta.Scenario, meta.Integrator, meta.Dt, meta.Duration, result)
	}
	return store.ExportJSONStdout(meta.Scenario, meta.Integrator, meta.Dt, meta.Duration, result)
}

func liveView(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	registry := scenario.NewRegistry()
	drv, _, err := registry.Build(cfg)
	if err != nil {
		return err
	}

	stepper, err := drv.NewStepper(sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true})
	if err != nil {
		return err
	}
	return tui.Run(stepper, cfg.Scenario, cfg.Dt)
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if profiling {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	registry := scenario.NewRegistry()
	drv, col, err := registry.Build(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := drv.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
	fmt.Printf("%s: %d systems, %d steps in %s (%.0f steps/s)\n",
		cfg.Scenario, col.Len(), result.StepsTaken, elapsed.Round(time.Millisecond), stepsPerSec)
	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	registry := scenario.NewRegistry()
	fmt.Println("scenarios:  ", strings.Join(registry.ListScenarios(), ", "))
	fmt.Println("integrators:", strings.Join(registry.ListIntegrators(), ", "))
	return nil
}
