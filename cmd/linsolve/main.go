package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/linsolve/internal/config"
	"github.com/san-kum/linsolve/internal/linalg"
	"github.com/san-kum/linsolve/internal/logging"
	"github.com/san-kum/linsolve/internal/server"
	"github.com/san-kum/linsolve/internal/solver"
	"github.com/san-kum/linsolve/internal/storage"
	"github.com/san-kum/linsolve/internal/trace"
	"github.com/san-kum/linsolve/internal/viz"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	logFormat  string
	theme      string
	precision  int

	// system input
	matrixStr    string
	constantsStr string
	systemFile   string
	preset       string
	size         int

	tolerance float64
	maxIter   int
	method    string
	save      bool
	asJSON    bool
	showPlot  bool
	addr      string
	outPath   string

	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "linsolve",
		Short:             "step-by-step solver for small linear systems",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "run store directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, "color theme")
	rootCmd.PersistentFlags().IntVar(&precision, "precision", config.DefaultPrecision, "decimals shown for computed values")

	directCmd := &cobra.Command{
		Use:   "direct",
		Short: "solve with the inverse-matrix method",
		RunE:  runDirect,
	}
	addSystemFlags(directCmd)
	addOutputFlags(directCmd)

	jacobiCmd := &cobra.Command{
		Use:   "jacobi",
		Short: "solve with Jacobi iteration",
		RunE:  runJacobi,
	}
	addSystemFlags(jacobiCmd)
	addOutputFlags(jacobiCmd)
	addIterationFlags(jacobiCmd)
	jacobiCmd.Flags().BoolVar(&showPlot, "plot", false, "plot max error per iteration")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "check a system against the Jacobi preconditions",
		RunE:  runValidate,
	}
	addSystemFlags(validateCmd)
	validateCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	dominanceCmd := &cobra.Command{
		Use:   "dominance",
		Short: "check strict diagonal dominance",
		RunE:  runDominance,
	}
	addSystemFlags(dominanceCmd)
	dominanceCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "solve with both methods and compare the solutions",
		RunE:  runCompare,
	}
	addSystemFlags(compareCmd)
	addIterationFlags(compareCmd)
	compareCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in example systems",
		RunE:  listPresets,
	}

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "solve and page through the steps interactively",
		RunE:  runBrowse,
	}
	addSystemFlags(browseCmd)
	addIterationFlags(browseCmd)
	browseCmd.Flags().StringVar(&method, "method", config.DefaultMethod, "direct or jacobi")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "solve every system of a yaml batch file concurrently",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&save, "save", false, "store every run")
	batchCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP API",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "render a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the convergence of a stored Jacobi run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output file (default <run_id>.json)")

	exportPlotCmd := &cobra.Command{
		Use:   "export-plot [run_id]",
		Short: "render the convergence chart of a stored run to PNG or SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPlot,
	}
	exportPlotCmd.Flags().StringVar(&outPath, "out", "convergence.png", "output file (.png or .svg)")

	rootCmd.AddCommand(directCmd, jacobiCmd, validateCmd, dominanceCmd, compareCmd, presetsCmd, browseCmd, batchCmd, serveCmd, listCmd, showCmd, plotCmd, exportJSONCmd, exportPlotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&matrixStr, "matrix", "", `coefficients, rows split by ';' (e.g. "2,3;1,-1")`)
	cmd.Flags().StringVar(&constantsStr, "constants", "", `constants (e.g. "7,1"); defaults to all ones`)
	cmd.Flags().StringVar(&systemFile, "file", "", "yaml file holding coefficients and constants")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in example system")
	cmd.Flags().IntVar(&size, "size", 0, "use the n×n identity system with unit constants")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&save, "save", false, "store the run")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
}

func addIterationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "convergence tolerance")
	cmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIterations, "iteration limit")
}

// setup loads the config and lets explicitly set flags override it.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("precision") {
		cfg.Precision = precision
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("max-iter") {
		cfg.MaxIterations = maxIter
	}
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("addr") {
		cfg.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger = logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	return nil
}

// resolveSystem picks the system from, in order: --preset, --file,
// --matrix, --size, then the config file.
func resolveSystem() (linalg.System, error) {
	switch {
	case preset != "":
		sys, ok := config.GetPreset(preset)
		if !ok {
			return linalg.System{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return sys, nil
	case systemFile != "":
		return config.LoadSystem(systemFile)
	case matrixStr != "":
		a, err := config.ParseMatrix(matrixStr)
		if err != nil {
			return linalg.System{}, fmt.Errorf("--matrix: %w", err)
		}
		_, b := linalg.DefaultSystem(len(a))
		if constantsStr != "" {
			if b, err = config.ParseVector(constantsStr); err != nil {
				return linalg.System{}, fmt.Errorf("--constants: %w", err)
			}
		}
		return linalg.System{Coefficients: a, Constants: b}, nil
	case size > 0:
		a, b := linalg.DefaultSystem(size)
		return linalg.System{Name: fmt.Sprintf("identity%d", size), Coefficients: a, Constants: b}, nil
	case cfg.System != nil:
		return cfg.System.Clone(), nil
	}
	return linalg.System{}, errors.New("no system given: use --preset, --file, --matrix or --size")
}

func solve(ctx context.Context, m trace.Method) (linalg.System, trace.Result, error) {
	sys, err := resolveSystem()
	if err != nil {
		return sys, trace.Result{}, err
	}

	req := solver.Request{
		Method:        m,
		System:        sys,
		Tolerance:     cfg.Tolerance,
		MaxIterations: cfg.MaxIterations,
	}
	prog := newProgress(logger)
	if m == trace.MethodJacobi {
		req.Observer = prog
	}

	res, err := solver.Solve(ctx, req)
	if err != nil {
		return sys, res, err
	}
	prog.summary()

	attrs := []any{"method", m, "size", sys.Size(), "success", res.Success}
	if res.IterationCount != nil {
		attrs = append(attrs, "iterations", *res.IterationCount, "converged", *res.Converged)
	}
	logger.Debug("solved system", attrs...)
	return sys, res, nil
}

func renderer() *viz.Renderer {
	return viz.NewRenderer(viz.GetTheme(theme), cfg.Precision)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runDirect(cmd *cobra.Command, args []string) error {
	sys, res, err := solve(cmd.Context(), trace.MethodDirect)
	if err != nil {
		return err
	}
	return report(sys, res)
}

func runJacobi(cmd *cobra.Command, args []string) error {
	sys, res, err := solve(cmd.Context(), trace.MethodJacobi)
	if err != nil {
		return err
	}
	if err := report(sys, res); err != nil {
		return err
	}
	if showPlot && !asJSON {
		if chart := viz.ConvergenceChart(res.MaxErrors(), "jacobi"); chart != "" {
			fmt.Println()
			fmt.Println(chart)
		}
	}
	return nil
}

func report(sys linalg.System, res trace.Result) error {
	if asJSON {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		fmt.Print(renderer().Result(res))
	}

	if !save {
		return nil
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(sys, res)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	logger.Info("saved run", "id", runID, "dir", cfg.DataDir)
	if !asJSON {
		fmt.Printf("\nsaved run: %s\n", runID)
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	sys, err := resolveSystem()
	if err != nil {
		return err
	}
	v := solver.ValidateJacobiInput(sys.Coefficients, sys.Constants)
	if asJSON {
		return printJSON(v)
	}
	fmt.Print(renderer().Validation(v))
	return nil
}

func runDominance(cmd *cobra.Command, args []string) error {
	sys, err := resolveSystem()
	if err != nil {
		return err
	}
	dominant := solver.CheckDiagonalDominance(sys.Coefficients)
	if asJSON {
		return printJSON(map[string]bool{"isDiagonallyDominant": dominant})
	}
	fmt.Printf("diagonally dominant: %t\n", dominant)
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	sys, err := resolveSystem()
	if err != nil {
		return err
	}
	c, err := solver.Compare(cmd.Context(), sys, cfg.Tolerance, cfg.MaxIterations)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(c)
	}
	fmt.Print(renderer().Comparison(c))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		sys, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%s\n", name, sys.Size(), sys.Size(), config.Presets[name].Description)
	}
	return w.Flush()
}

func runBrowse(cmd *cobra.Command, args []string) error {
	_, res, err := solve(cmd.Context(), trace.Method(cfg.Method))
	if err != nil {
		return err
	}
	budget := 0
	if res.Method == trace.MethodJacobi {
		budget = cfg.MaxIterations
	}
	return viz.RunBrowser(res, viz.GetTheme(theme), cfg.Precision, budget)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(solver.NewRegistry(), logger).ListenAndServe(ctx, cfg.Addr)
}
