package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/linsolve/internal/config"
	"github.com/san-kum/linsolve/internal/export"
	"github.com/san-kum/linsolve/internal/solver"
	"github.com/san-kum/linsolve/internal/storage"
	"github.com/san-kum/linsolve/internal/trace"
	"github.com/san-kum/linsolve/internal/viz"
)

func runBatch(cmd *cobra.Command, args []string) error {
	entries, err := config.LoadBatch(args[0])
	if err != nil {
		return err
	}

	reqs := batchRequests(entries, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("solving batch", "file", args[0], "systems", len(reqs), "workers", cfg.Workers)
	results, err := solver.Batch(ctx, reqs, cfg.Workers)
	if err != nil {
		return fmt.Errorf("batch %s: %w", args[0], err)
	}

	var runIDs []string
	if save {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		for i, res := range results {
			runID, err := st.Save(reqs[i].System, res)
			if err != nil {
				return fmt.Errorf("save run %d: %w", i+1, err)
			}
			runIDs = append(runIDs, runID)
		}
	}

	if asJSON {
		return printJSON(results)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tMETHOD\tSTATUS\tITER\tSOLUTION")
	for i, res := range results {
		status, detail := "ok", "["+strings.Join(trace.FormatVector(res.Solution, cfg.Precision), ", ")+"]"
		if !res.Success {
			status, detail = "failed", res.Error
		} else if res.Converged != nil && !*res.Converged {
			status = "not converged"
		}
		iters := "-"
		if res.IterationCount != nil {
			iters = fmt.Sprint(*res.IterationCount)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, reqs[i].System.Name, res.Method, status, iters, detail)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, id := range runIDs {
		fmt.Printf("saved run: %s\n", id)
	}
	return nil
}

// batchRequests fills unset per-entry options from c.
func batchRequests(entries []config.BatchEntry, c *config.Config) []solver.Request {
	reqs := make([]solver.Request, len(entries))
	for i, e := range entries {
		req := solver.Request{
			Method:        trace.Method(c.Method),
			System:        e.System,
			Tolerance:     c.Tolerance,
			MaxIterations: c.MaxIterations,
		}
		if e.Method != "" {
			req.Method = trace.Method(e.Method)
		}
		if e.Tolerance > 0 {
			req.Tolerance = e.Tolerance
		}
		if e.MaxIterations != nil {
			req.MaxIterations = *e.MaxIterations
		}
		if req.System.Name == "" {
			req.System.Name = fmt.Sprintf("system%d", i+1)
		}
		reqs[i] = req
	}
	return reqs
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tTIME\tSIZE\tSTATUS\tITER")

	for _, run := range runs {
		status := "ok"
		if !run.Success {
			status = "failed"
		} else if run.Converged != nil && !*run.Converged {
			status = "not converged"
		}
		iters := "-"
		if run.Iterations != nil {
			iters = fmt.Sprint(*run.Iterations)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%s\t%s\n",
			run.ID,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size, run.Size,
			status,
			iters,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	run, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(run)
	}

	fmt.Printf("run: %s\n", run.Meta.ID)
	fmt.Printf("time: %s\n\n", run.Meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Print(renderer().Result(run.Result))

	if len(run.Meta.Metrics) > 0 {
		fmt.Println()
		for _, name := range sortedKeys(run.Meta.Metrics) {
			fmt.Printf("%s: %s\n", name, trace.FormatNumber(run.Meta.Metrics[name], cfg.Precision))
		}
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	errs, _, err := st.LoadIterations(runID)
	if err != nil {
		return fmt.Errorf("run %s has no iteration data: %w", runID, err)
	}
	if len(errs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("method: %s\n", meta.Method)
	fmt.Printf("iterations: %d\n\n", len(errs))
	fmt.Println(viz.ConvergenceChart(errs, runID))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(cfg.DataDir)
	run, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = runID + ".json"
	}
	if err := export.ExportJSON(path, run.System, run.Result); err != nil {
		return err
	}
	fmt.Printf("exported %s\n", path)
	return nil
}

func exportPlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(cfg.DataDir)
	errs, _, err := st.LoadIterations(runID)
	if err != nil {
		return fmt.Errorf("run %s has no iteration data: %w", runID, err)
	}

	if err := export.SaveConvergencePlot(outPath, "Jacobi convergence: "+runID, errs); err != nil {
		return err
	}
	fmt.Printf("exported %s\n", outPath)
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
