// Command sweep runs a simulation once per value of a numeric parameter and
// prints how each run ended.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"cell-society/internal/config"
	"cell-society/internal/logging"
	"cell-society/internal/sweep"
)

func main() {
	configPath := flag.String("config", "", "simulation description (JSON)")
	variant := flag.String("variant", "", "variant overriding the description")
	param := flag.String("param", "", "parameter to sweep, e.g. probCatch")
	lo := flag.Float64("min", 0, "first value")
	hi := flag.Float64("max", 1, "last value")
	step := flag.Float64("step", 0.1, "value increment")
	seeds := flag.Int("seeds", 1, "runs per value with consecutive seeds")
	steps := flag.Int("steps", 200, "generations per run")
	track := flag.String("track", "", "state whose peak and extinction are reported")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logging.Setup(os.Stderr, *logLevel)

	base := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if base, err = config.Load(*configPath); err != nil {
			slog.Error("load config", "error", err)
			os.Exit(1)
		}
	}
	if *variant != "" {
		base.Variant = *variant
	}

	plan := sweep.Plan{
		Base: base, Param: *param,
		Min: *lo, Max: *hi, Step: *step,
		Seeds: *seeds, Steps: *steps,
		Track: *track, Workers: *workers,
	}
	values, err := plan.Values()
	if err != nil {
		slog.Error("invalid range", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Sweeping %s over %d values x %d seeds (%d workers, %d steps)\n",
		*param, len(values), max(*seeds, 1), *workers, *steps)

	start := time.Now()
	results, err := sweep.Run(context.Background(), plan)
	if err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}
	report(os.Stdout, plan, results, time.Since(start))
}

func report(w io.Writer, plan sweep.Plan, results []sweep.Result, elapsed time.Duration) {
	if len(results) == 0 {
		return
	}
	names := make([]string, 0, len(results[0].Counts))
	for name := range results[0].Counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "\n%10s %8s %6s", plan.Param, "seed", "gen")
	for _, n := range names {
		fmt.Fprintf(w, " %10s", n)
	}
	if plan.Track != "" {
		fmt.Fprintf(w, " %10s %10s", "peak", "extinct")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 26+11*len(names)+22))

	for _, r := range results {
		fmt.Fprintf(w, "%10g %8d %6d", r.Value, r.Seed, r.Generation)
		for _, n := range names {
			fmt.Fprintf(w, " %10s", humanize.Comma(int64(r.Counts[n])))
		}
		if plan.Track != "" {
			extinct := "-"
			if r.ExtinctAt >= 0 {
				extinct = humanize.Comma(int64(r.ExtinctAt))
			}
			fmt.Fprintf(w, " %10s %10s", humanize.Comma(int64(r.Peak)), extinct)
		}
		if r.Err != nil {
			fmt.Fprintf(w, "  error: %v", r.Err)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\n%d runs in %s\n", len(results), elapsed.Round(time.Millisecond))
}
