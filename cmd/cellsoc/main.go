// Command cellsoc runs a simulation headlessly and reports its populations.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"cell-society/internal/config"
	"cell-society/internal/core"
	"cell-society/internal/factory"
	"cell-society/internal/logging"
	"cell-society/internal/plot"
	"cell-society/internal/render"
	"cell-society/internal/store"
)

type options struct {
	configPath    string
	set           string
	steps         int
	dbPath        string
	resume        string
	plotPath      string
	savePath      string
	videoPath     string
	cellSize      int
	snapshotEvery int
	logLevel      string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("cellsoc failed", "error", err)
		os.Exit(1)
	}
}

func parseOptions(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("cellsoc", flag.ContinueOnError)
	err := config.Resolve(fs, args, []config.Option{
		{Flag: "config", Env: "CELLSOC_CONFIG", Usage: "simulation description (JSON)", Set: config.String(&o.configPath)},
		{Flag: "set", Env: "CELLSOC_SET", Usage: "comma-separated key=value overrides, e.g. variant=Fire,param.probCatch=0.6", Set: config.String(&o.set)},
		{Flag: "steps", Env: "CELLSOC_STEPS", Default: "100", Usage: "generations to run", Set: config.Int(&o.steps)},
		{Flag: "db", Env: "CELLSOC_DB", Usage: "SQLite file recording the run", Set: config.String(&o.dbPath)},
		{Flag: "resume", Env: "CELLSOC_RESUME", Usage: "run ID to continue from its latest snapshot (needs -db)", Set: config.String(&o.resume)},
		{Flag: "plot", Env: "CELLSOC_PLOT", Usage: "PNG file for the population chart", Set: config.String(&o.plotPath)},
		{Flag: "save", Env: "CELLSOC_SAVE", Usage: "JSON file receiving the final grid as a description", Set: config.String(&o.savePath)},
		{Flag: "video", Env: "CELLSOC_VIDEO", Usage: "MJPEG AVI file recording every generation", Set: config.String(&o.videoPath)},
		{Flag: "cell", Env: "CELLSOC_CELL", Default: "6", Usage: "video pixels per cell", Set: config.Int(&o.cellSize)},
		{Flag: "snapshot-every", Env: "CELLSOC_SNAPSHOT_EVERY", Default: "10", Usage: "generations between stored snapshots", Set: config.Int(&o.snapshotEvery)},
		{Flag: "log-level", Env: "CELLSOC_LOG_LEVEL", Default: "info", Usage: "debug, info, warn or error", Set: config.String(&o.logLevel)},
	})
	if err != nil {
		return o, err
	}
	if o.steps < 0 {
		return o, core.Configf("steps", "must be non-negative, got %d", o.steps)
	}
	if o.cellSize <= 0 {
		return o, core.Configf("cell", "must be positive, got %d", o.cellSize)
	}
	if o.resume != "" && o.dbPath == "" {
		return o, core.Configf("resume", "-resume needs -db")
	}
	return o, nil
}

// parseSet splits "k=v,k=v" into a FromMap-style override map.
func parseSet(s string) (map[string]string, error) {
	out := map[string]string{}
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, core.Configf("set", "expected key=value, got %q", pair)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}

func run(args []string, stdout io.Writer) error {
	o, err := parseOptions(args)
	if err != nil {
		return err
	}
	logger := logging.Setup(os.Stderr, o.logLevel)

	var db *store.Store
	if o.dbPath != "" {
		if db, err = store.Open(o.dbPath); err != nil {
			return err
		}
		defer db.Close()
	}

	cfg, err := loadSimulation(o, db)
	if err != nil {
		return err
	}
	g, err := factory.Build(cfg, factory.WithLogger(logger))
	if err != nil {
		return err
	}
	start := g.Generation()

	var rec *store.Recorder
	runID := o.resume
	if db != nil {
		if runID == "" {
			r, err := db.CreateRun(cfg)
			if err != nil {
				return err
			}
			runID = r.ID
			if err := db.SaveCounts(runID, g); err != nil {
				return err
			}
		}
		rec = db.NewRecorder(runID, o.snapshotEvery)
		g.Observe(rec)
		logger.Info("recording run", "run", runID, "db", o.dbPath)
	}
	chart := plot.NewRecorder(g)
	g.Observe(chart)

	var video *render.Video
	if o.videoPath != "" {
		palette, err := render.Palette(g.Rule().Variant(), cfg.Colors)
		if err != nil {
			return err
		}
		if video, err = render.NewVideo(o.videoPath, g, palette, o.cellSize, 10); err != nil {
			return err
		}
		defer video.Close()
		g.Observe(video)
	}

	logger.Info("running", "variant", cfg.Variant, "rows", cfg.Rows, "cols", cfg.Cols, "steps", o.steps, "seed", cfg.Seed)
	began := time.Now()
	stepErr := g.Run(o.steps)
	elapsed := time.Since(began)
	if stepErr != nil {
		logger.Error("step failed", "generation", g.Generation(), "error", stepErr)
	}
	if rec != nil {
		if rec.Err() != nil {
			return rec.Err()
		}
		if err := db.SaveSnapshot(runID, g.Snapshot()); err != nil {
			return err
		}
	}

	summarize(stdout, g, g.Generation()-start, elapsed)

	if video != nil {
		if video.Err() != nil {
			return video.Err()
		}
		if err := video.Close(); err != nil {
			return err
		}
		logger.Info("video written", "path", o.videoPath, "frames", video.Frames())
	}

	if o.plotPath != "" {
		if err := chart.Save(o.plotPath); err != nil {
			return err
		}
		logger.Info("plot written", "path", o.plotPath)
	}
	if o.savePath != "" {
		final := cfg
		final.InitialStates = slices.Clone(g.States())
		final.Generation = g.Generation()
		if err := final.Save(o.savePath); err != nil {
			return err
		}
		logger.Info("final grid saved", "path", o.savePath)
	}
	return stepErr
}

func loadSimulation(o options, db *store.Store) (config.Simulation, error) {
	overrides, err := parseSet(o.set)
	if err != nil {
		return config.Simulation{}, err
	}
	var cfg config.Simulation
	switch {
	case o.resume != "":
		if cfg, err = db.Resume(o.resume); err != nil {
			return config.Simulation{}, err
		}
	case o.configPath != "":
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Simulation{}, err
		}
	default:
		cfg = config.DefaultConfig()
	}
	cfg.Apply(overrides)
	return cfg, nil
}

func summarize(w io.Writer, g *core.Grid, steps int, elapsed time.Duration) {
	rate := 0.0
	if elapsed > 0 {
		rate = float64(steps) / elapsed.Seconds()
	}
	fmt.Fprintf(w, "%s  %dx%d  generation %s  (%s steps, %s steps/s)\n",
		g.Rule().Variant(), g.Size().Rows, g.Size().Cols,
		humanize.Comma(int64(g.Generation())), humanize.Comma(int64(steps)), humanize.FtoaWithDigits(rate, 1))
	hist := g.Histogram()
	for s, name := range g.StateNames() {
		pct := 100 * float64(hist[s]) / float64(g.Len())
		fmt.Fprintf(w, "  %-12s %10s  %5.1f%%\n", name, humanize.Comma(int64(hist[s])), pct)
	}
	if r, ok := g.Rule().(core.AgentReporter); ok {
		fmt.Fprintf(w, "  %-12s %10s\n", "agents", humanize.Comma(int64(len(r.Agents(g)))))
	}
}
