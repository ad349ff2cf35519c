package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"

	"ising-mc/internal/cli"
	"ising-mc/internal/core"
	"ising-mc/internal/mc"
	"ising-mc/internal/report"
	"ising-mc/internal/store"
)

func main() {
	configPath := flag.String("config", "", "YAML run configuration")
	model := flag.String("model", "", "lattice model: ising or twostate (default ising)")
	workers := flag.Int("workers", 0, "parallel temperatures (0 uses every CPU)")
	plotDir := flag.String("plots", "", "directory for PNG plots of the observables")
	dbPath := flag.String("db", "", "SQLite file to record the run in")
	chart := flag.Bool("chart", false, "print a terminal chart of the specific heat")
	verbose := flag.Bool("v", false, "log every finished temperature")
	var overrides cli.KVList
	flag.Var(&overrides, "set", "config override in key=value form (repeatable), e.g. n=32 or t_mean=2.3")
	flag.Parse()

	logger := cli.NewLogger(os.Stderr, *verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := options{plotDir: *plotDir, dbPath: *dbPath, chart: *chart}
	cfg, err := cli.LoadConfig(*configPath, *model, overrides.Map())
	if err == nil {
		if *workers > 0 {
			cfg.Workers = *workers
		}
		err = run(ctx, cfg, opts, logger)
	}
	if err != nil {
		logger.Error("sweep failed", "err", err)
		stop()
		os.Exit(1)
	}
}

type options struct {
	plotDir string
	dbPath  string
	chart   bool
}

func run(ctx context.Context, cfg mc.Config, opts options, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m, err := core.LookupModel(cfg.Model)
	if err != nil {
		return err
	}
	temps, err := cfg.TemperatureSet()
	if err != nil {
		return err
	}
	logger.Info("temperature set ready",
		"grid", cfg.Grid,
		"requested", cfg.Temperatures.Count,
		"kept", len(temps),
		"min", temps[0],
		"max", temps[len(temps)-1],
	)

	runner := &mc.Runner{Params: cfg.Params(), Seed: cfg.Seed, Workers: cfg.Workers, Logger: logger}
	res, err := runner.Run(ctx, temps, m)
	if err != nil {
		return err
	}

	if err := report.WriteTable(os.Stdout, res); err != nil {
		return err
	}
	if opts.chart {
		out, err := report.SweepChart(res, "specific_heat", 60, 12)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(out)
	}
	if opts.plotDir != "" {
		paths, err := report.WriteSweepPlots(opts.plotDir, res)
		if err != nil {
			return err
		}
		logger.Info("plots written", "dir", opts.plotDir, "files", len(paths))
	}
	if opts.dbPath != "" {
		db, err := store.Open(opts.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		id, err := db.SaveSweep(cfg, res)
		if err != nil {
			return err
		}
		logger.Info("run recorded", "db", opts.dbPath, "run", id, "rows", humanize.Comma(int64(res.Len())))
	}
	return nil
}
