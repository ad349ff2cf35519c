package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"ising-mc/internal/cli"
	"ising-mc/internal/core"
	"ising-mc/internal/mc"
	"ising-mc/internal/render"
	"ising-mc/internal/report"
	"ising-mc/internal/store"
)

type options struct {
	videoPath string
	fps       int
	scale     int
	frameDir  string
	plotPath  string
	dbPath    string
	burnIn    int
	quiet     bool
}

func main() {
	configPath := flag.String("config", "", "YAML run configuration")
	model := flag.String("model", "", "lattice model: ising or twostate (default ising)")
	var opts options
	flag.StringVar(&opts.videoPath, "video", "", "write snapshots to this MJPEG .avi file")
	flag.IntVar(&opts.fps, "fps", 10, "video frame rate")
	flag.IntVar(&opts.scale, "scale", 4, "pixels per site in video frames and PNG snapshots")
	flag.StringVar(&opts.frameDir, "frames", "", "directory for PNG snapshots")
	flag.StringVar(&opts.plotPath, "plot", "", "PNG file for the energy and magnetization trace")
	flag.StringVar(&opts.dbPath, "db", "", "SQLite file to record the trace in")
	flag.IntVar(&opts.burnIn, "burnin", -1, "sweeps skipped by the summary (default a fifth of the run)")
	flag.BoolVar(&opts.quiet, "q", false, "do not print progress lines")
	verbose := flag.Bool("v", false, "verbose logging")
	var overrides cli.KVList
	flag.Var(&overrides, "set", "config override in key=value form (repeatable), e.g. temp=2.0 or init=ground")
	flag.Parse()

	logger := cli.NewLogger(os.Stderr, *verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := cli.LoadConfig(*configPath, *model, overrides.Map())
	if err == nil {
		err = run(ctx, cfg, opts, logger)
	}
	if err != nil {
		logger.Error("trace failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg mc.Config, opts options, logger *slog.Logger) error {
	if err := cfg.ValidateTrace(); err != nil {
		return err
	}
	m, err := core.LookupModel(cfg.Model)
	if err != nil {
		return err
	}
	tc := cfg.Trace
	chain, err := mc.NewChain(m, tc.Size, tc.Temperature, tc.Init, cfg.Seed)
	if err != nil {
		return err
	}

	var video *render.VideoWriter
	if opts.videoPath != "" {
		video, err = render.NewVideoWriter(opts.videoPath, tc.Size, opts.scale, opts.fps)
		if err != nil {
			return err
		}
		defer func() {
			if video != nil {
				video.Close()
			}
		}()
	}
	if opts.frameDir != "" {
		if err := os.MkdirAll(opts.frameDir, 0o755); err != nil {
			return fmt.Errorf("create frame dir: %w", err)
		}
	}

	logger.Info("starting trace",
		"model", m.Name(),
		"size", tc.Size,
		"T", tc.Temperature,
		"steps", tc.Steps,
		"init", tc.Init,
		"trials", humanize.Comma(int64(tc.Steps)*int64(tc.Size)*int64(tc.Size)),
	)
	if !opts.quiet {
		fmt.Printf("%8s  %10s  %10s\n", "step", "E", "M")
	}

	observe := func(p mc.TracePoint, snap *core.Lattice) error {
		if !opts.quiet {
			fmt.Printf("%8d  %10.5f  %10.5f\n", p.Step, p.Energy, p.Magnetization)
		}
		if video != nil {
			if err := video.AddLattice(snap); err != nil {
				return err
			}
		}
		if opts.frameDir != "" {
			path := filepath.Join(opts.frameDir, fmt.Sprintf("%s_step_%06d.png", m.Name(), p.Step))
			if err := render.WritePNG(path, snap, opts.scale); err != nil {
				return err
			}
		}
		return nil
	}

	tr, err := mc.RunTrace(ctx, chain, tc.Steps, tc.Every, observe)
	if err != nil {
		return err
	}
	if video != nil {
		if err := video.Close(); err != nil {
			return err
		}
		video = nil
		logger.Info("video written", "path", opts.videoPath)
	}

	burnIn := opts.burnIn
	if burnIn < 0 {
		burnIn = tc.Steps / 5
	}
	s := tr.Summary(burnIn)
	fmt.Println()
	fmt.Print(report.TraceChart(tr, 60, 10))
	fmt.Printf("\nafter %d burn-in sweeps (%d samples): E=%.5f±%.5f M=%.5f±%.5f |M|=%.5f\n",
		burnIn, s.Samples, s.MeanEnergy, s.StdEnergy, s.MeanMagnet, s.StdMagnet, s.MeanAbsMagnet)

	if opts.plotPath != "" {
		if err := report.WriteTracePlot(opts.plotPath, tr); err != nil {
			return err
		}
		logger.Info("plot written", "path", opts.plotPath)
	}
	if opts.dbPath != "" {
		db, err := store.Open(opts.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		id, err := db.SaveTrace(cfg, tr)
		if err != nil {
			return err
		}
		logger.Info("run recorded", "db", opts.dbPath, "run", id, "points", humanize.Comma(int64(len(tr.Points))))
	}
	return nil
}
