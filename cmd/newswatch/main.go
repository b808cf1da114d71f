package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"newswatch/pkg/config"
	"newswatch/pkg/content"
	"newswatch/pkg/discovery"
	"newswatch/pkg/llm"
	"newswatch/pkg/notify"
	"newswatch/pkg/proc"
	"newswatch/pkg/scheduler"
	"newswatch/pkg/store"
	"newswatch/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`
	Once   bool   `long:"once" description:"run a single pipeline pass and exit"`
	DryRun bool   `long:"dry-run" description:"log deliveries instead of sending, no history writes"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		setupLog(opts.Debug)
		lgr.Printf("[ERROR] can't load config %s: %v", opts.Config, err)
		os.Exit(1)
	}
	setupLog(opts.Debug, cfg.Telegram.Token, cfg.LLM.APIKey)

	lgr.Printf("[INFO] starting newswatch version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	err = run(ctx, cfg, opts)
	cancel()

	if err != nil && ctx.Err() == nil {
		lgr.Printf("[ERROR] newswatch failed: %v", err)
		os.Exit(1)
	}

	lgr.Printf("[INFO] shutdown complete")
}

// run wires the pipeline and executes it once or on a schedule
func run(ctx context.Context, cfg *config.Config, opts Opts) error {
	hist, err := store.New(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("can't open history store: %w", err)
	}
	defer func() {
		if err := hist.Close(); err != nil {
			lgr.Printf("[WARN] history store close: %v", err)
		}
	}()

	filter := discovery.NewFilter(cfg.Watch.BlockedTerms, cfg.Watch.BlockedOrigins)
	processor := proc.NewProcessor(proc.Params{
		Source:          discovery.New(cfg.Search, cfg.Watch.PerEntityCap, filter),
		Extractor:       content.NewExtractor(cfg.Extract),
		Summarizer:      llm.NewSummarizer(cfg.GetLLMConfig()),
		Notifier:        notify.NewTelegram(cfg.Telegram),
		Store:           hist,
		Entities:        cfg.Watch.Entities,
		SummaryCooldown: cfg.Pacing.SummaryCooldown,
		NotifyCooldown:  cfg.Pacing.NotifyCooldown,
		DryRun:          opts.DryRun,
	})

	if !cfg.LLMConfigured() {
		lgr.Printf("[WARN] summarization not configured, placeholder summaries will be delivered")
	}

	if opts.Once {
		_, err := processor.Run(ctx)
		return err
	}

	sched := scheduler.New(processor, cfg.Schedule.Interval)
	sched.Start(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		sched.Stop()
		return nil
	})
	if cfg.Server.Enabled {
		srv := server.New(cfg, processor, revision, opts.Debug)
		g.Go(func() error { return srv.Run(gctx) })
	}

	return g.Wait()
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	for _, sec := range secs {
		if sec != "" {
			logOpts = append(logOpts, lgr.Secret(sec))
		}
	}

	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
