package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gameoflife/src/config"
	"gameoflife/src/universe"
	"gameoflife/src/view"
)

//EnvOptions are the command line options which are not part of universe.Options
type EnvOptions struct {
	interactive bool
	configPath  string
	template    string
	generations int
	every       int
	metricsAddr string
	verbose     bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("game of life failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(args []string) error {
	eo, uo, err := parseOptions(args)
	if err != nil {
		return err
	}
	logger := newLogger(eo)

	o := universe.DefaultOptions
	var templates []universe.Template
	if eo.configPath != "" {
		f, err := config.Load(eo.configPath)
		if err != nil {
			return err
		}
		o = o.Merge(f.Options())
		templates = f.UniverseTemplates()
		if eo.template == "" {
			eo.template = f.Template
		}
	}
	o = o.Merge(uo)

	s, err := universe.NewSimulationFromOptions(&o, logger)
	if err != nil {
		return err
	}
	defer s.Close()
	for _, tmpl := range templates {
		s.AddTemplate(tmpl)
	}
	if eo.template != "" {
		if err := s.SettleTemplate(eo.template); err != nil {
			return err
		}
	}

	if eo.metricsAddr != "" {
		stop, err := serveMetrics(s, eo.metricsAddr, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	if eo.interactive {
		v, err := view.NewViewTerminal(logger)
		if err != nil {
			return err
		}
		s.RegisterViewer(v)
		return v.Start()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	out := view.NewConsoleOut(os.Stdout, isatty.IsTerminal(os.Stdout.Fd()), eo.every, eo.generations)
	s.RegisterViewer(out)
	out.Start()
	s.Play()
	select {
	case <-out.Done():
	case <-ctx.Done():
		logger.Info("interrupted")
	}
	s.Pause()
	out.Finish()
	return nil
}

func parseOptions(args []string) (*EnvOptions, universe.Options, error) {
	var (
		uo     universe.Options
		engine string
	)
	eo := &EnvOptions{generations: 100, every: 10}

	p := flaggy.NewParser("gameoflife")
	p.Description = "Conway's Game of Life on a toroidal field"
	p.ShowHelpOnUnexpected = true
	p.Int(&uo.Width, "x", "width", "Width of a simulation field")
	p.Int(&uo.Height, "y", "height", "Height of a simulation field")
	p.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	p.String(&uo.Fill, "f", "fill", "Initial fill ["+strings.Join([]string{universe.FillDead, universe.FillRandom, universe.FillPattern}, "|")+"]")
	p.UInt64(&uo.Seed, "", "seed", "Seed for the random fill and randomize, 0 picks a random seed")
	p.String(&engine, "e", "engine", "Engine to use ["+strings.Join(universe.EngineNames(), "|")+"]")
	p.String(&eo.template, "t", "template", "Settle the named template after the initial fill")
	p.Int(&eo.generations, "g", "generations", "Stop the non-interactive run after this many generations, 0 runs until interrupted")
	p.Int(&eo.every, "p", "progress", "Print the progress every N generations")
	p.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	p.String(&eo.configPath, "c", "config", "YAML configuration file, flags take precedence")
	p.String(&eo.metricsAddr, "", "metrics", "Serve Prometheus metrics on this address, for example :9090")
	p.Bool(&eo.verbose, "v", "verbose", "Debug logging")

	if err := p.ParseArgs(args); err != nil {
		return nil, uo, err
	}
	if engine != "" {
		e, err := universe.ParseEngine(engine)
		if err != nil {
			return nil, uo, err
		}
		uo.Engine = e
	}
	if eo.generations < 0 {
		return nil, uo, fmt.Errorf("generations must not be negative: %d", eo.generations)
	}
	return eo, uo, nil
}

//newLogger writes to stderr, the interactive mode owns the terminal so its logs are dropped
func newLogger(eo *EnvOptions) *slog.Logger {
	var w io.Writer = os.Stderr
	if eo.interactive {
		w = io.Discard
	}
	level := slog.LevelInfo
	if eo.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

//serveMetrics exposes the simulation metrics over HTTP, the returned func shuts the server down
func serveMetrics(s *universe.Simulation, addr string, logger *slog.Logger) (func(), error) {
	reg := prometheus.NewRegistry()
	m, err := view.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	s.RegisterViewer(m)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", slog.String("addr", addr), slog.Any("error", err))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", addr))
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
