package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"mini-livechart/pkg/chart"
	"mini-livechart/pkg/config"
	"mini-livechart/pkg/model"
	"mini-livechart/pkg/storage"
	"mini-livechart/pkg/stream"
	"mini-livechart/pkg/view"
	"mini-livechart/pkg/web"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to the YAML config file")
	addr := flag.String("addr", "", "listen address, overrides server.listen")
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		slog.Error("livechart exited", "error", err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	loader := config.NewLoader(configPath)
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	viewConfigs := cfg.Process()
	if addr != "" {
		cfg.Server.Listen = addr
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.Server.LogLevel)}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "path", loader.Path(), "views", len(viewConfigs))

	if len(viewConfigs) == 0 {
		logger.Info("no views configured, using the reference realtime view")
		cfg.Views = []config.ViewConfig{{Name: "realtime", Title: "Real-time Data", Label: "Live Data", AutoStart: true}}
		viewConfigs = cfg.Process()
	}

	hub := stream.NewHub(context.Background(), storage.NewMemoryStorage(), logger)
	hub.Start()

	views := view.NewManager()
	colors := chart.Palette(len(viewConfigs), 1)
	for i, vc := range viewConfigs {
		if vc.Color == "" {
			vc.Color = colors[i]
		}
		v, err := buildView(vc, hub, logger)
		if err != nil {
			views.DisposeAll()
			hub.Stop()
			return err
		}
		if err := views.Add(v); err != nil {
			v.Dispose()
			views.DisposeAll()
			hub.Stop()
			return err
		}
		if vc.AutoStart {
			if err := v.Start(); err != nil {
				logger.Warn("autostart failed", "view", vc.Name, "error", err)
			}
		}
	}

	server, err := web.NewServer(cfg.Server.Listen, views, hub,
		web.WithLogger(logger),
		web.WithIntervalPolicy(cfg.Policy()),
	)
	if err != nil {
		views.DisposeAll()
		hub.Stop()
		return err
	}
	go server.Serve()
	logger.Info("livechart started", "addr", server.Addr(), "views", views.Names())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	logger.Info("signal received, shutting down", "signal", s.String())

	if err := views.DisposeAll(); err != nil {
		logger.Warn("dispose views", "error", err)
	}
	server.Stop()
	hub.Stop()
	logger.Info("livechart has shut down")
	return nil
}

func buildView(vc config.ViewConfig, hub *stream.Hub, logger *slog.Logger) (*view.View, error) {
	gen, err := view.NewGenerator(vc.Generator)
	if err != nil {
		return nil, fmt.Errorf("view %q: %w", vc.Name, err)
	}
	key := model.SeriesKey{Name: vc.Name, Labels: model.LabelsFromMap(vc.Labels)}

	var sink chart.Sink = stream.NewSink(hub, key)
	if vc.Snapshot.Path != "" {
		png := chart.NewPNGSink(
			chart.WithSize(vc.Snapshot.Width, vc.Snapshot.Height),
			chart.WithSnapshotPath(vc.Snapshot.Path),
			chart.WithPNGLogger(logger.With("view", vc.Name)),
		)
		sink = chart.Multi(sink, png)
	}

	return view.New(view.Options{
		Key:        key,
		Title:      vc.Title,
		Label:      vc.Label,
		Color:      vc.Color,
		Capacity:   vc.Capacity,
		Seed:       *vc.Seed,
		Interval:   vc.Interval,
		Generator:  gen,
		PointStyle: vc.PointStyle,
		Sink:       sink,
		Logger:     logger,
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
