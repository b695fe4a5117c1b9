// Package main implements the entry point for the per-radio mesh agent. The
// agent runs one slave supervisor per managed radio: it registers with the
// platform adapter and backhaul manager, brings the worker processes up,
// joins the mesh controller over 1905.1, and routes the control protocol
// between all of them.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/abelviageiro/prplMesh/config"
	gatewayhttp "github.com/abelviageiro/prplMesh/gateway/http"
	"github.com/abelviageiro/prplMesh/health"
	"github.com/abelviageiro/prplMesh/metric"
	"github.com/abelviageiro/prplMesh/supervisor"
	"github.com/abelviageiro/prplMesh/telemetry"
	"github.com/abelviageiro/prplMesh/transport"
)

const appName = "meshagent"

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("agent failed", "error", err)
		os.Exit(1)
	}
}

// multiSink fans agent events out to every configured sink.
type multiSink []supervisor.EventSink

func (m multiSink) Publish(event string, fields map[string]any) {
	for _, sink := range m {
		sink.Publish(event, fields)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, supervisor.Version)
		return nil
	}

	cfg, err := config.NewLoader().LoadFile(cliCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cliCfg.LogLevel != "" {
		cfg.Log.Level = cliCfg.LogLevel
	}
	if cliCfg.LogFormat != "" {
		cfg.Log.Format = cliCfg.LogFormat
	}

	logger, levelVar := setupLogger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	if cliCfg.Validate {
		slog.Info("configuration is valid", "config_path", cliCfg.ConfigPath)
		return nil
	}

	slog.Info("starting mesh agent",
		"version", supervisor.Version,
		"iface", cfg.HostapIface,
		"config_path", cliCfg.ConfigPath)

	ctx := context.Background()
	metricsRegistry := metric.NewRegistry()
	healthMonitor := health.NewMonitor()

	var sinks multiSink

	if cfg.Telemetry.Enabled {
		publisher, pubErr := telemetry.NewPublisher(ctx, telemetry.Deps{
			URL:           cfg.Telemetry.URL,
			SubjectPrefix: cfg.Telemetry.SubjectPrefix,
			Iface:         cfg.HostapIface,
			Logger:        logger,
		})
		if pubErr != nil {
			return fmt.Errorf("connect telemetry: %w", pubErr)
		}
		defer publisher.Close()
		sinks = append(sinks, publisher)
	}

	if cfg.Gateway.Enabled {
		statusServer := gatewayhttp.NewServer(gatewayhttp.Deps{
			Addr:    cfg.Gateway.ListenAddr,
			Logger:  logger,
			Health:  healthMonitor,
			Metrics: metricsRegistry,
		})
		if startErr := statusServer.Start(ctx); startErr != nil {
			return fmt.Errorf("start status server: %w", startErr)
		}
		defer func() { _ = statusServer.Stop(cliCfg.ShutdownTimeout) }()
		sinks = append(sinks, statusServer)
	}

	var sink supervisor.EventSink
	if len(sinks) > 0 {
		sink = sinks
	}

	sup, err := supervisor.New(supervisor.Deps{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metricsRegistry,
		Health:    healthMonitor,
		Connector: supervisor.UDSConnector{TempPath: cfg.TempPath},
		Workers:   supervisor.NewExecRunner(cfg, logger, nil),
		Sink:      sink,
		LogLevel:  levelVar,
	})
	if err != nil {
		return fmt.Errorf("create supervisor: %w", err)
	}

	listener, err := transport.Listen(transport.SlaveSocketPath(cfg.TempPath, cfg.HostapIface))
	if err != nil {
		return fmt.Errorf("bind slave socket: %w", err)
	}
	defer func() { _ = listener.Close() }()
	go sup.ServeListener(listener)

	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	err = sup.Run(signalCtx)
	if err == context.Canceled {
		slog.Info("shutdown signal received")
		err = nil
	}
	slog.Info("mesh agent stopped")
	return err
}
