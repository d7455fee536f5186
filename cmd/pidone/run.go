package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kahiteam/pidone/internal/api"
	"github.com/kahiteam/pidone/internal/config"
	"github.com/kahiteam/pidone/internal/logging"
	"github.com/kahiteam/pidone/internal/metrics"
	"github.com/kahiteam/pidone/internal/supervisor"
	"github.com/kahiteam/pidone/internal/version"
)

const stopTimeout = time.Second

// runSupervisor resolves the configuration and supervises the command
// until it exits. A non-zero child exit status is returned as exitCode.
func runSupervisor(stderr io.Writer, opts config.Options) error {
	path, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		return err
	}

	var file *config.File
	var warnings []string
	if path != "" {
		file, warnings, err = config.Load(path)
		if err != nil {
			return err
		}
	}

	cfg, err := config.Build(version.Name, opts, file)
	if err != nil {
		return err
	}

	logger := logging.New(logging.LogConfig{
		Level:  logging.LevelFor(cfg.Debug),
		Format: cfg.LogFormat,
		Output: stderr,
	})
	for _, w := range warnings {
		logger.Warn(w, "path", path)
	}
	logger.Debug("configuration resolved",
		"setsid", cfg.UseSetsid,
		"rewrites", cfg.Rewrites.Len(),
		"observers", len(cfg.Observers),
	)

	var collector *metrics.Collector
	if cfg.MetricsAddr != "" {
		collector = metrics.New()
		collector.SetBuildInfo(version.Version, version.Go())
	}

	sup := supervisor.New(supervisor.SupervisorConfig{
		Config:  cfg,
		Metrics: collector,
		Logger:  logger,
	})

	if cfg.MetricsAddr != "" {
		srv := api.NewServer(api.Config{
			PID:       os.Getpid(),
			UseSetsid: cfg.UseSetsid,
			Command:   strings.Join(cfg.Command, " "),
			Version:   version.Version,
		}, sup, collector.Handler(), logger)
		if err := srv.StartTCP(cfg.MetricsAddr); err != nil {
			logger.Error("unable to start status server", "error", err)
		} else {
			logger.Debug("status server started", "addr", srv.Addr())
			defer stopServer(srv, logger)
		}
	}

	code, err := sup.Run()
	if err != nil {
		return err
	}
	logger.Debug("child exited, goodbye", "exit_code", code)
	if code != 0 {
		return exitCode(code)
	}
	return nil
}

// stopServer gives in-flight status requests a moment to finish before
// pidone exits.
func stopServer(srv *api.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Debug("status server shutdown", "error", err)
	}
}
