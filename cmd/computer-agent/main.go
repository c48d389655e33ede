// Computer Agent - desktop automation and accessibility snapshot service
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/computeruse/computer-agent/internal/accessibility/ax"
	"github.com/computeruse/computer-agent/internal/config"
	"github.com/computeruse/computer-agent/internal/logging"
	"github.com/computeruse/computer-agent/internal/server"
	"github.com/computeruse/computer-agent/pkg/version"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		listenAddr  = flag.String("listen", "", "Listen address (overrides config)")
		configPath  = flag.String("config", "", "Path to config file")
		debug       = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		os.Exit(0)
	}

	paths := config.DefaultPaths()
	if *configPath == "" {
		*configPath = paths.ConfigFile
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *debug {
		cfg.Debug = true
	}

	logger, cleanup, err := logging.SetupWithDefaults(paths.LogDir, cfg.IsDebug())
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil && err != context.Canceled {
		logger.Error("agent failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting Computer Agent",
		"version", version.Get().Version,
		"listen", cfg.GetListenAddr(),
	)

	platform, err := ax.New()
	if err != nil {
		logger.Warn("accessibility platform unavailable", "error", err)
	}

	srv := server.New(cfg, platform, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	return srv.Run(ctx)
}
