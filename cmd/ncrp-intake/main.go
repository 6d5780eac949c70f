package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/apex/log"
	"github.com/spf13/pflag"

	"github.com/a3tai/ncrp-intake/internal/app"
	"github.com/a3tai/ncrp-intake/internal/config"
	"github.com/a3tai/ncrp-intake/internal/httpapi"
	"github.com/a3tai/ncrp-intake/internal/logging"
	"github.com/a3tai/ncrp-intake/internal/mcp"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	cfg, err := config.LoadFromFlags()
	switch {
	case errors.Is(err, config.ErrVersionRequested):
		printVersion(os.Stdout)
		return
	case errors.Is(err, pflag.ErrHelp):
		return
	case err != nil:
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(2)
	}

	if version != "dev" {
		cfg.Version = version
	}

	logger, err := logging.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Error("server stopped with error")
		stop()
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// run serves the HTTP API or the MCP tools until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, logger log.Interface) error {
	if cfg.IsDebug() {
		logger.WithField("config", cfg.String()).Debug("starting")
	}

	a, err := app.New(ctx, cfg, logger, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.IsStdioMode() {
		server, err := mcp.NewServer(cfg, a.Intake, logger)
		if err != nil {
			return fmt.Errorf("failed to create MCP server: %w", err)
		}
		return server.Run(ctx)
	}

	server := httpapi.NewServer(httpapi.Config{
		Addr:        cfg.Address(),
		CORSOrigins: cfg.CORSOrigins,
		MaxFileSize: cfg.MaxFileSize,
		Logger:      logger,
	}, a.Intake, a.Export)
	return server.Run(ctx)
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "NCRP Intake\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
