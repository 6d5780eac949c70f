// Package app wires the intake components from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/spf13/afero"

	"github.com/a3tai/ncrp-intake/internal/complaint"
	"github.com/a3tai/ncrp-intake/internal/config"
	"github.com/a3tai/ncrp-intake/internal/export"
	"github.com/a3tai/ncrp-intake/internal/intake"
	"github.com/a3tai/ncrp-intake/internal/pdf"
	"github.com/a3tai/ncrp-intake/internal/pdf/stability"
	"github.com/a3tai/ncrp-intake/internal/store"
)

// App holds the services shared by the HTTP, MCP and batch front ends.
type App struct {
	Config *config.Config
	Logger log.Interface
	Store  store.Store
	Intake *intake.Service
	Export *export.Service
}

// Options overrides parts of the wiring, mainly for tests.
type Options struct {
	// Fs backs the upload archive. Defaults to the OS filesystem.
	Fs afero.Fs
	// Refs generates CSR numbers. Defaults to random 4-digit codes.
	Refs complaint.RefGenerator
}

// New opens the store and builds the services described by cfg.
func New(ctx context.Context, cfg *config.Config, logger log.Interface, opts Options) (*App, error) {
	if logger == nil {
		logger = log.Log
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	intake.RegisterMetrics()

	st, err := store.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	guard := stability.NewManager(stability.Config{
		Timeout:   cfg.ParseTimeout,
		MaxPanics: stability.DefaultConfig().MaxPanics,
		Logger:    logger,
	})
	loader := pdf.NewLoader(pdf.LoaderConfig{
		MaxFileSize:      cfg.MaxFileSize,
		StrictValidation: cfg.StrictValidation,
		Stability:        guard,
		Logger:           logger,
	})
	pipeline, err := complaint.NewPipeline(complaint.PipelineConfig{
		Refs:             opts.Refs,
		Logger:           logger,
		PermissiveAmount: cfg.PermissiveAmount,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	var archive *intake.Archive
	if cfg.ArchiveUploads {
		archive = intake.NewArchive(opts.Fs, cfg.UploadDir)
	}

	svc, err := intake.NewService(intake.Config{
		Loader:   loader,
		Pipeline: pipeline,
		Store:    st,
		Files:    pdf.NewValidator(cfg.MaxFileSize),
		Archive:  archive,
		Logger:   logger,
	})
	if err != nil {
		st.Close()
		return nil, err
	}

	logger.WithFields(log.Fields{
		"db_driver": cfg.DBDriver,
		"archive":   cfg.ArchiveUploads,
		"strict":    cfg.StrictValidation,
	}).Debug("services ready")

	return &App{
		Config: cfg,
		Logger: logger,
		Store:  st,
		Intake: svc,
		Export: export.NewService(svc, logger),
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
