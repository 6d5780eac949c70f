// Command ncrp-batch ingests every complaint PDF under a directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/apex/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/a3tai/ncrp-intake/internal/app"
	"github.com/a3tai/ncrp-intake/internal/config"
	"github.com/a3tai/ncrp-intake/internal/intake"
	"github.com/a3tai/ncrp-intake/internal/logging"
)

// summary counts batch outcomes by status.
type summary struct {
	mu       sync.Mutex
	counts   map[intake.Status]int
	failures []string
}

func (s *summary) add(path string, out intake.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = make(map[intake.Status]int)
	}
	s.counts[out.Status]++
	if out.Status == intake.StatusError {
		s.failures = append(s.failures, fmt.Sprintf("%s: %s", path, out.Message))
	}
}

func (s *summary) write(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(w, "stored: %d, duplicates: %d, failed: %d\n",
		s.counts[intake.StatusSuccess], s.counts[intake.StatusDuplicate], s.counts[intake.StatusError])
	sort.Strings(s.failures)
	for _, f := range s.failures {
		fmt.Fprintf(w, "  %s\n", f)
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadFromFlags()
	switch {
	case errors.Is(err, config.ErrVersionRequested), errors.Is(err, pflag.ErrHelp):
		return 0
	case err != nil:
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 2
	}
	// Inputs are already on disk.
	cfg.ArchiveUploads = false

	logger, err := logging.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger, app.Options{})
	if err != nil {
		logger.WithError(err).Error("setup failed")
		return 1
	}
	defer a.Close()

	paths, err := findPDFs(cfg.PDFDirectory)
	if err != nil {
		logger.WithError(err).Error("cannot list documents")
		return 1
	}
	logger.WithFields(log.Fields{"dir": cfg.PDFDirectory, "files": len(paths)}).Info("batch started")

	sum, err := ingest(ctx, a.Intake, paths, cfg.BatchWorkers)
	sum.write(os.Stdout)
	if err != nil {
		logger.WithError(err).Error("batch interrupted")
		return 1
	}
	return 0
}

// findPDFs returns the .pdf files under dir in lexical order.
func findPDFs(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// ingest processes paths with at most workers files in flight. Per-file
// failures are counted, only cancellation stops the batch.
func ingest(ctx context.Context, svc *intake.Service, paths []string, workers int) (*summary, error) {
	sum := &summary{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sum.add(path, svc.ProcessFile(gctx, path))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}
	return sum, ctx.Err()
}
