// Package intake turns uploaded complaint documents into stored records.
package intake

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/a3tai/ncrp-intake/internal/complaint"
	"github.com/a3tai/ncrp-intake/internal/pdf"
	"github.com/a3tai/ncrp-intake/internal/store"
)

// Status is the outcome of one upload.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusDuplicate Status = "duplicate"
	StatusError     Status = "error"
)

// Outcome reports what happened to an upload. Err is set for StatusError
// and StatusDuplicate.
type Outcome struct {
	Status    Status
	RequestID string
	Record    complaint.Record
	Message   string
	Err       error
}

// Config wires a Service.
type Config struct {
	Loader   *pdf.Loader
	Pipeline *complaint.Pipeline
	Store    store.Store
	// Files reads documents named by path. Optional.
	Files *pdf.Validator
	// Archive is optional.
	Archive *Archive
	Logger  log.Interface
}

// Service processes uploads and serves stored records.
type Service struct {
	loader   *pdf.Loader
	pipeline *complaint.Pipeline
	store    store.Store
	files    *pdf.Validator
	archive  *Archive
	logger   log.Interface
}

// NewService creates a Service.
func NewService(cfg Config) (*Service, error) {
	if cfg.Loader == nil || cfg.Pipeline == nil || cfg.Store == nil {
		return nil, errors.New("intake service requires a loader, a pipeline and a store")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Log
	}
	return &Service{
		loader:   cfg.Loader,
		pipeline: cfg.Pipeline,
		store:    cfg.Store,
		files:    cfg.Files,
		archive:  cfg.Archive,
		logger:   cfg.Logger,
	}, nil
}

// Process decodes one document, resolves its fields and stores the record.
func (s *Service) Process(ctx context.Context, name string, data []byte) (out Outcome) {
	start := time.Now()
	out.RequestID = uuid.NewString()
	logger := s.logger.WithFields(log.Fields{"request_id": out.RequestID, "file": name})

	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", fmt.Sprint(r)).Error("upload processing panicked")
			out = Outcome{
				Status:    StatusError,
				RequestID: out.RequestID,
				Message:   "unexpected failure while processing the document",
				Err:       fmt.Errorf("panic: %v", r),
			}
		}
		status := string(out.Status)
		UploadsTotal.WithLabelValues(status).Inc()
		ProcessingDurationSeconds.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}()

	if s.archive != nil {
		if path, err := s.archive.Save(name, data); err != nil {
			logger.WithError(err).Warn("upload not archived")
		} else {
			logger.WithField("path", path).Debug("upload archived")
		}
	}

	doc, err := s.loader.Load(ctx, data)
	if err != nil {
		var de *pdf.DecodeError
		if errors.As(err, &de) {
			logger = logger.WithField("stage", de.Stage)
		}
		logger.WithError(err).Warn("document decode failed, continuing with extracted text")
	}

	rec := s.pipeline.Resolve(ctx, doc)
	for _, f := range rec.MissingFields() {
		FieldsMissingTotal.WithLabelValues(string(f)).Inc()
	}
	out.Record = rec
	logger = logger.WithField("ack_no", rec.AckNo)

	id, err := s.store.Save(ctx, rec)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		logger.Info("duplicate complaint rejected")
		out.Status = StatusDuplicate
		out.Message = fmt.Sprintf("ID %s already exists.", rec.AckNo)
		out.Err = err
	case errors.Is(err, store.ErrMissingKey):
		logger.Warn("no acknowledgement number found")
		out.Status = StatusError
		out.Message = "no acknowledgement number found in the document"
		out.Err = err
	case err != nil:
		logger.WithError(err).Error("failed to store complaint")
		out.Status = StatusError
		out.Message = "failed to store the complaint"
		out.Err = err
	default:
		out.Status = StatusSuccess
		out.Record = rec.WithID(id)
		logger.WithField("id", id).WithField("missing", len(rec.MissingFields())).Info("complaint stored")
	}
	return out
}

// ProcessFile reads a document from disk and processes it.
func (s *Service) ProcessFile(ctx context.Context, path string) Outcome {
	if s.files == nil {
		return Outcome{Status: StatusError, Message: "file intake is not configured", Err: errors.New("no file reader")}
	}
	data, err := s.files.ReadFile(path)
	if err != nil {
		UploadsTotal.WithLabelValues(string(StatusError)).Inc()
		return Outcome{Status: StatusError, Message: err.Error(), Err: err}
	}
	return s.Process(ctx, filepath.Base(path), data)
}

// List returns all stored records, newest first.
func (s *Service) List(ctx context.Context) ([]complaint.Record, error) {
	return s.store.ListAll(ctx)
}

// Get returns one stored record.
func (s *Service) Get(ctx context.Context, id int64) (complaint.Record, error) {
	return s.store.Get(ctx, id)
}

// Delete removes one stored record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("id", id).Info("complaint deleted")
	return nil
}

// Count returns the number of stored records.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Health reports the decode guard's state.
func (s *Service) Health() map[string]any {
	return map[string]any{"stability": s.loader.Stability().HealthStatus()}
}
