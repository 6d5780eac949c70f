package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/ledongthuc/pdf"

	"github.com/a3tai/ncrp-intake/internal/pdf/stability"
)

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	MaxFileSize      int64
	StrictValidation bool
	Stability        *stability.Manager
	Logger           log.Interface
}

// Loader decodes raw PDF bytes into a Document.
type Loader struct {
	maxFileSize int64
	strict      bool
	stability   *stability.Manager
	logger      log.Interface
}

// NewLoader creates a Loader.
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.Stability == nil {
		cfg.Stability = stability.NewManager(stability.DefaultConfig())
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Log
	}
	return &Loader{
		maxFileSize: cfg.MaxFileSize,
		strict:      cfg.StrictValidation,
		stability:   cfg.Stability,
		logger:      cfg.Logger,
	}
}

// Stability returns the manager guarding decoding.
func (l *Loader) Stability() *stability.Manager { return l.stability }

// Load decodes data. It always returns a usable document: on failure the
// document is empty, or holds the pages that decoded, and the error is a
// *DecodeError describing the failure.
func (l *Loader) Load(ctx context.Context, data []byte) (*Document, error) {
	if len(data) == 0 {
		return &Document{}, &DecodeError{Stage: StageSize, Err: ErrEmptyDocument}
	}
	if l.maxFileSize > 0 && int64(len(data)) > l.maxFileSize {
		return &Document{}, &DecodeError{
			Stage: StageSize,
			Err:   fmt.Errorf("%w: %d bytes (max: %d bytes)", ErrTooLarge, len(data), l.maxFileSize),
		}
	}
	if l.strict {
		if res := ValidateBytes(data); !res.Valid {
			return &Document{}, &DecodeError{Stage: StageValidate, Err: errors.New(res.Message)}
		}
	}

	doc, err := stability.Run(ctx, l.stability, "decode_pdf", func(ctx context.Context) (*Document, error) {
		return decode(ctx, data)
	})
	if doc == nil {
		doc = &Document{}
	}
	if err != nil {
		return doc, asDecodeError(err)
	}
	return doc, nil
}

func asDecodeError(err error) *DecodeError {
	var de *DecodeError
	switch {
	case errors.As(err, &de):
		return de
	case errors.Is(err, stability.ErrTimeout):
		return &DecodeError{Stage: StageTimeout, Err: err}
	case errors.Is(err, stability.ErrPanic):
		return &DecodeError{Stage: StagePanic, Err: err}
	default:
		return &DecodeError{Stage: StageOpen, Err: err}
	}
}

// decode reads every page. Pages that fail are kept empty and the first
// failure is returned next to the partial document.
func decode(ctx context.Context, data []byte) (*Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &DecodeError{Stage: StageOpen, Err: err}
	}

	doc := &Document{}
	var firstErr error
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return doc, err
		}
		page, err := readPage(r, i)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, firstErr
}

func readPage(r *pdf.Reader, number int) (page Page, err error) {
	page = Page{Number: number}
	defer func() {
		if rec := recover(); rec != nil {
			page = Page{Number: number}
			err = &DecodeError{Stage: StagePage, Page: number, Err: fmt.Errorf("%v", rec)}
		}
	}()

	p := r.Page(number)
	if p.V.IsNull() {
		return page, nil
	}
	return buildPage(number, p.Content().Text), nil
}
