package pdf

import (
	"errors"
	"fmt"
)

// Decode stages.
const (
	StageSize     = "size"
	StageValidate = "validate"
	StageOpen     = "open"
	StagePage     = "page"
	StageTimeout  = "timeout"
	StagePanic    = "panic"
)

var (
	ErrEmptyDocument = errors.New("document is empty")
	ErrTooLarge      = errors.New("document too large")
)

// DecodeError reports why a document could not be decoded, fully or in part.
type DecodeError struct {
	Stage string
	// Page is set for StagePage errors.
	Page int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Stage == StagePage {
		return fmt.Sprintf("pdf decode failed at %s %d: %v", e.Stage, e.Page, e.Err)
	}
	return fmt.Sprintf("pdf decode failed at %s: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
