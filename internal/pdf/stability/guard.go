package stability

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/apex/log"
)

var (
	// ErrTimeout is returned when an operation outlives its deadline.
	ErrTimeout = errors.New("operation timed out")
	// ErrPanic is returned when an operation panicked.
	ErrPanic = errors.New("operation panicked")
)

// Config configures a Manager.
type Config struct {
	Timeout   time.Duration
	MaxPanics int
	Logger    log.Interface
}

// DefaultConfig returns the defaults used by the document loader.
func DefaultConfig() Config {
	return Config{
		Timeout:   30 * time.Second,
		MaxPanics: 10,
	}
}

// PanicRecord stores information about a recovered panic.
type PanicRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Operation  string    `json:"operation"`
	Message    string    `json:"message"`
	StackTrace string    `json:"stack_trace"`
}

// Manager runs operations with a deadline and panic isolation, keeping a
// short history of recovered panics.
type Manager struct {
	timeout   time.Duration
	maxPanics int
	logger    log.Interface

	mu         sync.RWMutex
	panics     []PanicRecord
	timeouts   int64
	operations int64
}

// NewManager creates a Manager.
func NewManager(cfg Config) *Manager {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxPanics <= 0 {
		cfg.MaxPanics = def.MaxPanics
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Log
	}
	return &Manager{
		timeout:   cfg.Timeout,
		maxPanics: cfg.MaxPanics,
		logger:    cfg.Logger.WithField("component", "stability"),
	}
}

type result[T any] struct {
	value T
	err   error
}

// Run executes fn in its own goroutine. It returns ErrTimeout when fn does
// not finish before the manager's timeout or ctx is done, and ErrPanic when
// fn panics. On timeout fn keeps running until it observes its context.
func Run[T any](ctx context.Context, m *Manager, operation string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	m.mu.Lock()
	m.operations++
	m.mu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	done := make(chan result[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				m.recordPanic(operation, r, debug.Stack())
				done <- result[T]{err: fmt.Errorf("%w in %s: %v", ErrPanic, operation, r)}
			}
		}()
		v, err := fn(runCtx)
		done <- result[T]{value: v, err: err}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-runCtx.Done():
		m.mu.Lock()
		m.timeouts++
		m.mu.Unlock()
		m.logger.WithField("operation", operation).WithField("timeout", m.timeout.String()).
			Warn("operation timed out")
		return zero, fmt.Errorf("%w: %s after %v: %w", ErrTimeout, operation, m.timeout, context.Cause(runCtx))
	}
}

func (m *Manager) recordPanic(operation string, value any, stack []byte) {
	rec := PanicRecord{
		Timestamp:  time.Now(),
		Operation:  operation,
		Message:    fmt.Sprint(value),
		StackTrace: string(stack),
	}

	m.mu.Lock()
	m.panics = append(m.panics, rec)
	if len(m.panics) > m.maxPanics {
		m.panics = m.panics[len(m.panics)-m.maxPanics:]
	}
	m.mu.Unlock()

	m.logger.WithField("operation", operation).WithField("panic", rec.Message).Error("panic recovered")
}

// Panics returns the recent panic records.
func (m *Manager) Panics() []PanicRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]PanicRecord, len(m.panics))
	copy(out, m.panics)
	return out
}

// Health summarizes the manager's state.
type Health struct {
	Healthy    bool   `json:"healthy"`
	Operations int64  `json:"operations"`
	Timeouts   int64  `json:"timeouts"`
	PanicCount int    `json:"panic_count"`
	Timeout    string `json:"timeout"`
}

// HealthStatus reports whether recent panics stay under the configured limit.
func (m *Manager) HealthStatus() Health {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Health{
		Healthy:    len(m.panics) < m.maxPanics,
		Operations: m.operations,
		Timeouts:   m.timeouts,
		PanicCount: len(m.panics),
		Timeout:    m.timeout.String(),
	}
}

// Reset clears recorded panics and counters.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics = nil
	m.timeouts = 0
	m.operations = 0
}
