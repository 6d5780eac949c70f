// Package logging configures apex/log for the binaries.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"

	"github.com/a3tai/ncrp-intake/internal/config"
)

// New builds a logger writing to w in the given format.
func New(w io.Writer, level, format string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var h log.Handler
	switch format {
	case config.FormatJSON:
		h = json.New(w)
	case config.FormatCLI:
		h = cli.New(w)
	case config.FormatText, "":
		h = text.New(w)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return &log.Logger{Handler: h, Level: lvl}, nil
}

// Setup installs the process logger for cfg and returns it. In stdio mode
// stdout belongs to the MCP protocol, so logs go to stderr and only when
// debug is enabled.
func Setup(cfg *config.Config) (*log.Logger, error) {
	var (
		logger *log.Logger
		err    error
	)
	switch {
	case cfg.IsStdioMode() && !cfg.IsDebug():
		logger = &log.Logger{Handler: discard.New(), Level: log.ErrorLevel}
	case cfg.IsStdioMode():
		logger, err = New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	default:
		logger, err = New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	}
	if err != nil {
		return nil, err
	}

	log.Log = logger
	return logger, nil
}
