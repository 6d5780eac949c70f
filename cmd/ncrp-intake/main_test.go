package main

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/ncrp-intake/internal/config"
)

func TestPrintVersion(t *testing.T) {
	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	t.Cleanup(func() { version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit })

	version = "1.2.3"
	buildTime = "2025-05-16_10:30:00"
	gitCommit = "abc123"

	var buf bytes.Buffer
	printVersion(&buf)

	out := buf.String()
	assert.Contains(t, out, "NCRP Intake")
	assert.Contains(t, out, "Version: 1.2.3")
	assert.Contains(t, out, "Build Time: 2025-05-16_10:30:00")
	assert.Contains(t, out, "Git Commit: abc123")
	assert.Contains(t, out, "Built with: "+runtime.Version())
}

func TestRunServerModeStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.PDFDirectory = dir
	cfg.UploadDir = filepath.Join(dir, "uploads")
	cfg.DBDSN = filepath.Join(dir, "ncrp.db")
	cfg.Port = 0

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := run(ctx, cfg, &log.Logger{Handler: discard.New(), Level: log.InfoLevel})
	assert.NoError(t, err)
	assert.FileExists(t, cfg.DBDSN)
}

func TestRunFailsOnBadStore(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DBDriver = "postgres"
	cfg.DBDSN = "postgres://invalid host/ncrp?connect_timeout=1"

	err := run(context.Background(), cfg, &log.Logger{Handler: discard.New(), Level: log.InfoLevel})
	require.Error(t, err)
}
