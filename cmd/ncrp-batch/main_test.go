package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/ncrp-intake/internal/app"
	"github.com/a3tai/ncrp-intake/internal/config"
	"github.com/a3tai/ncrp-intake/internal/pdf/pdftest"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func newApp(t *testing.T, dir string) *app.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.PDFDirectory = dir
	cfg.ArchiveUploads = false
	cfg.DBDSN = filepath.Join(t.TempDir(), "ncrp.db")

	a, err := app.New(context.Background(), cfg, &log.Logger{Handler: discard.New(), Level: log.InfoLevel}, app.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestFindPDFs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.pdf"), []byte("%PDF"))
	writeFile(t, filepath.Join(dir, "nested", "a.PDF"), []byte("%PDF"))
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("x"))

	paths, err := findPDFs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.pdf"), filepath.Join(dir, "nested", "a.PDF")}, paths)

	_, err = findPDFs(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestIngest(t *testing.T) {
	dir := t.TempDir()
	acks := []string{"3998123456781", "3998123456782", "3998123456783", "3998123456784"}
	for _, ack := range acks {
		writeFile(t, filepath.Join(dir, ack+".pdf"), pdftest.Complaint(ack))
	}
	writeFile(t, filepath.Join(dir, "copy.pdf"), pdftest.Complaint(acks[0]))
	writeFile(t, filepath.Join(dir, "blank.pdf"), pdftest.Document("Nothing to see here"))

	a := newApp(t, dir)
	paths, err := findPDFs(dir)
	require.NoError(t, err)

	sum, err := ingest(context.Background(), a.Intake, paths, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	sum.write(&buf)
	assert.Contains(t, buf.String(), "stored: 4, duplicates: 1, failed: 1")
	assert.Contains(t, buf.String(), "blank.pdf: no acknowledgement number found in the document")

	n, err := a.Store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestIngestCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.pdf"), pdftest.Complaint("3998123456781"))
	a := newApp(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := ingest(ctx, a.Intake, []string{filepath.Join(dir, "a.pdf")}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	var buf bytes.Buffer
	sum.write(&buf)
	assert.Contains(t, buf.String(), "stored: 0")
}
