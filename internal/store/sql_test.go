package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/ncrp-intake/internal/complaint"
)

func openSQLite(t *testing.T) *SQLStore {
	t.Helper()
	s, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "ncrp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord(ack string) complaint.Record {
	return complaint.Record{
		CSRNo:             "1234",
		AckNo:             ack,
		Category:          "Online Financial Fraud",
		SubCategory:       "Internet Banking Related Fraud",
		IncidentDate:      "15/05/2025",
		IncidentTime:      "10:30 AM",
		ComplaintDate:     "16/05/2025",
		ComplainantName:   "Rajesh Kumar",
		ComplainantAddr:   "Pune, Maharashtra",
		ComplainantPhone:  "9876543210",
		ComplainantEmail:  "rajesh.dummy@email.com",
		TotalLoss:         "250,000.00",
		AdditionalDetails: "N/A",
	}
}

func TestSQLiteSaveAndList(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	first, err := s.Save(ctx, sampleRecord("3998123456781"))
	require.NoError(t, err)
	second, err := s.Save(ctx, sampleRecord("4112345678999"))
	require.NoError(t, err)
	assert.Greater(t, second, first)

	records, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, sampleRecord("4112345678999").WithID(second), records[0])
	assert.Equal(t, sampleRecord("3998123456781").WithID(first), records[1])

	want, err := json.Marshal(sampleRecord("3998123456781"))
	require.NoError(t, err)
	stored := records[1]
	stored.ID = 0
	got, err := json.Marshal(stored)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestSQLiteDuplicate(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	_, err := s.Save(ctx, sampleRecord("3998123456781"))
	require.NoError(t, err)

	changed := sampleRecord("3998123456781")
	changed.Category = "Online and Social Media Related Crime"
	_, err = s.Save(ctx, changed)
	require.ErrorIs(t, err, ErrDuplicate)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Online Financial Fraud", records[0].Category)
}

func TestSQLiteConcurrentSaveSameKey(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		saved     int
		duplicate int
	)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := sampleRecord("3998123456781")
			rec.CSRNo = fmt.Sprint(1000 + i)
			_, err := s.Save(ctx, rec)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				saved++
			case errors.Is(err, ErrDuplicate):
				duplicate++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, saved)
	assert.Equal(t, writers-1, duplicate)
}

func TestSQLiteMissingKey(t *testing.T) {
	s := openSQLite(t)

	_, err := s.Save(context.Background(), complaint.Record{Category: "Online Financial Fraud"})
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestSQLiteGetAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	id, err := s.Save(ctx, sampleRecord("3998123456781"))
	require.NoError(t, err)

	rec, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "3998123456781", rec.AckNo)
	assert.Equal(t, id, rec.ID)

	require.NoError(t, s.Delete(ctx, id))
	require.NoError(t, s.Delete(ctx, id))
	require.NoError(t, s.Delete(ctx, 9999))

	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	records, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestSQLiteReopenKeepsRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ncrp.db")

	s, err := Open(ctx, "sqlite", path)
	require.NoError(t, err)
	_, err = s.Save(ctx, sampleRecord("3998123456781"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, "sqlite", path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"sqlite", "sqlite", false},
		{"SQLite3", "sqlite", false},
		{"postgres", "postgres", false},
		{"postgresql", "postgres", false},
		{"mysql", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := DialectFor(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name)
		})
	}
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "a = ? AND b = ?", SQLite.rebind("a = ? AND b = ?"))
	assert.Equal(t, "a = $1 AND b = $2", Postgres.rebind("a = ? AND b = ?"))
	assert.Equal(t, "ncrp.db?_pragma=busy_timeout(5000)", SQLite.dsn("ncrp.db"))
	assert.Equal(t, "file:ncrp.db?mode=rwc", SQLite.dsn("file:ncrp.db?mode=rwc"))
	assert.Equal(t, "postgres://localhost/ncrp", Postgres.dsn("postgres://localhost/ncrp"))
}
