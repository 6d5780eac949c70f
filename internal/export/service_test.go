package export

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/a3tai/ncrp-intake/internal/complaint"
)

type staticLister struct {
	recs []complaint.Record
	err  error
}

func (l staticLister) List(context.Context) ([]complaint.Record, error) { return l.recs, l.err }

func TestExportXLSX(t *testing.T) {
	recs := []complaint.Record{
		{ID: 2, CSRNo: "4321", AckNo: "4112345678999", TotalLoss: "45,000.00", AdditionalDetails: "Suspect used OLX QR Scam"},
		{ID: 1, CSRNo: "1234", AckNo: "3998123456781", TotalLoss: "250,000.00"},
	}
	svc := NewService(staticLister{recs: recs}, nil)

	data, err := svc.ExportXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, complaint.Columns, rows[0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "4112345678999", rows[1][2])
	assert.Equal(t, "Suspect used OLX QR Scam", rows[1][len(complaint.Columns)-1])
	assert.Equal(t, "1", rows[2][0])
	assert.Equal(t, "250,000.00", rows[2][15])
}

func TestExportXLSXEmpty(t *testing.T) {
	data, err := Workbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExportXLSXListError(t *testing.T) {
	svc := NewService(staticLister{err: errors.New("database is locked")}, nil)

	_, err := svc.ExportXLSX(context.Background())
	assert.ErrorContains(t, err, "database is locked")
}
