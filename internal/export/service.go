// Package export renders stored complaints as spreadsheets.
package export

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/xuri/excelize/v2"

	"github.com/a3tai/ncrp-intake/internal/complaint"
)

// SheetName is the worksheet holding the complaints.
const SheetName = "Complaints"

// Lister returns the records to export.
type Lister interface {
	List(ctx context.Context) ([]complaint.Record, error)
}

// Service builds XLSX exports.
type Service struct {
	records Lister
	logger  log.Interface
}

// NewService creates an export service.
func NewService(records Lister, logger log.Interface) *Service {
	if logger == nil {
		logger = log.Log
	}
	return &Service{records: records, logger: logger}
}

// ExportXLSX returns a workbook with one row per stored complaint, newest
// first, under a header row of the record's wire keys.
func (s *Service) ExportXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()
	recs, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}

	data, err := Workbook(recs)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(log.Fields{
		"rows":       len(recs),
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Info("complaints exported")
	return data, nil
}

// Workbook renders records as an XLSX file.
func Workbook(recs []complaint.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if index, _ := f.GetSheetIndex(SheetName); index == -1 {
		if _, err := f.NewSheet(SheetName); err != nil {
			return nil, err
		}
	}
	// Drop the default sheet so the workbook opens on the complaints.
	_ = f.DeleteSheet("Sheet1")
	activeIndex, _ := f.GetSheetIndex(SheetName)
	f.SetActiveSheet(activeIndex)

	for i, h := range complaint.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}

	for r, rec := range recs {
		row := r + 2
		write := func(col int, v string) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellStr(SheetName, cell, v)
		}
		write(1, strconv.FormatInt(rec.ID, 10))
		for i, v := range rec.Values() {
			write(i+2, v)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 8)  // id
	_ = f.SetColWidth(SheetName, "B", "C", 22) // csr, ack
	_ = f.SetColWidth(SheetName, "D", "F", 30) // category, sub category, platform
	_ = f.SetColWidth(SheetName, "G", "I", 14) // dates
	_ = f.SetColWidth(SheetName, "J", "K", 36) // complainant
	_ = f.SetColWidth(SheetName, "L", "P", 22) // contacts, suspect, amount
	_ = f.SetColWidth(SheetName, "Q", "Q", 80) // narrative

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
