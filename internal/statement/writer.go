package statement

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zombor/trade-extract/internal/extract"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Writer serializes assembled rows into one output table
type Writer interface {
	// Encode renders the header row followed by one row per line item
	Encode(rows []extract.Row) ([]byte, error)

	// Extension is appended to the document identifier to name the output file
	Extension() string
}

// NewWriter returns the Writer for an output format
func NewWriter(format string) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return &CSVWriter{}, nil
	case FormatXLSX:
		return &XLSXWriter{Sheet: "Käufe"}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// CSVWriter writes comma separated tables
type CSVWriter struct{}

// Encode writes the rows as CSV
func (w *CSVWriter) Encode(rows []extract.Row) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(extract.Columns); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		record := row.Record()
		if err := cw.Write(record); err != nil {
			return nil, fmt.Errorf("writing row: %w", err)
		}
		slog.Debug("Row", "cells", strings.Join(record, ","))
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns ".csv"
func (w *CSVWriter) Extension() string {
	return ".csv"
}

// XLSXWriter writes a single sheet workbook
type XLSXWriter struct {
	Sheet string
}

// Encode writes the rows to a workbook sheet, all cells as text
func (w *XLSXWriter) Encode(rows []extract.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := w.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	} else if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, extract.Columns); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		record := row.Record()
		if err := setRow(f, sheet, i+2, record); err != nil {
			return nil, fmt.Errorf("writing row: %w", err)
		}
		slog.Debug("Row", "cells", strings.Join(record, ","))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns ".xlsx"
func (w *XLSXWriter) Extension() string {
	return ".xlsx"
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return f.SetSheetRow(sheet, cell, &values)
}
