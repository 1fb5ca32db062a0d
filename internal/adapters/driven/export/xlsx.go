// Package export writes the document table to spreadsheet files.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
)

var _ driven.DocumentExporter = XLSX{}

// XLSX exports documents as an Excel workbook.
type XLSX struct{}

// Export implements driven.DocumentExporter.
func (XLSX) Export(w io.Writer, docs []domain.Document) error {
	return WriteXLSX(w, docs)
}

// SheetName is the worksheet holding the document rows.
const SheetName = "Documents"

// Header is the first row of the sheet.
var Header = []string{"ID", "Title", "Type", "Language", "Size", "Creation date", "Keywords"}

// WriteXLSX writes docs as a single-sheet workbook to w, one row per
// document in the given order. Keywords are written as "value (TYPE)"
// joined by ", ".
func WriteXLSX(w io.Writer, docs []domain.Document) error {
	f, err := build(docs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes docs to a workbook at path.
func SaveXLSX(path string, docs []domain.Document) error {
	f, err := build(docs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func build(docs []domain.Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(Header))
		_ = f.SetCellStyle(SheetName, "A1", lastCol+"1", bold)
	}

	for i := range docs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := rowValues(&docs[i])
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "B", "B", 40)
	_ = f.SetColWidth(SheetName, "G", "G", 60)
	return f, nil
}

func rowValues(doc *domain.Document) []any {
	created := ""
	if !doc.CreationDate.IsZero() {
		created = doc.CreationDate.UTC().Format(time.DateTime)
	}
	return []any{doc.ID, doc.Title, doc.Type, doc.Language, doc.Size, created, FormatKeywords(doc.Keywords)}
}

// FormatKeywords renders keywords as "value (TYPE)" joined by ", ".
func FormatKeywords(keywords []domain.Keyword) string {
	parts := make([]string, len(keywords))
	for i, kw := range keywords {
		parts[i] = fmt.Sprintf("%s (%s)", kw.Value, kw.Type)
	}
	return strings.Join(parts, ", ")
}
