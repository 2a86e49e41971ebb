// Package report writes bucket inventories into spreadsheet templates.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"github.com/younsl/s3inventory/internal/models"
)

const (
	// DefaultStartRow and DefaultStartCol locate the first data cell of the template (D4)
	DefaultStartRow = 4
	DefaultStartCol = 4

	templateSheet = "Inventory"
	templateTitle = "S3 Bucket Inventory"
)

// Columns are the headers of the inventory row, in write order
var Columns = []string{
	"Bucket",
	"Created",
	"Size (bytes)",
	"Objects",
	"Public Access",
	"Public Policy",
	"Importance",
	"Removable",
}

// ErrTemplateExists is returned when creating a template over an existing file
var ErrTemplateExists = errors.New("template already exists")

// Writer fills an existing workbook with one row per bucket
type Writer struct {
	Path     string
	StartRow int
	StartCol int

	// LegacyColumns writes the Public Access column the way older inventory
	// spreadsheets did: "Yes" when the bucket is fully blocked, "No" otherwise.
	LegacyColumns bool
}

// NewWriter creates a Writer for the workbook at path using the default offset
func NewWriter(path string) *Writer {
	return &Writer{
		Path:     path,
		StartRow: DefaultStartRow,
		StartCol: DefaultStartCol,
	}
}

// Write opens the workbook, writes the records into its first worksheet and saves it in place.
// Nothing is saved if any cell fails to be written.
func (w *Writer) Write(records []models.BucketRecord) error {
	f, err := excelize.OpenFile(w.Path)
	if err != nil {
		return fmt.Errorf("error opening workbook %s: %w", w.Path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("workbook %s has no worksheet", w.Path)
	}
	sheet := sheets[0]

	for i, record := range records {
		if err := w.writeRow(f, sheet, w.StartRow+i, record); err != nil {
			return fmt.Errorf("error writing bucket %s: %w", record.Name, err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("error saving workbook %s: %w", w.Path, err)
	}
	return nil
}

func (w *Writer) writeRow(f *excelize.File, sheet string, row int, record models.BucketRecord) error {
	for i, value := range rowValues(record, w.LegacyColumns) {
		cell, err := excelize.CoordinatesToCellName(w.StartCol+i, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

// rowValues returns the cell values of a record in Columns order.
// Missing values are written as empty strings.
func rowValues(record models.BucketRecord, legacy bool) []interface{} {
	var created interface{} = ""
	if !record.CreationDate.IsZero() {
		created = record.CreationDate
	}

	return []interface{}{
		record.Name,
		created,
		optionalFloat(record.SizeBytes),
		optionalFloat(record.ObjectCount),
		yesNo(publicAccessCell(record, legacy)),
		yesNo(record.HasPublicPolicy),
		string(record.Classification.Importance),
		record.Classification.Removable,
	}
}

// publicAccessCell is true when the bucket lacks a complete public access block.
// In legacy mode it is the fully blocked flag of a configured block, and false for an absent one.
func publicAccessCell(record models.BucketRecord, legacy bool) bool {
	if legacy {
		return record.AccessBlockConfigured && record.IsFullyAccessBlocked
	}
	return record.IsPubliclyExposed()
}

func optionalFloat(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// CreateTemplate writes an empty inventory workbook with a title and a header row right
// above the data offset. An existing file is only replaced when force is set.
func CreateTemplate(path string, startRow, startCol int, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrTemplateExists, path)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating template directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), templateSheet); err != nil {
		return fmt.Errorf("error naming template sheet: %w", err)
	}

	titleCell, err := excelize.CoordinatesToCellName(startCol, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(templateSheet, titleCell, templateTitle); err != nil {
		return err
	}

	if startRow > 2 {
		headerCell, err := excelize.CoordinatesToCellName(startCol, startRow-1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(templateSheet, headerCell, &Columns); err != nil {
			return fmt.Errorf("error writing template header: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving template %s: %w", path, err)
	}
	return nil
}
