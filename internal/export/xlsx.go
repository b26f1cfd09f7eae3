package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"docmap/internal/domain"
)

const (
	headerSheet = "Header"
	itemsSheet  = "Items"
)

// ContentTypeXLSX is the MIME type of the workbook produced by WriteXLSX.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes a workbook with a Header sheet (one row per header field)
// and an Items sheet (one row per item, one column per target path).
// Fields still awaiting review are highlighted.
func WriteXLSX(dst io.Writer, out domain.ParsedOutput) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", headerSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return fmt.Errorf("creating items sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	pending, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFF2CC"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := writeHeaderSheet(f, out, bold, pending); err != nil {
		return err
	}
	if err := writeItemsSheet(f, out, bold, pending); err != nil {
		return err
	}

	if err := f.Write(dst); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeHeaderSheet(f *excelize.File, out domain.ParsedOutput, bold, pending int) error {
	if err := f.SetSheetRow(headerSheet, "A1", &[]interface{}{"Field", "Value", "Confidence", "Status"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(headerSheet, "A1", "D1", bold); err != nil {
		return err
	}
	for i, field := range out.HeaderData {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{field.Field, field.Value, field.Confidence, string(field.Status)}
		if err := f.SetSheetRow(headerSheet, cell, &row); err != nil {
			return err
		}
		if field.Status == domain.ReviewStatusNeedsReview {
			valueCell, _ := excelize.CoordinatesToCellName(2, i+2)
			if err := f.SetCellStyle(headerSheet, valueCell, valueCell, pending); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(headerSheet, "A", "B", 36)
}

func writeItemsSheet(f *excelize.File, out domain.ParsedOutput, bold, pending int) error {
	// Columns follow the first appearance of each target path.
	var paths []string
	col := map[string]int{}
	for _, item := range out.Items {
		for _, key := range OrderedKeys(item) {
			if _, ok := col[key]; !ok {
				col[key] = len(paths) + 2
				paths = append(paths, key)
			}
		}
	}

	header := []interface{}{"Row"}
	for _, p := range paths {
		header = append(header, p)
	}
	if err := f.SetSheetRow(itemsSheet, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(itemsSheet, "A1", last, bold); err != nil {
		return err
	}

	for i, item := range out.Items {
		r := i + 2
		first, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetCellValue(itemsSheet, first, i); err != nil {
			return err
		}
		for key, field := range item {
			cell, _ := excelize.CoordinatesToCellName(col[key], r)
			if err := f.SetCellValue(itemsSheet, cell, field.Value); err != nil {
				return err
			}
			if field.Status == domain.ReviewStatusNeedsReview {
				if err := f.SetCellStyle(itemsSheet, cell, cell, pending); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
