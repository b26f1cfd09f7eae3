// Package export renders reviewed parsed outputs as CSV, Excel and email
// attachments.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"docmap/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Scope",
	"Row",
	"Field",
	"Value",
	"Confidence",
	"Status",
}

// Writer wraps csv.Writer for exporting parsed outputs as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteOutput writes one row per header field followed by one row per item field.
func (w *Writer) WriteOutput(out domain.ParsedOutput) error {
	for _, f := range out.HeaderData {
		if err := w.csv.Write(fieldToRow("header", "", f)); err != nil {
			return err
		}
	}
	for i, item := range out.Items {
		row := strconv.Itoa(i)
		for _, key := range OrderedKeys(item) {
			if err := w.csv.Write(fieldToRow("item", row, item[key])); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a complete CSV document, BOM included, to dst.
func WriteCSV(dst io.Writer, out domain.ParsedOutput) error {
	if _, err := dst.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(dst)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteOutput(out); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func fieldToRow(scope, row string, f domain.ParsedDataField) []string {
	return []string{
		scope,
		row,
		f.Field,
		f.Value,
		formatConfidence(f.Confidence),
		string(f.Status),
	}
}

func formatConfidence(c float64) string {
	return strconv.FormatFloat(c, 'f', 1, 64)
}

// OrderedKeys returns the target paths of an item row in rule order, which
// is the numeric suffix of the field ids.
func OrderedKeys(row domain.ItemRow) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		si, sj := ruleIndex(row[keys[i]].ID), ruleIndex(row[keys[j]].ID)
		if si != sj {
			return si < sj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func ruleIndex(id string) int {
	idx := strings.LastIndexByte(id, '-')
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "export"
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), ext)
}
