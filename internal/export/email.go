package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"docmap/internal/domain"
	"docmap/internal/port"
	"docmap/internal/review"
)

// EmailInput describes an export to be mailed.
type EmailInput struct {
	To        string
	Name      string // base name of the attachments
	Partner   domain.Partner
	RuleSetID string
	Output    domain.ParsedOutput
	Now       time.Time
}

// BuildEmail renders the CSV and Excel exports and wraps them in an email.
func BuildEmail(in EmailInput) (port.ExportEmail, error) {
	var csvBuf, xlsxBuf bytes.Buffer
	if err := WriteCSV(&csvBuf, in.Output); err != nil {
		return port.ExportEmail{}, fmt.Errorf("rendering csv: %w", err)
	}
	if err := WriteXLSX(&xlsxBuf, in.Output); err != nil {
		return port.ExportEmail{}, fmt.Errorf("rendering xlsx: %w", err)
	}

	summary := review.Summarize(in.Output)
	var body strings.Builder
	fmt.Fprintf(&body, "Parsed document export for %s.\n\n", in.Partner.Name)
	fmt.Fprintf(&body, "Rule set: %s\n", in.RuleSetID)
	fmt.Fprintf(&body, "Fields: %d total, %d confirmed, %d awaiting review\n", summary.Total, summary.Confirmed, summary.NeedsReview)
	fmt.Fprintf(&body, "Item rows: %d\n", len(in.Output.Items))

	return port.ExportEmail{
		To:       in.To,
		Subject:  fmt.Sprintf("Parsed document export: %s", in.Partner.Name),
		TextBody: body.String(),
		Attachments: []port.Attachment{
			{FileName: BuildFilename(in.Name, "csv", in.Now), ContentType: "text/csv", Data: csvBuf.Bytes()},
			{FileName: BuildFilename(in.Name, "xlsx", in.Now), ContentType: ContentTypeXLSX, Data: xlsxBuf.Bytes()},
		},
	}, nil
}
