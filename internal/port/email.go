package port

import "context"

// Attachment is a file sent along with an email.
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportEmail is an export of a reviewed document addressed to one recipient.
type ExportEmail struct {
	To          string
	Subject     string
	TextBody    string
	Attachments []Attachment
}

// EmailSender defines the contract for delivering exports by email.
type EmailSender interface {
	SendExport(ctx context.Context, msg ExportEmail) error
}
