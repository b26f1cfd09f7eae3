package port

import (
	"context"
	"io"
	"time"
)

// ObjectRef locates a stored source document.
type ObjectRef struct {
	Bucket string
	Key    string
}

// UploadInput is a source document to store. FileName is the name shown to
// reviewers when the document is opened in a viewer.
type UploadInput struct {
	Ref         ObjectRef
	Body        io.Reader
	ContentType string
	Size        int64
	FileName    string
	Metadata    map[string]string
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// DocumentStorage keeps uploaded source documents for the review viewer.
type DocumentStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	// Delete removes the document. A missing object is not an error.
	Delete(ctx context.Context, ref ObjectRef) error
	// PresignView returns a time-limited URL that renders the document inline.
	PresignView(ctx context.Context, ref ObjectRef, fileName string, expiry time.Duration) (string, error)
}
