// Package s3 stores uploaded source documents in an S3-compatible bucket.
package s3

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"docmap/internal/config"
	"docmap/internal/port"
)

type documentStore struct {
	api       *s3.Client
	presigner *s3.PresignClient
	uploader  *manager.Uploader
}

// NewDocumentStore creates an S3-backed DocumentStorage. A custom endpoint
// (MinIO, LocalStack) switches to path-style addressing.
func NewDocumentStore(ctx context.Context, cfg *config.S3Config) (port.DocumentStorage, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &documentStore{
		api:       api,
		presigner: s3.NewPresignClient(api),
		uploader: manager.NewUploader(api, func(u *manager.Uploader) {
			u.Concurrency = 2
		}),
	}, nil
}

func (d *documentStore) Upload(ctx context.Context, in port.UploadInput) (*port.UploadOutput, error) {
	put := &s3.PutObjectInput{
		Bucket:             aws.String(in.Ref.Bucket),
		Key:                aws.String(in.Ref.Key),
		Body:               in.Body,
		ContentType:        aws.String(in.ContentType),
		ContentDisposition: aws.String(InlineDisposition(in.FileName)),
		Metadata:           in.Metadata,
	}
	if in.Size > 0 {
		put.ContentLength = aws.Int64(in.Size)
	}

	res, err := d.uploader.Upload(ctx, put)
	if err != nil {
		return nil, fmt.Errorf("s3 upload %s: %w", in.Ref.Key, err)
	}
	return &port.UploadOutput{Location: res.Location, ETag: aws.ToString(res.ETag)}, nil
}

func (d *documentStore) Delete(ctx context.Context, ref port.ObjectRef) error {
	_, err := d.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Key),
	})
	var missing *types.NoSuchKey
	if err != nil && !errors.As(err, &missing) {
		return fmt.Errorf("s3 delete %s: %w", ref.Key, err)
	}
	return nil
}

func (d *documentStore) PresignView(ctx context.Context, ref port.ObjectRef, fileName string, expiry time.Duration) (string, error) {
	req, err := d.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(ref.Bucket),
		Key:                        aws.String(ref.Key),
		ResponseContentDisposition: aws.String(InlineDisposition(fileName)),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", ref.Key, err)
	}
	return req.URL, nil
}

// InlineDisposition builds a Content-Disposition value that lets browsers
// render the document instead of downloading it.
func InlineDisposition(fileName string) string {
	if fileName == "" {
		return "inline"
	}
	return mime.FormatMediaType("inline", map[string]string{"filename": fileName})
}
