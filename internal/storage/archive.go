package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const exportPrefix = "exports"

// ObjectPutter is the part of *s3.Client the archive needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ExportArchive keeps a copy of every generated export in a bucket
type ExportArchive struct {
	client ObjectPutter
	bucket string
}

func NewExportArchive(client ObjectPutter, bucket string) *ExportArchive {
	return &ExportArchive{client: client, bucket: bucket}
}

// Store uploads body under exports/<name> and returns the object key
func (a *ExportArchive) Store(ctx context.Context, name, contentType string, body []byte) (string, error) {
	key := path.Join(exportPrefix, path.Base(name))

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to s3://%s: %w", key, a.bucket, err)
	}

	return key, nil
}
