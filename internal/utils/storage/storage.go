package storage

import (
	"context"
)

// Storage persists uploaded media and returns a public URL for it.
type Storage interface {
	UploadFile(ctx context.Context, key string, contentType string, body []byte) (string, error)
	DeleteFile(ctx context.Context, key string) error
}

// New picks S3 when a bucket is configured and the local media directory
// otherwise.
func New(bucket string) (Storage, error) {
	if bucket != "" {
		return NewAwsS3()
	}
	return NewLocalStorage()
}
