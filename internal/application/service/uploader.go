package service

import (
	"context"
	"io"
)

// Uploader stores binary media in the public bucket and returns the
// public URL it will be served from.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, fileName string) (string, error)
	Delete(ctx context.Context, key string) error
}
