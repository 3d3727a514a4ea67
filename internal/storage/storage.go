package storage

import (
	"context"
	"io"
	"time"
)

// Uploader stores a document object and returns the key it can be
// retrieved by later.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

// Signer mints short-lived download URLs for stored objects.
type Signer interface {
	SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}
