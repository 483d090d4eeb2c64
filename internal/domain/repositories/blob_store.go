package repositories

import (
	"context"
	"io"
)

// BlobStore is the boundary to the external file storage/CDN. The
// workflow only ever keeps the returned URL plus declared file metadata.
type BlobStore interface {
	Upload(ctx context.Context, content io.Reader, fileName, contentType string) (string, error)
}
