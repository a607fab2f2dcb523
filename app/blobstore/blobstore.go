// Package blobstore hosts binary assets (thumbnails, section images): store a
// blob, get a public URL back.
package blobstore

import (
	"context"
	"io"
)

// Store uploads a blob under the given key and returns its public URL.
type Store interface {
	Upload(ctx context.Context, key string, r io.Reader) (string, error)
}
