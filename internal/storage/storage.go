// Package storage defines the remote object-storage contract the image
// lifecycle depends on, plus the Cloudinary-backed implementation.
package storage

import (
	"context"
	"io"

	"atelier/internal/model"
)

// Client stores and deletes image blobs in remote storage. Both calls are
// network-bound and safe for concurrent use; each call is independent, no
// transaction spans multiple stores.
type Client interface {
	// Store uploads the bytes under a logical folder and returns the
	// normalized reference. Provider-specific response fields are discarded.
	Store(ctx context.Context, r io.Reader, filename, folder string) (model.ImageRef, error)

	// Delete removes a blob by its public ID. Deleting an unknown or
	// already-deleted ID is not an error.
	Delete(ctx context.Context, publicID string) error
}
