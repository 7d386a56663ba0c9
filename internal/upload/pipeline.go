// Package upload validates incoming image files and streams them into remote
// storage, normalizing results into the canonical ImageRef shape.
package upload

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	apperrors "atelier/internal/errors"
	"atelier/internal/model"
	"atelier/internal/storage"
)

// DefaultMaxBytes is the upload size ceiling when none is configured.
const DefaultMaxBytes = 5 << 20

// allowedExtensions maps accepted raster-image extensions to the MIME type
// the declared header and the sniffed content must both agree with.
var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// Pipeline validates and stores uploads.
type Pipeline struct {
	store    storage.Client
	maxBytes int64
}

// New builds a pipeline over a storage client. maxBytes <= 0 selects the
// default ceiling.
func New(store storage.Client, maxBytes int64) *Pipeline {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Pipeline{store: store, maxBytes: maxBytes}
}

// Single validates and stores one file. A nil header is the optional-field
// no-op: it returns a zero ref and no error, distinguishable from a failed
// upload attempt.
func (p *Pipeline) Single(ctx context.Context, fh *multipart.FileHeader, folder string) (model.ImageRef, error) {
	if fh == nil {
		return model.ImageRef{}, nil
	}

	if err := p.validate(fh); err != nil {
		return model.ImageRef{}, err
	}

	f, err := fh.Open()
	if err != nil {
		return model.ImageRef{}, fmt.Errorf("%w: open %s: %v", apperrors.ErrUploadFailed, fh.Filename, err)
	}
	defer f.Close()

	ref, err := p.store.Store(ctx, f, fh.Filename, folder)
	if err != nil {
		return model.ImageRef{}, fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	return ref, nil
}

// Batch validates every file up front, then stores them concurrently,
// preserving input order in the result. If any store fails the whole batch
// fails; blobs already stored by the time of the failure are NOT rolled back
// here. Their IDs are logged so they can be cleaned up manually.
func (p *Pipeline) Batch(ctx context.Context, fhs []*multipart.FileHeader, folder string) (model.ImageList, error) {
	if len(fhs) == 0 {
		return nil, nil
	}

	for _, fh := range fhs {
		if err := p.validate(fh); err != nil {
			return nil, err
		}
	}

	refs := make(model.ImageList, len(fhs))
	var mu sync.Mutex
	stored := make([]string, 0, len(fhs))

	g, gctx := errgroup.WithContext(ctx)
	for i, fh := range fhs {
		i, fh := i, fh
		g.Go(func() error {
			f, err := fh.Open()
			if err != nil {
				return fmt.Errorf("open %s: %v", fh.Filename, err)
			}
			defer f.Close()

			ref, err := p.store.Store(gctx, f, fh.Filename, folder)
			if err != nil {
				return err
			}
			refs[i] = ref
			mu.Lock()
			stored = append(stored, ref.PublicID)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).
			Str("folder", folder).
			Strs("orphaned_public_ids", stored).
			Msg("batch upload failed part way; stored blobs were not rolled back")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	return refs, nil
}

// validate enforces the size ceiling and the format allow-list. The declared
// Content-Type is never trusted alone: it, the filename extension, and the
// sniffed leading bytes must all agree.
func (p *Pipeline) validate(fh *multipart.FileHeader) error {
	if fh.Size > p.maxBytes {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", apperrors.ErrFileTooLarge, fh.Filename, fh.Size, p.maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	want, ok := allowedExtensions[ext]
	if !ok {
		return fmt.Errorf("%w: extension %q", apperrors.ErrUnsupportedMedia, ext)
	}

	declared := fh.Header.Get("Content-Type")
	if declared != "" {
		parsed, _, err := mime.ParseMediaType(declared)
		if err != nil || parsed != want {
			return fmt.Errorf("%w: declared type %q does not match %q", apperrors.ErrUnsupportedMedia, declared, want)
		}
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", apperrors.ErrUploadFailed, fh.Filename, err)
	}
	defer f.Close()

	sniffed, err := mimetype.DetectReader(f)
	if err != nil {
		return fmt.Errorf("%w: sniff %s: %v", apperrors.ErrUploadFailed, fh.Filename, err)
	}
	if !sniffed.Is(want) {
		return fmt.Errorf("%w: content is %q, expected %q", apperrors.ErrUnsupportedMedia, sniffed.String(), want)
	}
	return nil
}
