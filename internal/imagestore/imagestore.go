// Package imagestore manages food image files on top of a filestore backend.
//
// It maps stored filenames to public image URLs and back, and performs
// best-effort deletions: a failed or pointless delete is logged and reported
// as false, never returned as an error.
package imagestore

import (
	"context"
	"strings"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/foodcatalog/filestore"
	"github.com/rise-and-shine/foodcatalog/logger"
)

// URL prefixes of stored images. PublicPrefix is used for new references;
// both are accepted when resolving existing ones.
const (
	PublicPrefix    = "/api/uploads/foods/"
	AlternatePrefix = "/api/uploads/"
)

// Info describes a stored image.
type Info struct {
	Filename    string    `json:"filename"`
	URL         string    `json:"url"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	ModifiedAt  time.Time `json:"modified_at"`
}

// Store implements image file operations for food records.
type Store struct {
	backend filestore.FileStore
	log     logger.Logger
}

// New returns a Store writing to backend.
func New(backend filestore.FileStore) *Store {
	return &Store{
		backend: backend,
		log:     logger.Named("imagestore"),
	}
}

// Backend returns the underlying file store.
func (s *Store) Backend() filestore.FileStore {
	return s.backend
}

// URLFor builds the public URL of a stored file.
func (s *Store) URLFor(filename string) string {
	return PublicPrefix + filename
}

// ResolveReference recovers the stored filename from an image URL.
// It returns false for URLs outside the known prefixes and for anything that
// is not a plain filename, so a delete can never reach outside the store.
func (s *Store) ResolveReference(imageURL string) (string, bool) {
	var name string
	switch {
	case strings.HasPrefix(imageURL, PublicPrefix):
		name = strings.TrimPrefix(imageURL, PublicPrefix)
	case strings.HasPrefix(imageURL, AlternatePrefix):
		name = strings.TrimPrefix(imageURL, AlternatePrefix)
	default:
		return "", false
	}

	if !isPlainFilename(name) {
		return "", false
	}
	return name, true
}

// Exists reports whether filename is stored. Backend errors count as absent.
func (s *Store) Exists(ctx context.Context, filename string) bool {
	if !isPlainFilename(filename) {
		return false
	}

	ok, err := s.backend.Exists(ctx, filename)
	if err != nil {
		s.log.WithContext(ctx).Warnx(errx.Wrap(err))
		return false
	}
	return ok
}

// Delete removes filename and reports whether a file was actually removed.
// A missing file yields false; backend failures are logged and yield false.
func (s *Store) Delete(ctx context.Context, filename string) bool {
	if !isPlainFilename(filename) {
		return false
	}

	log := s.log.WithContext(ctx).With("filename", filename)

	exists, err := s.backend.Exists(ctx, filename)
	if err != nil {
		log.Warnx(errx.Wrap(err))
		return false
	}
	if !exists {
		return false
	}

	err = s.backend.Delete(ctx, filename)
	if err != nil {
		log.Warnx(errx.Wrap(err))
		return false
	}

	log.Debug("image deleted")
	return true
}

// DeleteReference resolves imageURL and deletes the referenced file.
func (s *Store) DeleteReference(ctx context.Context, imageURL string) bool {
	filename, ok := s.ResolveReference(imageURL)
	if !ok {
		s.log.WithContext(ctx).With("image_url", imageURL).Warn("image reference not resolvable, nothing deleted")
		return false
	}
	return s.Delete(ctx, filename)
}

// Info returns size and modification time of a stored file.
func (s *Store) Info(ctx context.Context, filename string) (*Info, error) {
	if !isPlainFilename(filename) {
		return nil, errx.New("image not found",
			errx.WithCode(filestore.CodeFileNotFound),
			errx.WithType(errx.T_NotFound),
		)
	}

	st, err := s.backend.Stat(ctx, filename)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &Info{
		Filename:    filename,
		URL:         s.URLFor(filename),
		Size:        st.Size,
		ContentType: st.ContentType,
		ModifiedAt:  st.LastModified,
	}, nil
}

func isPlainFilename(name string) bool {
	return name != "" &&
		name != "." &&
		!strings.Contains(name, "..") &&
		!strings.ContainsAny(name, `/\`)
}
