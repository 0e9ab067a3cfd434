// Package localfs provides a local disk implementation of the filestore.FileStore interface.
package localfs

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/foodcatalog/filestore"
)

const (
	dirPerm = 0o750
	tmpExt  = ".tmp"
)

// Store implements filestore.FileStore on a directory of the local filesystem.
type Store struct {
	root string
}

// New creates the root directory if needed and returns a Store rooted there.
func New(cfg Config) (*Store, error) {
	root, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	err = os.MkdirAll(root, dirPerm)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"dir": root}))
	}

	return &Store{root: root}, nil
}

// Root returns the absolute root directory.
func (s *Store) Root() string {
	return s.root
}

// Upload writes the content to a temp file, syncs it and renames it into place,
// so readers never observe a partially written file.
func (s *Store) Upload(ctx context.Context, path string, reader io.Reader) (*filestore.FileInfo, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, errx.Wrap(err)
	}

	err = os.MkdirAll(filepath.Dir(fullPath), dirPerm)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	tmpPath := fullPath + tmpExt
	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	_, err = io.Copy(f, reader)
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, fullPath)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}

	return s.Stat(ctx, path)
}

// Get opens the file at path. The caller must close File.Content.
func (s *Store) Get(ctx context.Context, path string) (*filestore.File, error) {
	info, err := s.Stat(ctx, path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(info.Path)))
	if err != nil {
		return nil, s.wrapFSError(err, path)
	}

	return &filestore.File{Content: f, Info: *info}, nil
}

// Stat returns metadata of the file at path.
func (s *Store) Stat(_ context.Context, path string) (*filestore.FileInfo, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	st, err := os.Stat(fullPath)
	if err != nil {
		return nil, s.wrapFSError(err, path)
	}
	if st.IsDir() {
		return nil, errx.New("path is a directory", errx.WithCode(filestore.CodeFileNotFound),
			errx.WithType(errx.T_NotFound), errx.WithDetails(errx.D{"path": path}))
	}

	return &filestore.FileInfo{
		Path:         filepath.ToSlash(path),
		Size:         st.Size(),
		ContentType:  filestore.ContentTypeByPath(path),
		LastModified: st.ModTime(),
	}, nil
}

// Delete removes the file at path. A missing file is not an error.
func (s *Store) Delete(_ context.Context, path string) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	err = os.Remove(fullPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}
	return nil
}

// Exists reports whether a regular file is stored at path.
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.Stat(ctx, path)
	if err == nil {
		return true, nil
	}
	if errx.IsCodeIn(err, filestore.CodeFileNotFound) {
		return false, nil
	}
	return false, err
}

// resolve maps a slash separated relative path to an absolute path under root.
func (s *Store) resolve(path string) (string, error) {
	local := filepath.FromSlash(path)
	if path == "" || !filepath.IsLocal(local) {
		return "", errx.New("invalid file path",
			errx.WithCode(filestore.CodeInvalidPath),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"path": path}),
		)
	}
	return filepath.Join(s.root, local), nil
}

func (s *Store) wrapFSError(err error, path string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return errx.New("file not found",
			errx.WithCode(filestore.CodeFileNotFound),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(errx.D{"path": path}),
		)
	}
	return errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
}
