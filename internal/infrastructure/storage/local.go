package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fandressouza/indicacoes/domain"
)

// LocalImageStore implements domain.ImageStore on a directory served under /uploads
type LocalImageStore struct {
	dir    string
	logger *zap.Logger
}

// NewLocalImageStore creates dir if needed
func NewLocalImageStore(dir string, logger *zap.Logger) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload folder %s: %w", dir, err)
	}
	return &LocalImageStore{dir: dir, logger: logger}, nil
}

// Dir is the folder images are written to
func (s *LocalImageStore) Dir() string { return s.dir }

// Save implements domain.ImageStore. The returned ref is the bare file name.
func (s *LocalImageStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	name = filepath.Base(name)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", domain.StorageError("save image", err)
	}
	s.logger.Debug("image saved", zap.String("ref", name), zap.Int("bytes", len(data)))
	return name, nil
}

// Delete implements domain.ImageStore. Deleting a missing image is not an error.
func (s *LocalImageStore) Delete(ctx context.Context, ref string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(ref)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.StorageError("delete image", err)
	}
	return nil
}
