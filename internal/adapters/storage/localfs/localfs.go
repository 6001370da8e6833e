package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/amellouk/souq/internal/domain"
)

// Storage keeps photo objects on the local filesystem, served under
// baseURL. The object ID is the file name.
type Storage struct {
	dir     string
	baseURL string
}

func New(dir, baseURL string) *Storage {
	return &Storage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *Storage) Upload(ctx context.Context, name string, r io.Reader, size int64) (domain.StoredObject, error) {
	name = filepath.Base(name)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return domain.StoredObject{}, fmt.Errorf("localfs: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(f.Name())
		return domain.StoredObject{}, fmt.Errorf("localfs: %w", err)
	}
	return domain.StoredObject{URL: s.baseURL + "/static/" + name, ID: name}, nil
}

func (s *Storage) Delete(ctx context.Context, id string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(id)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("localfs: %w", err)
	}
	return nil
}
