package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage keeps uploads on disk under basePath/<visibility>/.
type LocalStorage struct {
	basePath  string
	publicURL string
}

// NewLocalStorage writes below basePath; publicURL is the prefix public blobs
// are served from (e.g. "/media").
func NewLocalStorage(basePath, publicURL string) *LocalStorage {
	return &LocalStorage{
		basePath:  basePath,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (s *LocalStorage) Put(ctx context.Context, blob *Blob) (*StoredBlob, error) {
	if err := validateBlob(blob); err != nil {
		return nil, err
	}
	name, err := safeName(blob.Name)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.basePath, blob.Visibility.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("local storage: mkdir failed: %w", err)
	}

	fullPath := filepath.Join(dir, name)
	out, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("local storage: create file failed: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, blob.Reader); err != nil {
		return nil, fmt.Errorf("local storage: write failed: %w", err)
	}

	url := ""
	if blob.Visibility == VisibilityPublic {
		url = s.publicURL + "/" + name
	}

	return &StoredBlob{
		Visibility: blob.Visibility,
		Path:       name,
		URL:        url,
	}, nil
}

func (s *LocalStorage) Remove(ctx context.Context, loc *StoredBlob) error {
	if err := validateLocation(loc); err != nil {
		return err
	}
	fullPath := filepath.Join(s.basePath, loc.Visibility.String(), filepath.FromSlash(loc.Path))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("local storage: delete failed: %w", err)
	}
	return nil
}

// safeName rejects anything that could escape the storage directory.
func safeName(name string) (string, error) {
	clean := path.Clean(name)
	if clean == "." || clean == "/" || strings.Contains(clean, "/") || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("local storage: invalid blob name %q", name)
	}
	return clean, nil
}
