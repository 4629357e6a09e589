package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidBlob     = errors.New("storage: invalid blob")
	ErrInvalidLocation = errors.New("storage: invalid location")
)

// Visibility decides which container/bucket a blob lands in. Public blobs are
// served directly by the marketing site; private ones require a signed path.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

func (v Visibility) String() string {
	if v.IsValid() {
		return string(v)
	}
	return "unknown"
}

// Blob is the payload handed to a backend when uploading.
type Blob struct {
	Name        string
	Visibility  Visibility
	ContentType string
	Size        int64
	Reader      io.Reader
}

// StoredBlob records where a backend put a blob.
type StoredBlob struct {
	Visibility Visibility
	Path       string
	URL        string
}

// Storage is implemented by every media backend.
type Storage interface {
	Put(ctx context.Context, blob *Blob) (*StoredBlob, error)
	Remove(ctx context.Context, loc *StoredBlob) error
}

func validateBlob(blob *Blob) error {
	if blob == nil || blob.Reader == nil {
		return fmt.Errorf("%w: missing data stream", ErrInvalidBlob)
	}
	if !blob.Visibility.IsValid() {
		return fmt.Errorf("%w: invalid visibility %q", ErrInvalidBlob, blob.Visibility)
	}
	if blob.Name == "" {
		return fmt.Errorf("%w: missing blob name", ErrInvalidBlob)
	}
	return nil
}

func validateLocation(loc *StoredBlob) error {
	if loc == nil {
		return ErrInvalidLocation
	}
	if !loc.Visibility.IsValid() {
		return fmt.Errorf("%w: invalid visibility %q", ErrInvalidLocation, loc.Visibility)
	}
	if loc.Path == "" {
		return fmt.Errorf("%w: missing path", ErrInvalidLocation)
	}
	return nil
}
