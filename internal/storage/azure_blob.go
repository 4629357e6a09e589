package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// AzureBlobStorage maps the public/private visibility split onto two blob
// containers.
type AzureBlobStorage struct {
	client           *azblob.Client
	endpoint         string
	publicContainer  string
	privateContainer string
}

func NewAzureBlobStorage(endpoint, accountName, accountKey, publicContainer, privateContainer string) (*AzureBlobStorage, error) {
	if endpoint == "" || accountName == "" || accountKey == "" {
		return nil, fmt.Errorf("azure blob: missing endpoint or credentials")
	}
	cred, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("azure blob: credential error: %w", err)
	}
	client, err := azblob.NewClientWithSharedKeyCredential(endpoint, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("azure blob: client init failed: %w", err)
	}
	return &AzureBlobStorage{
		client:           client,
		endpoint:         strings.TrimSuffix(endpoint, "/"),
		publicContainer:  publicContainer,
		privateContainer: privateContainer,
	}, nil
}

func (s *AzureBlobStorage) Put(ctx context.Context, b *Blob) (*StoredBlob, error) {
	if err := validateBlob(b); err != nil {
		return nil, err
	}
	container, err := s.containerFor(b.Visibility)
	if err != nil {
		return nil, err
	}

	blobName, err := sanitizeBlobPath(b.Name)
	if err != nil {
		return nil, err
	}

	options := &azblob.UploadStreamOptions{}
	if b.ContentType != "" {
		options.HTTPHeaders = &blob.HTTPHeaders{
			BlobContentType: &b.ContentType,
		}
	}

	if _, err := s.client.UploadStream(ctx, container, blobName, b.Reader, options); err != nil {
		return nil, fmt.Errorf("azure blob: upload failed: %w", err)
	}

	return &StoredBlob{
		Visibility: b.Visibility,
		Path:       blobName,
		URL:        fmt.Sprintf("%s/%s/%s", s.endpoint, container, blobName),
	}, nil
}

func (s *AzureBlobStorage) Remove(ctx context.Context, loc *StoredBlob) error {
	if err := validateLocation(loc); err != nil {
		return err
	}
	container, err := s.containerFor(loc.Visibility)
	if err != nil {
		return err
	}
	if _, err := s.client.DeleteBlob(ctx, container, loc.Path, nil); err != nil {
		return fmt.Errorf("azure blob: delete failed: %w", err)
	}
	return nil
}

func (s *AzureBlobStorage) containerFor(v Visibility) (string, error) {
	switch v {
	case VisibilityPublic:
		if s.publicContainer == "" {
			return "", fmt.Errorf("azure blob: public container not configured")
		}
		return s.publicContainer, nil
	case VisibilityPrivate:
		if s.privateContainer == "" {
			return "", fmt.Errorf("azure blob: private container not configured")
		}
		return s.privateContainer, nil
	default:
		return "", fmt.Errorf("azure blob: unknown visibility %q", v)
	}
}

func sanitizeBlobPath(name string) (string, error) {
	clean := path.Clean(name)
	if clean == "." || clean == "/" {
		return "", fmt.Errorf("azure blob: invalid blob name")
	}
	if strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("azure blob: path traversal detected")
	}
	return clean, nil
}
