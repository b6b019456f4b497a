package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"insa-partnership-backend/internal/utils"
)

// AttachmentStore persists uploaded review attachments on the local
// filesystem. The workflow engine never touches files; it only carries the
// references this store hands out.
type AttachmentStore struct {
	baseURL string
	dir     string
}

func NewAttachmentStore(baseURL, uploadDir string) (*AttachmentStore, error) {
	dir := filepath.Join(uploadDir, "attachments")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create attachments directory: %w", err)
	}
	return &AttachmentStore{baseURL: baseURL, dir: dir}, nil
}

// NewKey returns a collision-free storage key that still ends in the
// original (normalized) filename, so downstream display names stay readable.
func (s *AttachmentStore) NewKey(fileName string) string {
	return uuid.New().String() + "_" + utils.NormalizeFileName(fileName)
}

// Save writes the uploaded content under key and returns its size.
func (s *AttachmentStore) Save(key string, r io.Reader) (int64, error) {
	f, err := os.Create(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil {
		return 0, fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		os.Remove(f.Name())
		return 0, fmt.Errorf("failed to write attachment: %w", err)
	}
	return n, nil
}

// Open returns a reader for a stored attachment.
func (s *AttachmentStore) Open(key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("attachment %q not found", key)
		}
		return nil, err
	}
	return f, nil
}

// DownloadURL returns the URL a client fetches a stored attachment from.
func (s *AttachmentStore) DownloadURL(key string) string {
	return fmt.Sprintf("%s/api/v1/attachments/%s", s.baseURL, key)
}
