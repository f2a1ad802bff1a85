// Package imager is the object-store collaborator for post images: it saves
// uploaded bytes under opaque keys and probes pixel dimensions. Transcoding is
// out of scope; bytes are stored as received.
package imager

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ctchan-dev/ctchan/internal/domain"
	interrors "github.com/ctchan-dev/ctchan/internal/errors"
)

// Store writes images to a local directory served under baseUrl.
type Store struct {
	rootPath string
	baseUrl  string
}

func NewStore(rootPath, baseUrl string) (*Store, error) {
	p := filepath.Clean(rootPath)
	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media root %s: %w", p, err)
	}
	return &Store{rootPath: p, baseUrl: strings.TrimSuffix(baseUrl, "/")}, nil
}

// Save streams fileData to disk under a fresh uuid key and returns the image
// metadata for the stored object. originalName is kept only as display
// metadata, never as part of the path.
func (s *Store) Save(fileData io.Reader, originalName, mimeType string) (*domain.Image, error) {
	ext := extensionFor(mimeType, originalName)
	key := uuid.NewString() + ext
	fullPath := filepath.Join(s.rootPath, key)

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create media file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, fileData)
	if err != nil {
		os.Remove(fullPath) // best effort
		return nil, fmt.Errorf("failed to write media file: %w", err)
	}

	return &domain.Image{
		Url:       s.baseUrl + "/" + key,
		Name:      filepath.Base(originalName),
		SizeBytes: written,
	}, nil
}

// Open reads a stored object back by key. Used by the media file server.
func (s *Store) Open(key string) (io.ReadCloser, error) {
	// keys are uuid-derived; reject anything trying to climb out
	if key != filepath.Base(filepath.Clean(key)) {
		return nil, interrors.NotFound("Image not found")
	}
	file, err := os.Open(filepath.Join(s.rootPath, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, interrors.NotFound("Image not found")
		}
		return nil, fmt.Errorf("failed to open media file: %w", err)
	}
	return file, nil
}

// Root returns the directory files live in, for mounting a file server.
func (s *Store) Root() string {
	return s.rootPath
}

func extensionFor(mimeType, originalName string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return filepath.Ext(originalName)
}
