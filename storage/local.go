package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file is too large")
	ErrNotAnImage   = errors.New("only image uploads are allowed")
)

// PublicPrefix is the URL path the upload directory is served under
const PublicPrefix = "/uploads"

// Raster formats only; SVG can carry script and uploads are served same-origin
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// LocalStore keeps uploaded images on the local disk
type LocalStore struct {
	dir      string
	maxBytes int64
}

func NewLocalStore(dir string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, maxBytes: maxBytes}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

// Save stores a multipart upload and returns its public URL
func (s *LocalStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size == 0 {
		return "", ErrEmptyFile
	}
	if fh.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s.SaveReader(f)
}

// SaveReader sniffs the content type, then writes the image under a random name
func (s *LocalStore) SaveReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrFileTooLarge
	}

	mt := mimetype.Detect(data)
	if !allowedTypes[mt.String()] {
		return "", fmt.Errorf("%w: got %s", ErrNotAnImage, mt.String())
	}

	name := uuid.NewString() + mt.Extension()
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, bytes.NewReader(data)); err != nil {
		dst.Close()
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return PublicPrefix + "/" + name, nil
}
