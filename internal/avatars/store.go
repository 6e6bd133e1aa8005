// Package avatars stores user avatar images on a filesystem.
package avatars

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var (
	ErrEmpty       = errors.New("avatar is empty")
	ErrInvalidData = errors.New("avatar is not valid base64")
	ErrUnsupported = errors.New("unsupported avatar type")
	ErrTooLarge    = errors.New("avatar is too large")
)

// MaxSize caps a decoded avatar.
const MaxSize = 5 << 20

var allowed = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store keeps avatars as flat files under dir.
type Store struct {
	fs  afero.Fs
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(fs afero.Fs, dir string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}
	return &Store{fs: fs, dir: dir}, nil
}

// Check reports whether data would be accepted by SaveFromBase64.
func (s *Store) Check(data string) error {
	_, _, err := decode(data)
	return err
}

// SaveFromBase64 decodes data, optionally wrapped in a data URL, and writes
// it as <userID><ext>. It returns the file name to store on the user row.
func (s *Store) SaveFromBase64(userID uuid.UUID, data string) (string, error) {
	raw, ext, err := decode(data)
	if err != nil {
		return "", err
	}

	// A user has one avatar; drop files left over from a different type.
	for _, other := range allowed {
		if other != ext {
			_ = s.fs.Remove(filepath.Join(s.dir, userID.String()+other))
		}
	}

	name := userID.String() + ext
	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}

	return name, nil
}

// Open opens a stored avatar together with its content type. Only the base
// name of the reference is used.
func (s *Store) Open(name string) (afero.File, string, error) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return nil, "", os.ErrNotExist
	}

	f, err := s.fs.Open(filepath.Join(s.dir, base))
	if err != nil {
		return nil, "", err
	}

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return nil, "", err
	}
	if _, err := f.Seek(0, 0); err != nil {
		f.Close()
		return nil, "", err
	}

	return f, mt.String(), nil
}

func decode(data string) ([]byte, string, error) {
	if i := strings.Index(data, ","); strings.HasPrefix(data, "data:") && i >= 0 {
		data = data[i+1:]
	}
	if data == "" {
		return nil, "", ErrEmpty
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", ErrInvalidData
	}
	if len(raw) > MaxSize {
		return nil, "", ErrTooLarge
	}

	ext, ok := allowed[mimetype.Detect(raw).String()]
	if !ok {
		return nil, "", ErrUnsupported
	}
	return raw, ext, nil
}
