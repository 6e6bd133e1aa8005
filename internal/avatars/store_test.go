package avatars

import (
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04\x00\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")
	textBytes = []byte("definitely not an image")
)

func newStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := New(fs, "/avatars")
	require.NoError(t, err)
	return s, fs
}

func TestStore_SaveFromBase64(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		data     string
		wantName string
		wantErr  error
	}{
		{
			name:     "png",
			data:     base64.StdEncoding.EncodeToString(pngBytes),
			wantName: userID.String() + ".png",
		},
		{
			name:     "gif as data url",
			data:     "data:image/gif;base64," + base64.StdEncoding.EncodeToString(gifBytes),
			wantName: userID.String() + ".gif",
		},
		{
			name:    "empty",
			data:    "",
			wantErr: ErrEmpty,
		},
		{
			name:    "not base64",
			data:    "!!!",
			wantErr: ErrInvalidData,
		},
		{
			name:    "not an image",
			data:    base64.StdEncoding.EncodeToString(textBytes),
			wantErr: ErrUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fs := newStore(t)

			name, err := s.SaveFromBase64(userID, tt.data)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)

			exists, err := afero.Exists(fs, filepath.Join("/avatars", name))
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}

func TestStore_SaveReplacesPreviousType(t *testing.T) {
	s, fs := newStore(t)
	userID := uuid.New()

	_, err := s.SaveFromBase64(userID, base64.StdEncoding.EncodeToString(pngBytes))
	require.NoError(t, err)
	_, err = s.SaveFromBase64(userID, base64.StdEncoding.EncodeToString(gifBytes))
	require.NoError(t, err)

	exists, _ := afero.Exists(fs, filepath.Join("/avatars", userID.String()+".png"))
	assert.False(t, exists)
}

func TestStore_SaveTooLarge(t *testing.T) {
	s, _ := newStore(t)

	big := make([]byte, MaxSize+1)
	copy(big, pngBytes)

	_, err := s.SaveFromBase64(uuid.New(), base64.StdEncoding.EncodeToString(big))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestStore_Open(t *testing.T) {
	s, _ := newStore(t)
	userID := uuid.New()

	name, err := s.SaveFromBase64(userID, base64.StdEncoding.EncodeToString(pngBytes))
	require.NoError(t, err)

	f, contentType, err := s.Open(name)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "image/png", contentType)
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, body)
}

func TestStore_OpenStripsDirectories(t *testing.T) {
	s, fs := newStore(t)
	require.NoError(t, afero.WriteFile(fs, "/secret.png", pngBytes, 0o644))

	_, _, err := s.Open("../secret.png")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = s.Open("")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_Check(t *testing.T) {
	s, fs := newStore(t)

	assert.NoError(t, s.Check(base64.StdEncoding.EncodeToString(pngBytes)))
	assert.ErrorIs(t, s.Check(base64.StdEncoding.EncodeToString(textBytes)), ErrUnsupported)

	files, err := afero.ReadDir(fs, "/avatars")
	require.NoError(t, err)
	assert.Empty(t, files)
}
