package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveYDelete(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root, "http://localhost:8080/files/", 0)
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Save(ctx, "avatars", "user-1/a.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/avatars/user-1/a.png", url)

	b, err := os.ReadFile(filepath.Join(root, "avatars", "user-1", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(b))

	require.NoError(t, s.Delete(ctx, "avatars", "user-1/a.png"))
	require.NoError(t, s.Delete(ctx, "avatars", "user-1/a.png"))
	_, err = os.Stat(filepath.Join(root, "avatars", "user-1", "a.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_LimiteDeTamano(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root, "http://x", 4)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "product-photos", "p/big.jpg", strings.NewReader("12345"))
	assert.ErrorIs(t, err, ErrTooLarge)
	_, statErr := os.Stat(filepath.Join(root, "product-photos", "p", "big.jpg"))
	assert.True(t, os.IsNotExist(statErr))

	_, err = s.Save(context.Background(), "product-photos", "p/ok.jpg", strings.NewReader("1234"))
	assert.NoError(t, err)
}

func TestLocalStorage_RechazaRutasFuera(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://x", 0)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "avatars", "../../etc/passwd", strings.NewReader("x"))
	assert.Error(t, err)
}
