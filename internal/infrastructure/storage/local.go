// Package storage guarda archivos subidos (avatars, fotos) en disco y los expone por URL pública.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
)

var _ ports.FileStorage = (*LocalStorage)(nil)

// ErrTooLarge el archivo supera el tamaño máximo configurado.
var ErrTooLarge = errors.New("archivo demasiado grande")

// LocalStorage escribe en {root}/{bucket}/{key}; el servidor HTTP sirve root bajo baseURL.
type LocalStorage struct {
	root    string
	baseURL string
	maxSize int64
}

// NewLocalStorage crea el directorio raíz si no existe. maxSize <= 0 desactiva el límite.
func NewLocalStorage(root, baseURL string, maxSize int64) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", root, err)
	}
	return &LocalStorage{root: root, baseURL: strings.TrimRight(baseURL, "/"), maxSize: maxSize}, nil
}

// Root directorio servido como estático.
func (s *LocalStorage) Root() string { return s.root }

// Save escribe el archivo y devuelve su URL pública. Claves con ".." se rechazan.
func (s *LocalStorage) Save(ctx context.Context, bucket, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.path(bucket, key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && s.maxSize > 0 && n > s.maxSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("storage: escribir %s/%s: %w", bucket, key, err)
	}
	return s.baseURL + "/" + bucket + "/" + key, nil
}

// Delete borra el archivo; no falla si ya no existe.
func (s *LocalStorage) Delete(_ context.Context, bucket, key string) error {
	path, err := s.path(bucket, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: borrar: %w", err)
	}
	return nil
}

func (s *LocalStorage) path(bucket, key string) (string, error) {
	if bucket == "" || key == "" || strings.Contains(bucket, "..") || strings.Contains(key, "..") || filepath.IsAbs(key) {
		return "", fmt.Errorf("storage: clave inválida %q", bucket+"/"+key)
	}
	return filepath.Join(s.root, bucket, filepath.FromSlash(key)), nil
}
