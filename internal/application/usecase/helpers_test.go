package usecase_test

import (
	"context"
	"io"
	"sync"

	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
)

// memStorage FileStorage en memoria.
type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

var _ ports.FileStorage = (*memStorage)(nil)

func newMemStorage() *memStorage { return &memStorage{files: map[string][]byte{}} }

func (s *memStorage) Save(_ context.Context, bucket, key string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[bucket+"/"+key] = b
	return "http://files.test/" + bucket + "/" + key, nil
}

func (s *memStorage) Delete(_ context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, bucket+"/"+key)
	return nil
}
