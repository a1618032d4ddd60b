// Package storage provides object storage implementations for payment receipts.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	maintenanceapp "github.com/societyhub/backend/internal/application/maintenance"
)

// MemoryReceiptStorage keeps receipts in memory. Use this for development
// and tests until a real S3-compatible backend is configured.
type MemoryReceiptStorage struct {
	// BaseURL is the base URL for generated download URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryReceiptStorage creates a new MemoryReceiptStorage
func NewMemoryReceiptStorage() *MemoryReceiptStorage {
	return &MemoryReceiptStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure MemoryReceiptStorage implements ReceiptStorage
var _ maintenanceapp.ReceiptStorage = (*MemoryReceiptStorage)(nil)

// Upload stores receipt data under the given key
func (s *MemoryReceiptStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[storageKey] = buf
	return nil
}

// GenerateDownloadURL generates a stub download URL for a stored receipt
func (s *MemoryReceiptStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// DeleteObject removes a receipt
func (s *MemoryReceiptStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// ObjectExists reports whether a receipt is stored under the key
func (s *MemoryReceiptStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}
