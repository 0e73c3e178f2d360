package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
)

// MockSnapshotSource is a mock implementation of domain.SnapshotSource.
// It serves the fixed daily figures unless overridden.
type MockSnapshotSource struct {
	Snapshot *domain.MetricsSnapshot
	Invoices []domain.InvoiceRecord
	Sales    []domain.HourlySales

	SnapshotErr error
	InvoicesErr error
	SalesErr    error

	SnapshotCalls int
	mu            sync.Mutex
}

// NewMockSnapshotSource creates a new MockSnapshotSource
func NewMockSnapshotSource() *MockSnapshotSource {
	return &MockSnapshotSource{
		Snapshot: domain.DefaultSnapshot(),
		Invoices: domain.DefaultInvoices(),
		Sales:    domain.DefaultHourlySales(),
	}
}

// LoadSnapshot returns a copy of the configured snapshot
func (m *MockSnapshotSource) LoadSnapshot(ctx context.Context) (*domain.MetricsSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotCalls++
	if m.SnapshotErr != nil {
		return nil, m.SnapshotErr
	}
	s := *m.Snapshot
	return &s, nil
}

// LoadInvoices returns a copy of the configured invoices
func (m *MockSnapshotSource) LoadInvoices(ctx context.Context) ([]domain.InvoiceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InvoicesErr != nil {
		return nil, m.InvoicesErr
	}
	return append([]domain.InvoiceRecord(nil), m.Invoices...), nil
}

// LoadHourlySales returns a copy of the configured sales series
func (m *MockSnapshotSource) LoadHourlySales(ctx context.Context) ([]domain.HourlySales, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SalesErr != nil {
		return nil, m.SalesErr
	}
	return append([]domain.HourlySales(nil), m.Sales...), nil
}

// SentMessage is a message captured by MockNotifier
type SentMessage struct {
	Subject string
	Message domain.Message
}

// MockNotifier is a mock implementation of domain.Notifier that captures messages
type MockNotifier struct {
	messages []SentMessage
	mu       sync.Mutex
}

// NewMockNotifier creates a new MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Notify records the message
func (m *MockNotifier) Notify(subject string, msg domain.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, SentMessage{Subject: subject, Message: msg})
}

// Messages returns a copy of the captured messages
func (m *MockNotifier) Messages() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMessage(nil), m.messages...)
}

// MockAvatarStorage is an in-memory implementation of storage.AvatarRepository
type MockAvatarStorage struct {
	Objects   map[string][]byte
	UploadErr error
	mu        sync.Mutex
}

// NewMockAvatarStorage creates a new MockAvatarStorage
func NewMockAvatarStorage() *MockAvatarStorage {
	return &MockAvatarStorage{Objects: make(map[string][]byte)}
}

// Upload stores the object and returns its path
func (m *MockAvatarStorage) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[objectPath] = buf.Bytes()
	return objectPath, nil
}

// Delete removes the object
func (m *MockAvatarStorage) Delete(ctx context.Context, objectPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a fake signed URL for the object
func (m *MockAvatarStorage) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Objects[objectPath]; !ok {
		return "", domain.ErrNotFound
	}
	return fmt.Sprintf("https://storage.test/%s?expires=%d", objectPath, int(expiry.Seconds())), nil
}

// Count returns the number of stored objects
func (m *MockAvatarStorage) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}
