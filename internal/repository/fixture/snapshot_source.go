// Package fixture provides the built-in register data used when no database is configured.
package fixture

import (
	"context"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
)

// SnapshotSource implements domain.SnapshotSource with the fixed daily figures.
// It never fails.
type SnapshotSource struct{}

// NewSnapshotSource creates a new fixture SnapshotSource
func NewSnapshotSource() *SnapshotSource {
	return &SnapshotSource{}
}

var _ domain.SnapshotSource = (*SnapshotSource)(nil)

// LoadSnapshot returns a fresh copy of the daily snapshot
func (s *SnapshotSource) LoadSnapshot(ctx context.Context) (*domain.MetricsSnapshot, error) {
	return domain.DefaultSnapshot(), nil
}

// LoadInvoices returns a fresh copy of today's invoices
func (s *SnapshotSource) LoadInvoices(ctx context.Context) ([]domain.InvoiceRecord, error) {
	return domain.DefaultInvoices(), nil
}

// LoadHourlySales returns the fixed hourly sales series
func (s *SnapshotSource) LoadHourlySales(ctx context.Context) ([]domain.HourlySales, error) {
	return domain.DefaultHourlySales(), nil
}
