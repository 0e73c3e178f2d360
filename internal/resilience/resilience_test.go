package resilience

import (
	"context"
	"errors"
	"testing"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/dafibh/fortuna/caja-backend/internal/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerSource_PassesThrough(t *testing.T) {
	src := testutil.NewMockSnapshotSource()
	b := NewBreakerSource("test", src, nil)

	snap, err := b.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2850.75", snap.DailyRevenue.StringFixed(2))

	invoices, err := b.LoadInvoices(context.Background())
	require.NoError(t, err)
	assert.Len(t, invoices, 8)
}

func TestBreakerSource_OpensAfterRepeatedFailures(t *testing.T) {
	src := testutil.NewMockSnapshotSource()
	src.SnapshotErr = errors.New("connection refused")
	b := NewBreakerSource("test", src, nil)

	for i := 0; i < 5; i++ {
		_, err := b.LoadSnapshot(context.Background())
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	calls := src.SnapshotCalls
	_, err := b.LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, domain.ErrSnapshotUnavailable)
	assert.Equal(t, calls, src.SnapshotCalls, "open breaker should not reach the source")
}

func TestBreakerSource_MissingRowDoesNotTrip(t *testing.T) {
	src := testutil.NewMockSnapshotSource()
	src.SnapshotErr = domain.ErrSnapshotUnavailable
	b := NewBreakerSource("test", src, nil)

	for i := 0; i < 10; i++ {
		_, err := b.LoadSnapshot(context.Background())
		assert.ErrorIs(t, err, domain.ErrSnapshotUnavailable)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
}
