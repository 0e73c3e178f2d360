package fixture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotSource_ReturnsIndependentCopies(t *testing.T) {
	src := NewSnapshotSource()
	ctx := context.Background()

	first, err := src.LoadInvoices(ctx)
	require.NoError(t, err)
	first[0].Client = "changed"

	second, err := src.LoadInvoices(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CONSUMIDOR FINAL", second[0].Client)
	assert.Len(t, second, 8)

	snap, err := src.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.00", snap.BalanceDifference().StringFixed(2))

	sales, err := src.LoadHourlySales(ctx)
	require.NoError(t, err)
	assert.Len(t, sales, 10)
}
