package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxe_back_end/internal/storage"
)

const testUser = "u-1"

func newTestLedger() *Ledger {
	return NewLedger(storage.NewMemoryStore())
}

func TestAddOrIncrementClamp(t *testing.T) {
	tests := []struct {
		name     string
		existing int
		delta    int
		max      int
		want     int
	}{
		{"sous le plafond", 2, 3, 10, 5},
		{"atteint le plafond", 2, 8, 10, 10},
		{"dépasse le plafond", 5, 10, 8, 8},
		{"plafond zéro", 1, 1, 0, 0},
		{"plafond négatif traité comme zéro", 1, 1, -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newTestLedger()
			ctx := context.Background()

			if tt.existing > 0 {
				_, err := ledger.AddOrIncrement(ctx, testUser, "p1", tt.existing, 100)
				require.NoError(t, err)
			}

			items, err := ledger.AddOrIncrement(ctx, testUser, "p1", tt.delta, tt.max)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, tt.want, items[0].Quantity)
			assert.GreaterOrEqual(t, items[0].Quantity, 0)
		})
	}
}

func TestAddOrIncrementCreatesNewLine(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	items, err := ledger.AddOrIncrement(ctx, testUser, "p1", 3, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = ledger.AddOrIncrement(ctx, testUser, "p2", 50, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, "p2", items[1].ProductID)
	assert.Equal(t, 10, items[1].Quantity) // clampé à la création aussi
}

func TestAddOrIncrementRejectsNonPositive(t *testing.T) {
	ledger := newTestLedger()

	_, err := ledger.AddOrIncrement(context.Background(), testUser, "p1", 0, 10)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestSetQuantity(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	_, err := ledger.AddOrIncrement(ctx, testUser, "p1", 2, 10)
	require.NoError(t, err)

	items, err := ledger.SetQuantity(ctx, testUser, "p1", 7, 10)
	require.NoError(t, err)
	assert.Equal(t, 7, items[0].Quantity)

	// Même règle de plafonnement que AddOrIncrement.
	items, err = ledger.SetQuantity(ctx, testUser, "p1", 50, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, items[0].Quantity)

	_, err = ledger.SetQuantity(ctx, testUser, "p1", 0, 10)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// La quantité n'a pas bougé après le refus.
	items, err = ledger.Items(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 10, items[0].Quantity)
}

func TestSetQuantityRequiresExistingLine(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	_, err := ledger.AddOrIncrement(ctx, testUser, "p1", 2, 10)
	require.NoError(t, err)

	// Pas de création implicite : produit jamais ajouté → refus sans mutation.
	_, err = ledger.SetQuantity(ctx, testUser, "absent", 3, 10)
	assert.ErrorIs(t, err, ErrLineNotFound)

	items, err := ledger.Items(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestTotal(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	prices := map[string]float64{"p1": 100, "p2": 50}
	lookup := func(id string) (float64, bool) {
		price, ok := prices[id]
		return price, ok
	}

	_, err := ledger.AddOrIncrement(ctx, testUser, "p1", 2, 100)
	require.NoError(t, err)
	_, err = ledger.AddOrIncrement(ctx, testUser, "p2", 3, 100)
	require.NoError(t, err)

	total, err := ledger.Total(ctx, testUser, lookup)
	require.NoError(t, err)
	assert.Equal(t, 350.0, total)

	_, err = ledger.Remove(ctx, testUser, "p2")
	require.NoError(t, err)

	total, err = ledger.Total(ctx, testUser, lookup)
	require.NoError(t, err)
	assert.Equal(t, 200.0, total)
}

func TestTotalIgnoresUnknownProducts(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	_, err := ledger.AddOrIncrement(ctx, testUser, "fantome", 4, 100)
	require.NoError(t, err)

	total, err := ledger.Total(ctx, testUser, func(string) (float64, bool) { return 0, false })
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestRemoveIsNoOpWhenAbsent(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	_, err := ledger.AddOrIncrement(ctx, testUser, "p1", 1, 10)
	require.NoError(t, err)

	items, err := ledger.Remove(ctx, testUser, "inconnu")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestClear(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	_, err := ledger.AddOrIncrement(ctx, testUser, "p1", 1, 10)
	require.NoError(t, err)

	require.NoError(t, ledger.Clear(ctx, testUser))

	items, err := ledger.Items(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCorruptedBlobReadsAsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	ledger := NewLedger(store)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart:"+testUser, "{pas du json"))

	items, err := ledger.Items(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, items)
}
