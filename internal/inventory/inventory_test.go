package inventory_test

import (
	"testing"
	"time"

	"github.com/lethalgem/arcteryx-outlet-tracker/internal/inventory"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	t1 = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
)

func TestDiff_EndToEndScenario(t *testing.T) {
	t.Parallel()

	stored := &models.InventoryState{
		LastUpdated: t0,
		Products: []models.Product{
			{ID: "a", Price: 100, FirstSeen: t0},
		},
	}
	current := []models.Product{
		{ID: "a", Price: 80, FirstSeen: t1},
		{ID: "b", Price: 50, FirstSeen: t1},
	}

	changes := inventory.Diff(stored, current)

	require.Len(t, changes.NewProducts, 1)
	assert.Equal(t, "b", changes.NewProducts[0].ID)

	require.Len(t, changes.PriceDrops, 1)
	assert.Equal(t, "a", changes.PriceDrops[0].ID)
	assert.InDelta(t, 100.0, changes.PriceDrops[0].PreviousPrice, 0.001)
	assert.InDelta(t, 80.0, changes.PriceDrops[0].Price, 0.001)

	assert.Empty(t, changes.RemovedProducts)
}

func TestDiff_FirstRunReportsEverythingNew(t *testing.T) {
	t.Parallel()

	current := []models.Product{
		{ID: "a", Price: 100},
		{ID: "b", Price: 50},
	}

	changes := inventory.Diff(nil, current)

	assert.Len(t, changes.NewProducts, 2)
	assert.Empty(t, changes.PriceDrops)
	assert.Empty(t, changes.RemovedProducts)
}

func TestDiff_RemovedProducts(t *testing.T) {
	t.Parallel()

	stored := &models.InventoryState{
		Products: []models.Product{
			{ID: "a", Price: 100},
			{ID: "b", Price: 50},
		},
	}
	current := []models.Product{
		{ID: "a", Price: 100},
	}

	changes := inventory.Diff(stored, current)

	assert.Empty(t, changes.NewProducts)
	assert.Empty(t, changes.PriceDrops)
	require.Len(t, changes.RemovedProducts, 1)
	assert.Equal(t, "b", changes.RemovedProducts[0].ID)
}

func TestDiff_PriceIncreaseAndEqualNotReported(t *testing.T) {
	t.Parallel()

	stored := &models.InventoryState{
		Products: []models.Product{
			{ID: "a", Price: 100},
			{ID: "b", Price: 50, OriginalPrice: 80, Discount: 38},
		},
	}
	current := []models.Product{
		{ID: "a", Price: 120},
		// originalPrice/discount changed, price equal: not a drop.
		{ID: "b", Price: 50, OriginalPrice: 100, Discount: 50},
	}

	changes := inventory.Diff(stored, current)

	assert.Empty(t, changes.NewProducts)
	assert.Empty(t, changes.PriceDrops)
	assert.Empty(t, changes.RemovedProducts)
}

func TestDiff_Idempotence(t *testing.T) {
	t.Parallel()

	stored := &models.InventoryState{
		LastUpdated: t0,
		Products: []models.Product{
			{ID: "a", Price: 100, FirstSeen: t0},
			{ID: "b", Price: 50, FirstSeen: t0},
			{ID: "c", Price: 75, FirstSeen: t0},
		},
	}

	changes := inventory.Diff(stored, stored.Products)

	assert.Empty(t, changes.NewProducts)
	assert.Empty(t, changes.PriceDrops)
	assert.Empty(t, changes.RemovedProducts)
}

func TestDiff_OrderIndependence(t *testing.T) {
	t.Parallel()

	stored := &models.InventoryState{
		Products: []models.Product{
			{ID: "a", Price: 100},
			{ID: "b", Price: 50},
			{ID: "c", Price: 75},
		},
	}
	current := []models.Product{
		{ID: "b", Price: 40},
		{ID: "d", Price: 10},
		{ID: "a", Price: 100},
	}
	permuted := []models.Product{
		{ID: "a", Price: 100},
		{ID: "b", Price: 40},
		{ID: "d", Price: 10},
	}

	first := inventory.Diff(stored, current)
	second := inventory.Diff(stored, permuted)

	assert.ElementsMatch(t, first.NewProducts, second.NewProducts)
	assert.ElementsMatch(t, first.PriceDrops, second.PriceDrops)
	assert.ElementsMatch(t, first.RemovedProducts, second.RemovedProducts)
}

func TestDiff_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	stored := &models.InventoryState{
		Products: []models.Product{{ID: "a", Price: 100, FirstSeen: t0}},
	}
	current := []models.Product{{ID: "a", Price: 80, FirstSeen: t1}}

	_ = inventory.Diff(stored, current)

	assert.InDelta(t, 100.0, stored.Products[0].Price, 0.001)
	assert.Equal(t, t1, current[0].FirstSeen)
}

func TestMerge_PreservesFirstSeen(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	stored := &models.InventoryState{
		LastUpdated: t0,
		Products: []models.Product{
			{ID: "a", Price: 100, FirstSeen: t0},
		},
	}
	current := []models.Product{
		{ID: "a", Price: 80, FirstSeen: t1},
		{ID: "b", Price: 50, FirstSeen: t1},
	}

	next := inventory.Merge(stored, current, now)

	require.Len(t, next.Products, 2)
	assert.Equal(t, "a", next.Products[0].ID)
	assert.InDelta(t, 80.0, next.Products[0].Price, 0.001)
	assert.Equal(t, t0, next.Products[0].FirstSeen, "FirstSeen must carry forward from the stored snapshot")
	assert.Equal(t, "b", next.Products[1].ID)
	assert.Equal(t, t1, next.Products[1].FirstSeen)
	assert.Equal(t, now, next.LastUpdated)
}

func TestMerge_FirstRunKeepsCurrentTimestamps(t *testing.T) {
	t.Parallel()

	now := time.Now()
	current := []models.Product{
		{ID: "a", FirstSeen: t1},
	}

	next := inventory.Merge(nil, current, now)

	require.Len(t, next.Products, 1)
	assert.Equal(t, t1, next.Products[0].FirstSeen)
	assert.Equal(t, now, next.LastUpdated)
}

func TestMerge_UsesCurrentOrderAndDropsStored(t *testing.T) {
	t.Parallel()

	stored := &models.InventoryState{
		Products: []models.Product{
			{ID: "a", FirstSeen: t0},
			{ID: "gone", FirstSeen: t0},
		},
	}
	current := []models.Product{
		{ID: "z", FirstSeen: t1},
		{ID: "a", FirstSeen: t1},
	}

	next := inventory.Merge(stored, current, time.Now())

	require.Len(t, next.Products, 2)
	assert.Equal(t, "z", next.Products[0].ID)
	assert.Equal(t, "a", next.Products[1].ID)
	assert.Equal(t, t0, next.Products[1].FirstSeen)
}

func TestMerge_DuplicateIDsCollapseLastWriteWins(t *testing.T) {
	t.Parallel()

	stored := &models.InventoryState{
		Products: []models.Product{
			{ID: "stratus-hoody", Price: 200, FirstSeen: t0},
		},
	}
	// The same product cross-listed under two categories within one run.
	current := []models.Product{
		{ID: "stratus-hoody", Price: 200, Category: "mens", FirstSeen: t1},
		{ID: "cerium-vest", Price: 150, FirstSeen: t1},
		{ID: "stratus-hoody", Price: 180, Category: "womens", FirstSeen: t1},
	}

	next := inventory.Merge(stored, current, time.Now())

	require.Len(t, next.Products, 2, "duplicate ids must collapse to one snapshot entry")
	assert.Equal(t, "stratus-hoody", next.Products[0].ID)
	assert.Equal(t, "womens", next.Products[0].Category, "last write wins")
	assert.InDelta(t, 180.0, next.Products[0].Price, 0.001)
	assert.Equal(t, t0, next.Products[0].FirstSeen, "FirstSeen still carries forward for the surviving entry")
	assert.Equal(t, "cerium-vest", next.Products[1].ID)
}

func TestHasChanges(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		changes  models.InventoryChanges
		expected bool
	}{
		{name: "empty", changes: models.InventoryChanges{}, expected: false},
		{
			name:     "only removals is not significant",
			changes:  models.InventoryChanges{RemovedProducts: []models.Product{{ID: "a"}}},
			expected: false,
		},
		{
			name:     "single price drop is significant",
			changes:  models.InventoryChanges{PriceDrops: []models.PriceDrop{{Product: models.Product{ID: "a"}}}},
			expected: true,
		},
		{
			name:     "new product is significant",
			changes:  models.InventoryChanges{NewProducts: []models.Product{{ID: "a"}}},
			expected: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, inventory.HasChanges(tc.changes))
		})
	}
}
