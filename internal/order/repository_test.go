package order

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hacchu-app/hacchu/internal/platform/kv"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	store, err := kv.NewFileStore(filepath.Join(t.TempDir(), "orders.json"))
	require.NoError(t, err)
	return NewRepository(store, slog.Default())
}

func sampleOrder(id, date, supplier string) Order {
	return Order{
		ID:           id,
		OrderDate:    date,
		SupplierName: supplier,
		Items: []LineItem{
			{Name: "A", Quantity: 2, UnitPrice: 500},
			{Name: "B", Quantity: 1, UnitPrice: 300},
		},
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	saved, err := repo.Upsert(ctx, sampleOrder("", "2025-09-01", "田中建装"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(saved.ID, "PO-"))
	require.Equal(t, 1300.0, saved.Subtotal)
	require.Equal(t, 130.0, saved.Tax)
	require.Equal(t, 1430.0, saved.Total)

	orders, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	got := orders[0]
	require.Equal(t, saved.ID, got.ID)
	require.Equal(t, []string{"A", "B"}, []string{got.Items[0].Name, got.Items[1].Name})

	// reloaded aggregates equal a fresh recomputation from the items
	require.Equal(t, Subtotal(got.Items), got.Subtotal)
	require.Equal(t, Tax(got.Subtotal), got.Tax)
	require.Equal(t, got.Subtotal+got.Tax, got.Total)
}

func TestRepositoryLoadEmptyAndCorrupt(t *testing.T) {
	ctx := context.Background()
	store, err := kv.NewFileStore(filepath.Join(t.TempDir(), "orders.json"))
	require.NoError(t, err)
	repo := NewRepository(store, slog.Default())

	orders, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)

	// corrupt payload degrades to an empty collection, never an error
	require.NoError(t, store.Save(ctx, []byte("{not json")))
	orders, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestRepositoryUpsertReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first, err := repo.Upsert(ctx, sampleOrder("", "2025-09-01", "田中建装"))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, sampleOrder("", "2025-09-02", "鈴木工務店"))
	require.NoError(t, err)

	edited := sampleOrder(first.ID, "2025-09-03", "田中建装(改)")
	edited.Items = append(edited.Items, LineItem{Name: "C", Quantity: 1, UnitPrice: 200})
	updated, err := repo.Upsert(ctx, edited)
	require.NoError(t, err)
	require.Equal(t, first.CreatedAt, updated.CreatedAt)

	orders, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, first.ID, orders[0].ID, "edit keeps the insertion position")
	require.Equal(t, "田中建装(改)", orders[0].SupplierName)
	require.Equal(t, 1650.0, orders[0].Total)
}

func TestRepositoryDeleteMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.Upsert(ctx, sampleOrder("", "2025-09-01", "田中建装"))
	require.NoError(t, err)

	err = repo.DeleteByID(ctx, "PO-00000000-000")
	require.ErrorIs(t, err, ErrNotFound)

	orders, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestRepositoryDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	a, err := repo.Upsert(ctx, sampleOrder("", "2025-09-01", "A社"))
	require.NoError(t, err)
	b, err := repo.Upsert(ctx, sampleOrder("", "2025-09-02", "B社"))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByID(ctx, a.ID))
	orders, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, b.ID, orders[0].ID)

	require.NoError(t, repo.Clear(ctx))
	orders, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestRepositoryConcurrentUpsertsLoseNothing(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	const n = 30
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Upsert(ctx, sampleOrder(fmt.Sprintf("PO-20250901-%03d", i), "2025-09-01", "A社"))
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	orders, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, orders, n, "every concurrent save must survive")
}

func TestGenerateIDUniqueAgainstCollection(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		o, err := repo.Upsert(ctx, sampleOrder("", "2025-09-01", "A社"))
		require.NoError(t, err)
		require.False(t, seen[o.ID], "id %s issued twice", o.ID)
		seen[o.ID] = true
	}

	id, err := repo.GenerateID(ctx)
	require.NoError(t, err)
	require.False(t, seen[id])
}
