package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hacchu-app/hacchu/internal/platform/kv"
)

// ErrNotFound indicates an operation referenced an order id that is not in
// the collection. The collection is left untouched when it is returned.
var ErrNotFound = errors.New("order: not found")

const idAttempts = 8

// Repository owns the persisted order collection. The whole collection lives
// in one blob; every mutating operation re-reads the current state
// immediately before writing, and a process-level mutex serializes those
// read-modify-write sequences so concurrent requests never clobber each
// other's saves.
type Repository struct {
	mu     sync.Mutex
	store  kv.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewRepository builds a Repository over the given blob store.
func NewRepository(store kv.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{store: store, logger: logger, now: time.Now}
}

// Load returns the stored orders in insertion order. An absent or corrupt
// payload yields an empty collection; corruption is logged, never surfaced.
func (r *Repository) Load(ctx context.Context) ([]Order, error) {
	return r.load(ctx)
}

// SaveAll overwrites the persisted collection. A failed write (store
// unavailable, quota exceeded) is surfaced to the caller; the previously
// persisted state is untouched.
func (r *Repository) SaveAll(ctx context.Context, orders []Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, orders)
}

func (r *Repository) load(ctx context.Context) ([]Order, error) {
	data, ok, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("order: load collection: %w", err)
	}
	if !ok {
		return []Order{}, nil
	}
	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		r.logger.Warn("order collection corrupt, starting empty", slog.Any("error", err))
		return []Order{}, nil
	}
	return orders, nil
}

func (r *Repository) save(ctx context.Context, orders []Order) error {
	if orders == nil {
		orders = []Order{}
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("order: encode collection: %w", err)
	}
	if err := r.store.Save(ctx, data); err != nil {
		return fmt.Errorf("order: save collection: %w", err)
	}
	return nil
}

// Get returns one order by id.
func (r *Repository) Get(ctx context.Context, id string) (Order, error) {
	orders, err := r.Load(ctx)
	if err != nil {
		return Order{}, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

// Upsert replaces the order with the same id, or appends when the id is new.
// Aggregates are recomputed from the items before the write so stored values
// can never drift. The CreatedAt of an existing order is preserved.
func (r *Repository) Upsert(ctx context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return Order{}, err
	}
	now := r.now()
	if o.ID == "" {
		o.ID = generateID(now, existingIDs(orders))
	}
	o.Recalculate()
	o.UpdatedAt = now

	replaced := false
	for i := range orders {
		if orders[i].ID == o.ID {
			o.CreatedAt = orders[i].CreatedAt
			orders[i] = o
			replaced = true
			break
		}
	}
	if !replaced {
		if o.CreatedAt.IsZero() {
			o.CreatedAt = now
		}
		orders = append(orders, o)
	}
	if err := r.save(ctx, orders); err != nil {
		return Order{}, err
	}
	return o, nil
}

// DeleteByID removes one order. A missing id reports ErrNotFound and leaves
// the collection unchanged.
func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := orders[:0]
	found := false
	for _, o := range orders {
		if o.ID == id {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	if !found {
		return ErrNotFound
	}
	return r.save(ctx, kept)
}

// Clear replaces the collection with an empty one.
func (r *Repository) Clear(ctx context.Context) error {
	return r.SaveAll(ctx, []Order{})
}

// GenerateID produces an identifier unique against the collection at call
// time: PO-YYYYMMDD plus a zero-padded random suffix, falling back to a uuid
// fragment when rapid sequential calls exhaust the date's random space.
func (r *Repository) GenerateID(ctx context.Context) (string, error) {
	orders, err := r.Load(ctx)
	if err != nil {
		return "", err
	}
	return generateID(r.now(), existingIDs(orders)), nil
}

func existingIDs(orders []Order) map[string]bool {
	ids := make(map[string]bool, len(orders))
	for _, o := range orders {
		ids[o.ID] = true
	}
	return ids
}

func generateID(now time.Time, taken map[string]bool) string {
	stamp := now.Format("20060102")
	for i := 0; i < idAttempts; i++ {
		id := fmt.Sprintf("PO-%s-%03d", stamp, rand.IntN(1000))
		if !taken[id] {
			return id
		}
	}
	return fmt.Sprintf("PO-%s-%s", stamp, uuid.NewString()[:8])
}
