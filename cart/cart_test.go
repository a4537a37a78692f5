package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cwarett/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	data    map[string]models.CartSnapshot
	saveErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]models.CartSnapshot)}
}

func (m *memStore) Save(_ context.Context, sessionID string, snap models.CartSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[sessionID] = snap
	return nil
}

func (m *memStore) Load(_ context.Context, sessionID string) (models.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if snap, ok := m.data[sessionID]; ok {
		return snap, nil
	}
	return emptySnapshot(), nil
}

func netflixLine() models.CartLineItem {
	return models.CartLineItem{
		ID:        "x",
		Name:      "Netflix Premium",
		UnitPrice: 9.99,
	}
}

func TestAddItemMergesSameID(t *testing.T) {
	c := New("s1", newMemStore())

	c.AddItem(netflixLine(), 2)
	c.AddItem(netflixLine(), 1)

	snap := c.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 3, snap.Items[0].Quantity)
	assert.Equal(t, 3, snap.ItemCount)
	assert.InDelta(t, 29.97, snap.Total, 1e-9)
}

func TestAddItemClampsQuantity(t *testing.T) {
	c := New("s1", nil)

	c.AddItem(netflixLine(), 0)
	snap := c.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.Items[0].Quantity)

	c.AddItem(models.CartLineItem{ID: "y", UnitPrice: 5}, -4)
	snap = c.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, 1, snap.Items[1].Quantity)
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	c := New("s1", nil)

	c.AddItem(models.CartLineItem{ID: "a", UnitPrice: 1}, 1)
	c.AddItem(models.CartLineItem{ID: "b", UnitPrice: 2}, 1)
	c.AddItem(models.CartLineItem{ID: "a", UnitPrice: 1}, 1) // merge, not move
	c.AddItem(models.CartLineItem{ID: "c", UnitPrice: 3}, 1)

	snap := c.Snapshot()
	require.Len(t, snap.Items, 3)
	assert.Equal(t, "a", snap.Items[0].ID)
	assert.Equal(t, "b", snap.Items[1].ID)
	assert.Equal(t, "c", snap.Items[2].ID)
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	build := func() *Cart {
		c := New("s1", nil)
		c.AddItem(models.CartLineItem{ID: "a", UnitPrice: 1}, 2)
		c.AddItem(models.CartLineItem{ID: "b", UnitPrice: 2}, 1)
		return c
	}

	updated := build()
	updated.UpdateQuantity("a", 0)

	removed := build()
	removed.RemoveItem("a")

	assert.Equal(t, removed.Snapshot(), updated.Snapshot())
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	c := New("s1", nil)
	c.AddItem(models.CartLineItem{ID: "a", UnitPrice: 4.5}, 1)

	c.UpdateQuantity("a", 7)

	snap := c.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 7, snap.Items[0].Quantity)
	assert.InDelta(t, 31.5, snap.Total, 1e-9)
}

func TestUnknownIDIsNoop(t *testing.T) {
	c := New("s1", nil)
	c.AddItem(models.CartLineItem{ID: "a", UnitPrice: 1}, 1)
	before := c.Snapshot()

	c.UpdateQuantity("missing", 5)
	c.RemoveItem("missing")

	assert.Equal(t, before, c.Snapshot())
}

func TestClearEmptiesCartAndMirror(t *testing.T) {
	store := newMemStore()
	c := New("s1", store)
	c.AddItem(netflixLine(), 2)

	c.Clear()

	snap := c.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Zero(t, snap.ItemCount)
	assert.Zero(t, snap.Total)

	persisted, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, persisted.Items)
}

func TestTotalAccumulatesFullPrecision(t *testing.T) {
	c := New("s1", nil)
	lines := []models.CartLineItem{
		{ID: "a", UnitPrice: 0.1},
		{ID: "b", UnitPrice: 19.99},
		{ID: "c", UnitPrice: 3.333},
	}
	quantities := []int{3, 2, 7}

	var want float64
	for i, l := range lines {
		c.AddItem(l, quantities[i])
		want += l.UnitPrice * float64(quantities[i])
	}

	// exact: same accumulation order, no intermediate rounding
	assert.Equal(t, want, c.Snapshot().Total)
}

func TestSubscribersSeeEveryMutation(t *testing.T) {
	c := New("s1", nil)
	var seen []models.CartSnapshot
	c.Subscribe(func(snap models.CartSnapshot) {
		seen = append(seen, snap)
	})

	c.AddItem(netflixLine(), 1)
	c.UpdateQuantity("x", 4)
	c.RemoveItem("x")

	require.Len(t, seen, 3)
	assert.Equal(t, 1, seen[0].ItemCount)
	assert.Equal(t, 4, seen[1].ItemCount)
	assert.Zero(t, seen[2].ItemCount)
}

func TestStoreFailureKeepsInMemoryState(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("quota exceeded")
	c := New("s1", store)

	c.AddItem(netflixLine(), 2)

	snap := c.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.Equal(t, 1, store.saves)
}

func TestManagerRestoresFromStore(t *testing.T) {
	store := newMemStore()
	first := NewManager(store)
	first.Get("sess").AddItem(netflixLine(), 2)

	// a fresh manager simulates a process restart
	second := NewManager(store)
	snap := second.Get("sess").Snapshot()

	require.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.InDelta(t, 19.98, snap.Total, 1e-9)
}

func TestManagerEvictsIdleCarts(t *testing.T) {
	store := newMemStore()
	m := newManager(store, 20*time.Millisecond)
	m.Get("sess").AddItem(netflixLine(), 2)

	assert.Eventually(t, func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		_, live := m.carts["sess"]
		return !live
	}, time.Second, 5*time.Millisecond)

	// eviction drops memory only; the mirror restores the cart
	snap := m.Get("sess").Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Items[0].Quantity)
}

func TestManagerReturnsSameCartPerSession(t *testing.T) {
	m := NewManager(newMemStore())
	a := m.Get("sess")
	b := m.Get("sess")
	assert.Same(t, a, b)

	m.Drop("sess")
	assert.NotSame(t, a, m.Get("sess"))
}
