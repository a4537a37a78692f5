package cart

import (
	"log"
	"sync"

	"cwarett/globals"
	"cwarett/models"
)

// Subscriber receives a fresh snapshot after every cart mutation.
type Subscriber func(models.CartSnapshot)

// Cart is the single authoritative in-memory cart for one storefront
// session. The mutex serializes all mutations; every mutation recomputes
// the snapshot, pushes it to subscribers, and mirrors it through the store.
// A store failure degrades durability only, never the in-memory state.
type Cart struct {
	mu        sync.Mutex
	sessionID string
	items     []models.CartLineItem
	store     Store
	subs      []Subscriber
}

func New(sessionID string, store Store) *Cart {
	return &Cart{sessionID: sessionID, store: store}
}

// Subscribe registers a callback invoked with the snapshot after each
// mutation. Callbacks run while the mutation holds the cart lock and must
// not call back into the cart.
func (c *Cart) Subscribe(fn Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// AddItem merges into an existing line with the same id, or appends a new
// line at the end. Quantities below 1 are clamped to 1.
func (c *Cart) AddItem(item models.CartLineItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += quantity
			c.commitLocked()
			return
		}
	}

	item.Quantity = quantity
	c.items = append(c.items, item)
	c.commitLocked()
}

// UpdateQuantity sets the quantity on the matching line. A quantity of zero
// or less removes the line; an unknown id is a silent no-op.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		if quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = quantity
		}
		c.commitLocked()
		return
	}
}

// RemoveItem deletes the matching line; an unknown id is a silent no-op.
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.commitLocked()
			return
		}
	}
}

// Clear empties the cart and resets the persisted mirror.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.commitLocked()
}

// Snapshot computes the current view: items in insertion order, count as
// the sum of quantities, total accumulated at full precision. Rounding to
// two decimals happens only at presentation time.
func (c *Cart) Snapshot() models.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cart) snapshotLocked() models.CartSnapshot {
	snap := models.CartSnapshot{Items: make([]models.CartLineItem, len(c.items))}
	copy(snap.Items, c.items)
	for _, it := range c.items {
		snap.ItemCount += it.Quantity
		snap.Total += it.UnitPrice * float64(it.Quantity)
	}
	return snap
}

// commitLocked recomputes the snapshot, notifies subscribers and mirrors
// the result. Callers must hold the lock.
func (c *Cart) commitLocked() {
	snap := c.snapshotLocked()
	for _, fn := range c.subs {
		fn(snap)
	}
	if c.store == nil {
		return
	}
	if err := c.store.Save(globals.Ctx, c.sessionID, snap); err != nil {
		log.Println("cart: snapshot save failed:", err)
	}
}

// restore seeds the cart from a persisted snapshot without re-persisting.
func (c *Cart) restore(snap models.CartSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]models.CartLineItem, len(snap.Items))
	copy(c.items, snap.Items)
}
