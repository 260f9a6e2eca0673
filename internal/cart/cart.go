// Package cart holds the client session's cart as an explicit value that
// callers inject and persist at session boundaries, rather than ambient
// shared state.
package cart

import (
	"encoding/json"

	"github.com/MGservicing/MGservice-2/internal/model"
)

// Storage persists a cart snapshot across session boundaries. Load
// returns nil bytes when nothing has been saved yet.
type Storage interface {
	Load() ([]byte, error)
	Save([]byte) error
}

// Cart is a mutable cart for one client session. Not safe for concurrent
// use; each session owns its cart.
type Cart struct {
	items []model.CartItem
}

func New() *Cart {
	return &Cart{}
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []model.CartItem {
	out := make([]model.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Add puts an item in the cart. Boost items are special: at most one
// boost may be in the cart, a new boost replaces the old one, and boost
// quantity is locked at 1. Other items merge by id, summing quantities.
func (c *Cart) Add(item model.CartItem) {
	if item.Type == model.ItemTypeBoost {
		item.Quantity = 1
		for i, it := range c.items {
			if it.Type == model.ItemTypeBoost {
				c.items[i] = item
				return
			}
		}
		c.items = append(c.items, item)
		return
	}

	for i, it := range c.items {
		if it.ID == item.ID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// Remove drops the line with the given id, if present.
func (c *Cart) Remove(id string) {
	for i, it := range c.items {
		if it.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity. Boosts stay locked at 1; other
// lines never drop below 1 (use Remove to delete a line).
func (c *Cart) UpdateQuantity(id string, quantity int) {
	for i, it := range c.items {
		if it.ID != id {
			continue
		}
		if it.Type == model.ItemTypeBoost {
			c.items[i].Quantity = 1
		} else if quantity < 1 {
			c.items[i].Quantity = 1
		} else {
			c.items[i].Quantity = quantity
		}
		return
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

// TotalItems is the summed quantity across all lines.
func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Save writes the cart snapshot to storage as JSON.
func (c *Cart) Save(s Storage) error {
	b, err := json.Marshal(c.items)
	if err != nil {
		return err
	}
	return s.Save(b)
}

// Load replaces the cart contents from storage. A missing or corrupt
// snapshot yields an empty cart rather than an error; the stored blob is
// client-supplied and must never wedge a session.
func (c *Cart) Load(s Storage) error {
	b, err := s.Load()
	if err != nil {
		return err
	}
	if len(b) == 0 {
		c.items = nil
		return nil
	}
	var items []model.CartItem
	if err := json.Unmarshal(b, &items); err != nil {
		c.items = nil
		return nil
	}
	c.items = items
	return nil
}
