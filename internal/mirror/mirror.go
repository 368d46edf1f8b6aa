// Package mirror keeps a guest's cart in client-local storage so a
// visitor can collect items before registering or logging in. It is the
// optimistic counterpart of the server cart: no stock validation, and a
// line's price is captured once at add time, never refreshed.
package mirror

import (
	"context"
	"encoding/json"

	"techshop/internal/domain"
)

// StorageKey is the fixed key the serialized cart lives under. The stored
// shape has no version field; changing Line is a breaking change.
const StorageKey = "cart"

// Storage abstracts the client-local key/value store (browser
// localStorage in the web UI). Implementations are single-user;
// cross-tab writes are last-write-wins.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Line is one locally held cart entry.
type Line struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Cart is the client-side cart mirror. Every mutation serializes the
// full line list back to storage.
type Cart struct {
	storage Storage
	lines   []Line
}

// Load reads the mirror from storage. Absent or malformed content yields
// an empty cart, never an error.
func Load(storage Storage) *Cart {
	c := &Cart{storage: storage}
	raw, ok := storage.Get(StorageKey)
	if !ok {
		return c
	}
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return c
	}
	for _, line := range lines {
		if line.ID == "" || line.Quantity < 1 {
			continue
		}
		c.lines = append(c.lines, line)
	}
	return c
}

// Add merges quantity units of a product into the mirror. The price of
// an existing line is kept as-is; only the first add captures it.
func (c *Cart) Add(id, name string, price int64, quantity int) {
	if id == "" || quantity < 1 {
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity += quantity
			c.persist()
			return
		}
	}
	c.lines = append(c.lines, Line{ID: id, Name: name, Price: price, Quantity: quantity})
	c.persist()
}

// UpdateQuantity sets the quantity for a line. Zero or negative removes
// the line; a line with quantity below 1 is never stored.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity < 1 {
		c.Remove(id)
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

// Remove drops the line for a product if present.
func (c *Cart) Remove(id string) {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.persist()
			return
		}
	}
}

// Clear empties the mirror and deletes the stored entry.
func (c *Cart) Clear() {
	c.lines = nil
	c.storage.Delete(StorageKey)
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Count is the total number of units across lines, for the cart badge.
func (c *Cart) Count() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Total is the sum of price times quantity across lines.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

func (c *Cart) persist() {
	raw, err := json.Marshal(c.lines)
	if err != nil {
		return
	}
	c.storage.Set(StorageKey, string(raw))
}

// ServerCart is the server-side cart operation Reconcile replays into.
// *cart.Service satisfies it.
type ServerCart interface {
	Add(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
}

// Reconcile merges the mirror into the authenticated user's server cart:
// each local line is replayed as an add, summing quantities with whatever
// the server cart already holds. Lines that land are dropped from the
// mirror as they go; on the first failure the remaining lines stay so the
// user can re-trigger the merge. The mirror is cleared only when every
// line was accepted.
func (c *Cart) Reconcile(ctx context.Context, userID string, server ServerCart) error {
	for len(c.lines) > 0 {
		line := c.lines[0]
		if _, err := server.Add(ctx, userID, line.ID, line.Quantity); err != nil {
			c.persist()
			return err
		}
		c.lines = c.lines[1:]
	}
	c.Clear()
	return nil
}
