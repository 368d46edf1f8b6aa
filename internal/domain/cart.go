package domain

import "time"

// Cart is the server-authoritative cart aggregate, one per user.
// Total is recomputed from the lines after every mutation, never patched.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Lines     []CartLine `json:"items"`
	Total     int64      `json:"total"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartLine is one product entry in a cart. Price is a snapshot of the
// product price as of the last add/update touching this line; it is not
// re-derived from the catalog on read.
type CartLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// LineFor returns the line for productID, or nil if the cart has none.
func (c *Cart) LineFor(productID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}
