package domain

import "time"

// Category values accepted for products.
const (
	CategoryCPU         = "cpu"
	CategoryGPU         = "gpu"
	CategoryRAM         = "ram"
	CategoryStorage     = "storage"
	CategoryMotherboard = "motherboard"
	CategoryPower       = "power"
)

// ValidCategory reports whether c is one of the known product categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryCPU, CategoryGPU, CategoryRAM, CategoryStorage, CategoryMotherboard, CategoryPower:
		return true
	}
	return false
}

// Product is a catalog entry. Price is in the smallest currency unit.
// Stock is advisory: cart operations read it but never decrement it.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
}
