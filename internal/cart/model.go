package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/valora-ecom/internal/db"
)

type Cart struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	State     db.State  `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Lines     []Line    `json:"lines"`
}

type Line struct {
	ID        string   `json:"id"`
	CartID    string   `json:"cart_id"`
	ProductID string   `json:"product_id"`
	Quantity  int      `json:"quantity"`
	State     db.State `json:"state"`
}

// ItemCount is the sum of quantities over the cart's lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// ItemDTO is one line of the cart view, priced from the live catalog.
type ItemDTO struct {
	CartID       string          `json:"cart_id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	ProductImage string          `json:"product_image,omitempty"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Available    bool            `json:"available"`
}

// DTO is the read view of a cart.
// swagger:model CartDTO
type DTO struct {
	CartID      string          `json:"cart_id"`
	UserID      string          `json:"user_id"`
	Items       []ItemDTO       `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// AddItemRequest payload for adding a product to the caller's cart.
// swagger:model AddItemRequest
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required" example:"7"`
	Quantity  int    `json:"quantity"   binding:"required" example:"2"`
	CartID    string `json:"cart_id"` // optional; falls back to the caller's cart
}
