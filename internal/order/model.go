package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/valora-ecom/internal/db"
)

type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	UserID          string          `json:"user_id"`
	OrderDate       time.Time       `json:"order_date"`
	Status          Status          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress string          `json:"shipping_address"`
	City            string          `json:"city"`
	PostalCode      string          `json:"postal_code"`
	Country         string          `json:"country"`
	PhoneNumber     string          `json:"phone_number"`
	ShippedAt       *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	Notes           string          `json:"notes"`
	State           db.State        `json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Line is the immutable snapshot of one purchased product.
type Line struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

func newLine(id, orderID, productID, name string, quantity int, unitPrice decimal.Decimal) Line {
	return Line{
		ID:          id,
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// CartLine is what checkout reads from the locked cart.
type CartLine struct {
	ID        string
	ProductID string
	Quantity  int
}
