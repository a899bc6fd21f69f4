package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest payload for turning the caller's cart into an order.
// swagger:model CheckoutRequest
type CheckoutRequest struct {
	UserID          string `json:"-"`
	CartID          string `json:"cart_id"          example:"5b0c7f0e-3f0b-4d44-9a8e-2f5d2c7d7b11"`
	ShippingAddress string `json:"shipping_address" binding:"required,max=200" example:"Calle 10 # 5-20"`
	City            string `json:"city"             binding:"required,max=100" example:"Medellín"`
	PostalCode      string `json:"postal_code"      binding:"required,max=20"  example:"050021"`
	Country         string `json:"country"          binding:"required,max=100" example:"Colombia"`
	PhoneNumber     string `json:"phone_number"     binding:"required,max=20"  example:"+57 300 000 0000"`
	Notes           string `json:"notes"            binding:"max=500"`
}

// StatusUpdate payload for the admin status endpoint.
// swagger:model StatusUpdate
type StatusUpdate struct {
	Status      Status     `json:"status"       binding:"required" example:"Shipped"`
	ShippedAt   *time.Time `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	Notes       string     `json:"notes"        binding:"max=500"`
}

type ItemDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// DTO is the read view of an order.
// swagger:model OrderDTO
type DTO struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	UserID          string          `json:"user_id"`
	UserName        string          `json:"user_name"`
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
	Items           []ItemDTO       `json:"items"`
}

// ToDTO builds the read view of o. userName may be empty.
func ToDTO(o *Order, lines []Line, userName string) DTO {
	d := DTO{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		UserName:        userName,
		OrderDate:       o.OrderDate,
		Status:          o.Status,
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress,
		City:            o.City,
		PostalCode:      o.PostalCode,
		Country:         o.Country,
		PhoneNumber:     o.PhoneNumber,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		Notes:           o.Notes,
		Items:           make([]ItemDTO, 0, len(lines)),
	}
	for _, l := range lines {
		d.Items = append(d.Items, ItemDTO{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}
	return d
}
