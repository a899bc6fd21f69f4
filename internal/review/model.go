package review

import (
	"time"

	"github.com/MikeMC777/valora-ecom/internal/db"
)

type Review struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	UserID           string    `json:"user_id"`
	Rating           int       `json:"rating"`
	Title            string    `json:"title"`
	Comment          string    `json:"comment"`
	ReviewDate       time.Time `json:"review_date"`
	VerifiedPurchase bool      `json:"verified_purchase"`
	State            db.State  `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DTO is a review as shown to clients, with product and author names resolved.
// swagger:model ReviewDTO
type DTO struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name"`
	UserID           string    `json:"user_id"`
	UserName         string    `json:"user_name"`
	Rating           int       `json:"rating"`
	Title            string    `json:"title"`
	Comment          string    `json:"comment"`
	ReviewDate       time.Time `json:"review_date"`
	VerifiedPurchase bool      `json:"verified_purchase"`
}

// CreateRequest payload for reviewing a product.
// swagger:model CreateReviewRequest
type CreateRequest struct {
	ProductID string `json:"product_id" binding:"required"         example:"7"`
	Rating    int    `json:"rating"     binding:"required,min=1,max=5" example:"5"`
	Title     string `json:"title"      binding:"max=100"`
	Comment   string `json:"comment"    binding:"max=1000"`
}

// UpdateRequest payload for editing one's own review.
// swagger:model UpdateReviewRequest
type UpdateRequest struct {
	Rating  int    `json:"rating"  binding:"required,min=1,max=5" example:"4"`
	Title   string `json:"title"   binding:"max=100"`
	Comment string `json:"comment" binding:"max=1000"`
}

// Summary aggregates the active reviews of a product.
// swagger:model ReviewSummary
type Summary struct {
	ProductID string  `json:"product_id"`
	Average   float64 `json:"average"`
	Count     int     `json:"count"`
}
