package user

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest payload de registro.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"ana"`
	Email    string `json:"email"    binding:"required,email"        example:"ana@example.com"`
	Password string `json:"password" binding:"required,min=8"        example:"s3cretpass"`
}

// LoginRequest payload de login.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email" example:"ana@example.com"`
	Password string `json:"password" binding:"required"       example:"s3cretpass"`
}

// swagger:model LoginResponse
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateRequest payload de actualización; campos vacíos no cambian.
// swagger:model UpdateUserRequest
type UpdateRequest struct {
	Username string `json:"username" binding:"omitempty,min=3,max=50"`
	Email    string `json:"email"    binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
}

// swagger:model RolesRequest
type RolesRequest struct {
	Roles []string `json:"roles" binding:"required,min=1" example:"customer,admin"`
}
