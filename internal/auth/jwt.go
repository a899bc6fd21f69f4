// Package auth issues and validates the identity tokens the services trust.
package auth

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MikeMC777/valora-ecom/internal/apperr"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

var ErrInvalidToken = fmt.Errorf("%w: invalid token", apperr.ErrUnauthorized)

// Identity is what a verified token says about the caller.
type Identity struct {
	UserID string
	Roles  []string
}

func (i Identity) HasRole(role string) bool { return slices.Contains(i.Roles, role) }

func (i Identity) IsAdmin() bool { return i.HasRole(RoleAdmin) }

type claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Issuer signs HS256 tokens carrying the user id as subject.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a token for userID with the given roles.
func (i *Issuer) Issue(userID string, roles []string) (string, error) {
	now := i.now()
	c := claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
}

// Parse validates tokenString and returns the identity it carries.
func (i *Issuer) Parse(tokenString string) (Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	if c.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: c.Subject, Roles: c.Roles}, nil
}
