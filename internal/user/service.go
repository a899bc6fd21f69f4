// Package user handles accounts: registration, login and role assignment.
package user

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/valora-ecom/internal/apperr"
	"github.com/MikeMC777/valora-ecom/internal/auth"
)

// ErrBadCredentials is returned for an unknown email and a wrong password alike.
var ErrBadCredentials = fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthorized)

var knownRoles = []string{auth.RoleCustomer, auth.RoleAdmin}

type Service struct {
	repo   Repository
	issuer *auth.Issuer
	log    *zap.Logger
}

func NewService(repo Repository, issuer *auth.Issuer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, issuer: issuer, log: log}
}

// Register creates a customer account.
func (s *Service) Register(ctx context.Context, in RegisterRequest) (*User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.Validation("username, email and password are required")
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		Roles:        []string{auth.RoleCustomer},
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, apperr.Persistence(err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

// Login checks the credentials and issues a token carrying the user's roles.
func (s *Service) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, apperr.Validation("email and password are required")
	}
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	if !CheckPassword(u.PasswordHash, in.Password) {
		return nil, ErrBadCredentials
	}
	tok, err := s.issuer.Issue(u.ID, u.Roles)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResponse{Token: tok, User: u}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, apperr.Validation("id is required")
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return u, nil
}

// DisplayName is the name orders and reviews show for a user.
func (s *Service) DisplayName(ctx context.Context, id string) (string, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// Exists reports whether id names an account.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update changes the profile fields that are set and returns the stored user.
func (s *Service) Update(ctx context.Context, id string, in UpdateRequest) (*User, error) {
	u := &User{
		ID:       id,
		Username: strings.TrimSpace(in.Username),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
	}
	updatePassword := in.Password != ""
	if updatePassword {
		h, err := HashPassword(in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = h
	}
	if err := s.repo.Update(ctx, u, updatePassword); err != nil {
		return nil, apperr.Persistence(err)
	}
	return s.Get(ctx, id)
}

// AssignRoles replaces the user's roles. Tokens already issued keep the old set
// until they expire.
func (s *Service) AssignRoles(ctx context.Context, id string, roles []string) (*User, error) {
	if len(roles) == 0 {
		return nil, apperr.Validation("at least one role is required")
	}
	clean := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.ToLower(strings.TrimSpace(r))
		if !slices.Contains(knownRoles, r) {
			return nil, apperr.Validation("unknown role %q", r)
		}
		if !slices.Contains(clean, r) {
			clean = append(clean, r)
		}
	}
	if err := s.repo.SetRoles(ctx, id, clean); err != nil {
		return nil, apperr.Persistence(err)
	}
	s.log.Info("user roles changed", zap.String("user_id", id), zap.Strings("roles", clean))
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperr.Persistence(err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
