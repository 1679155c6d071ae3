package auth

import (
	"context"
	"errors"

	"storefront/internal/user"
)

var (
	// ErrInvalidCredentials is returned for a missing user and for a wrong
	// password alike, so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrUserNotFound       = errors.New("auth: user not found")
)

// Service ties the credential store to the token issuer.
type Service struct {
	users  user.Repository
	issuer *Issuer
}

func NewService(users user.Repository, issuer *Issuer) *Service {
	return &Service{users: users, issuer: issuer}
}

// Signup creates a new account and issues a session token for it.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*user.User, string, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	u := &user.User{Name: name, Email: email, PasswordHash: hash, Role: user.RoleUser}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}
	token, err := s.issuer.Issue(Identity{UserID: u.ID.Hex(), Role: u.Role, Email: u.Email})
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies the password and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(Identity{UserID: u.ID.Hex(), Role: u.Role, Email: u.Email})
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Me resolves a verified identity back to the stored user record. The id
// encoded in a still-valid token may no longer exist.
func (s *Service) Me(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
