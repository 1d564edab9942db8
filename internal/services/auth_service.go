package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"shopdesk/internal/domain"
	"shopdesk/internal/repos"
)

var (
	ErrBadCreds  = errors.New("invalid email or password")
	ErrNoSession = errors.New("no staff session")
)

// AuthService logs staff in and out of a till session (the sid cookie).
type AuthService struct {
	Users *repos.UserRepo
}

// Login checks the credentials and binds sid to the user. Unknown emails and
// wrong passwords both give ErrBadCreds.
func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, ErrBadCreds
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

// CurrentUser returns the staff user bound to sid, or ErrNoSession.
func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	if sid == "" {
		return nil, ErrNoSession
	}
	u, err := s.Users.SessionUser(sid)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, ErrNoSession
	}
	return u, err
}
