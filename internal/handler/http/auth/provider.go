package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any username or password mismatch.
var ErrInvalidCredentials = errors.New("unauthorized: invalid credentials")

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username" validate:"required" example:"admin"`
	Password string `json:"password" validate:"required" example:"change-me"`
}

// AdminProvider checks credentials against one configured admin account.
type AdminProvider struct {
	username     string
	passwordHash []byte
}

// NewAdminProvider takes a bcrypt hash of the admin password.
func NewAdminProvider(username, passwordHash string) *AdminProvider {
	return &AdminProvider{username: username, passwordHash: []byte(passwordHash)}
}

// Authenticate returns the role of the matching account.
func (p *AdminProvider) Authenticate(_ context.Context, creds Credentials) (string, error) {
	if creds.Username == "" || creds.Password == "" {
		return "", ErrInvalidCredentials
	}
	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(p.username)) == 1
	// always run bcrypt so a wrong username costs the same as a wrong password
	passErr := bcrypt.CompareHashAndPassword(p.passwordHash, []byte(creds.Password))
	if !userMatch || passErr != nil {
		return "", ErrInvalidCredentials
	}
	return RoleAdmin, nil
}
