package ports

import (
	"context"

	"github.com/clinicboard/clinicboard/internal/core/domain/auth"
	"github.com/clinicboard/clinicboard/internal/core/domain/doctor"
)

// AuthService authenticates doctors and validates their session tokens.
type AuthService interface {
	// Login verifies the credentials and returns a signed token. Returns
	// ErrInvalidCredentials when the email or password does not match.
	Login(ctx context.Context, email, password string) (string, *doctor.Doctor, error)
	ValidateToken(token string) (*auth.Claims, error)
}
