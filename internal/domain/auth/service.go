package auth

import "context"

// AuthService is the login glue in front of the external user directory.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
