package user

import "context"

// UserRepository reads the externally managed user directory.
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email, used by the login glue
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListActive retrieves every active user in the directory
	ListActive(ctx context.Context) ([]User, error)
}
