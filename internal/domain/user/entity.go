package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, maintenance commands
	RoleManager  Role = "manager"  // Can publish announcements, correct attendance
	RoleEmployee Role = "employee" // Regular employee
)

// User is the externally provisioned directory entry this service reads.
// The identity component owns the collection; nothing here writes to it
// except the login glue reading the password hash.
type User struct {
	ID           string
	Email        string
	PasswordHash *string
	FullName     string
	Role         Role
	Department   string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanPublish checks if user may create or delete announcements
func (u *User) CanPublish() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}
