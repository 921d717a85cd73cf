package model

import "time"

// Roles a user account can hold.
const (
	RoleAdmin    = "admin"
	RoleConsumer = "consumer"
	RoleRetailer = "retailer"
)

// User is the credential record every consumer, retailer and admin profile hangs off.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the caller holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Owns reports whether the caller is the user identified by authID or an admin.
func (p *Principal) Owns(authID string) bool {
	return p != nil && (p.Role == RoleAdmin || p.ID == authID)
}
