package accounts

import "time"

// Role is the position of an account in the admin→developer→bidder
// hierarchy.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
	RoleBidder    Role = "bidder"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDeveloper, RoleBidder:
		return true
	}
	return false
}

// Account represents a provisioned user.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	SupervisorID string    `json:"supervisorId,omitempty"` // set only for bidders; a developer's account id
	LLMToken     string    `json:"-"`
	LLMPrompt    string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Actor is the already-authenticated identity attached to a request.
type Actor struct {
	ID   string
	Role Role
}
