package model

import "time"

const (
	// RoleAdmin is the standard staff role.
	RoleAdmin = "admin"
	// RoleSuperAdmin unlocks admin-user management.
	RoleSuperAdmin = "super_admin"
)

// Admin is a staff identity mirrored from the backend.
type Admin struct {
	ID        string     `json:"_id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// IsSuperAdmin reports whether the identity may manage other admin users.
func (admin Admin) IsSuperAdmin() bool {
	return admin.Role == RoleSuperAdmin
}

// UserRef is the abbreviated identity the backend embeds in assignment and
// note fields.
type UserRef struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// AdminNote is one staff note attached to a record.
type AdminNote struct {
	ID      string    `json:"_id"`
	Note    string    `json:"note"`
	AddedBy UserRef   `json:"addedBy"`
	AddedAt time.Time `json:"addedAt"`
}
