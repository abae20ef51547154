// Package models holds the domain records shared by repositories, services
// and the HTTP layer. JSON tags define the public wire shape.
package models

import "time"

// Role is the kind of account a user registered as.
type Role string

const (
	RoleFarmer       Role = "farmer"
	RoleProvider     Role = "provider"
	RoleManufacturer Role = "manufacturer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleProvider, RoleManufacturer:
		return true
	}
	return false
}

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Location     string    `json:"location,omitempty"`
	CropType     string    `json:"cropType,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
