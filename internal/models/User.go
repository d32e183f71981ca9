package models

import "strings"

type Role string

const (
	RoleUser     Role = "user"
	RoleSeller   Role = "seller"
	RoleReseller Role = "reseller"
	RoleAdmin    Role = "admin"
	RoleDelivery Role = "delivery"
)

func ValidRoles() []Role {
	return []Role{RoleUser, RoleSeller, RoleReseller, RoleAdmin, RoleDelivery}
}

// ParseRole normalizes s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidRoles() {
		if r == valid {
			return r, true
		}
	}
	return "", false
}

type User struct {
	Base
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         Role   `json:"role" gorm:"type:varchar(16);not null;index"` // fixed at registration
}
