package models

import "time"

// UserRole defines the fixed set of roles in the household
type UserRole string

const (
	// RoleFulfiller is the household member who cooks and drives orders
	// through the preparation pipeline.
	RoleFulfiller UserRole = "fulfiller"
	// RoleOrderer is the household member who primarily places orders.
	RoleOrderer UserRole = "orderer"
	// RoleVisitor is an anonymous guest; ordering requires whitelisting.
	RoleVisitor UserRole = "visitor"
)

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Role          UserRole  `json:"role" gorm:"not null;default:'visitor'"`
	Fingerprint   *string   `json:"fingerprint" gorm:"uniqueIndex"`
	DeviceName    string    `json:"device_name"`
	IsWhitelisted bool      `json:"is_whitelisted" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"created_at"`
}
