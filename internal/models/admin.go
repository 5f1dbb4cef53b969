package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin roles. Both gate the editorial write paths.
const (
	RoleAdmin     = "admin"
	RoleBlogAdmin = "blogadmin"
)

type Admin struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewAdmin creates an admin with generated UUID and timestamps
func NewAdmin() *Admin {
	now := time.Now()
	return &Admin{
		ID:        uuid.New(),
		Role:      RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
