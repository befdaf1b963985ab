package models

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleKasir UserRole = "kasir"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Username     string   `gorm:"size:50;uniqueIndex;not null"`
	Name         string   `gorm:"size:100;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
