package model

import "time"

const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User is an operator of the POS. Role: "admin" | "cashier"
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null"`
	Name         string `gorm:"type:varchar(100);not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null;default:cashier"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }
