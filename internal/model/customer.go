package model

import "time"

type Customer struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Phone     string    `gorm:"type:varchar(30);not null"`
	Address   *string   `gorm:"type:varchar(255)"`
	Email     *string   `gorm:"type:varchar(150)"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (Customer) TableName() string { return "customers" }
