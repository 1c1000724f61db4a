package models

import (
	"time"

	"github.com/angelmondragon/urbanthreads-backend/pkg/enums"
)

// User represents a shopper or staff account.
type User struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string         `gorm:"column:name;not null"`
	TaxID        string         `gorm:"column:tax_id;not null;default:''"`
	Email        string         `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Address      string         `gorm:"column:address;not null;default:''"`
	Role         enums.UserRole `gorm:"column:role;type:varchar(32);not null;default:'customer'"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
