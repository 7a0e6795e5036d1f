package models

import (
	"time"

	"gorm.io/gorm"
)

// AdminUser represents a backend administrator. Sessions are stateless signed
// tokens, so nothing session-related is persisted here.
type AdminUser struct {
	ID           int64     `gorm:"primaryKey;column:id" json:"id"`
	Username     string    `gorm:"size:100;not null;unique;index;column:username" json:"username"`
	PasswordHash string    `gorm:"size:255;not null;column:password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (AdminUser) TableName() string {
	return "admin_user"
}

// SeedAdminUser inserts the bootstrap admin account if no admin exists yet.
// The password must already be hashed by the caller.
func SeedAdminUser(db *gorm.DB, username, passwordHash string) error {
	if username == "" || passwordHash == "" {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&AdminUser{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(&AdminUser{Username: username, PasswordHash: passwordHash}).Error
	})
}
