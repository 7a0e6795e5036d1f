package repositories

import (
	"ShifaCare/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// AdminRepository looks up backend administrator accounts.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}
	return &admin, nil
}
