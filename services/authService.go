package services

import (
	"ShifaCare/models"
	"ShifaCare/repositories"
	"ShifaCare/utils"
	"context"
	"errors"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords so
// the login endpoint leaks nothing about which one failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService struct {
	adminRepo repositories.AdminRepository
}

func NewAuthService(adminRepo repositories.AdminRepository) *AuthService {
	return &AuthService{adminRepo: adminRepo}
}

// Authenticate verifies admin credentials and returns the account on success.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.AdminUser, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if admin == nil || !utils.CheckPassword(admin.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}
