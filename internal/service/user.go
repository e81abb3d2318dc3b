package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/flashmarket/backend/internal/models"
	"github.com/flashmarket/backend/internal/repo"
	"github.com/flashmarket/backend/internal/transport"
)

type UserService struct {
	Repo *repo.GormRepo
}

// Register creates the user only when the email is not already registered.
func (s *UserService) Register(ctx context.Context, req transport.RegisterUserRequest) (*models.User, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	_, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Email:   req.Email,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

// Update changes the mutable profile fields only; email stays as registered.
func (s *UserService) Update(ctx context.Context, id uint, req transport.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Name = req.Name
	user.Phone = req.Phone
	user.Address = req.Address
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
