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

type OwnerService struct {
	Repo *repo.GormRepo
}

// Register creates a product owner. Email and phone number must both be
// unused. The password is stored as received; credential hashing lives at the
// auth boundary, not here.
func (s *OwnerService) Register(ctx context.Context, req transport.RegisterOwnerRequest) (*models.ProductOwner, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" {
		return nil, fmt.Errorf("%w: name, email, password and phone are required", ErrValidation)
	}

	if _, err := s.Repo.GetOwnerByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.Repo.GetOwnerByPhone(ctx, req.Phone); err == nil {
		return nil, fmt.Errorf("%w: phone number already registered", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	owner := &models.ProductOwner{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}
	if err := s.Repo.CreateOwner(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

func (s *OwnerService) GetByID(ctx context.Context, id uint) (*models.ProductOwner, error) {
	owner, err := s.Repo.GetOwner(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product owner %d", ErrNotFound, id)
		}
		return nil, err
	}
	return owner, nil
}

// Delete removes the owner and all of its products.
func (s *OwnerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.Repo.DeleteOwner(ctx, id)
}
