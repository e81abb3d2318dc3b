package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/flashmarket/backend/internal/imaging"
	"github.com/flashmarket/backend/internal/models"
	"github.com/flashmarket/backend/internal/repo"
	"github.com/flashmarket/backend/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

// CreateProduct validates the owning ProductOwner, parses the size/color CSV
// lists, normalizes the image input and persists the new product unapproved.
func (s *CatalogService) CreateProduct(ctx context.Context, in transport.CreateProductInput) (*models.Product, error) {
	if in.OwnerID == 0 {
		return nil, fmt.Errorf("%w: product owner id is required", ErrValidation)
	}
	if _, err := s.Repo.GetOwner(ctx, in.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid product owner id", ErrValidation)
		}
		return nil, err
	}

	// A direct URL wins over uploaded bytes; neither leaves the reference empty.
	img := imaging.FromURLs(in.ImageURLs)
	if img.Kind() == imaging.None {
		img = imaging.FromUpload(in.ImageUpload)
	}

	product := &models.Product{
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		Stock:          in.Stock,
		Category:       in.Category,
		Available:      in.Available,
		Approved:       false,
		Image:          img.Stored(),
		ProductOwnerID: in.OwnerID,
		Sizes:          sizeRows(splitCSV(in.SizesCSV)),
		Colors:         colorRows(splitCSV(in.ColorsCSV)),
	}

	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, product.ID)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) ListApproved(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListApprovedProducts(ctx)
}

func (s *CatalogService) ListByOwner(ctx context.Context, ownerID uint) ([]models.Product, error) {
	return s.Repo.ListProductsByOwner(ctx, ownerID)
}

// Approve marks the product buyer-visible. Approving an already-approved
// product is a no-op.
func (s *CatalogService) Approve(ctx context.Context, id uint) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	product.Approved = true
	return s.Repo.SaveProduct(ctx, product)
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.Repo.DeleteProduct(ctx, id)
}

// splitCSV turns "S,M,L" into ["S","M","L"], preserving order. The empty
// string yields an empty list, never nil.
func splitCSV(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func sizeRows(labels []string) []models.ProductSize {
	rows := make([]models.ProductSize, 0, len(labels))
	for i, label := range labels {
		rows = append(rows, models.ProductSize{Position: i, Label: label})
	}
	return rows
}

func colorRows(labels []string) []models.ProductColor {
	rows := make([]models.ProductColor, 0, len(labels))
	for i, label := range labels {
		rows = append(rows, models.ProductColor{Position: i, Label: label})
	}
	return rows
}
