package transport

import (
	"github.com/flashmarket/backend/internal/imaging"
	"github.com/flashmarket/backend/internal/models"
)

// EntityRef carries a nested reference like {"product": {"id": 3}}.
type EntityRef struct {
	ID uint `json:"id"`
}

type ShippingDetails struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"`
	CardLastFour  string `json:"cardLastFour"`
}

// OrderRequest is the wire shape for add-to-cart and place-order.
type OrderRequest struct {
	Product         *EntityRef       `json:"product"`
	User            *EntityRef       `json:"user"`
	Quantity        int              `json:"quantity"`
	Status          string           `json:"status"`
	ShippingDetails *ShippingDetails `json:"shippingDetails"`
}

// UpdateOrderRequest updates either the quantity (cart path) or the status
// (order workflow path) of an existing order.
type UpdateOrderRequest struct {
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

// CreateProductInput is assembled by the handler from the multipart form.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Available   bool
	OwnerID     uint
	SizesCSV    string
	ColorsCSV   string
	ImageURLs   []string
	ImageUpload []byte
}

type RegisterUserRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phoneNumber"`
	Address string `json:"address"`
}

type UpdateUserRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phoneNumber"`
	Address string `json:"address"`
}

type RegisterOwnerRequest struct {
	Name     string `json:"productOwnerName"`
	Email    string `json:"productOwnerEmail"`
	Password string `json:"productOwnerPassword"`
	Phone    string `json:"productOwnerNumber"`
}

// ProductResponse is the client-facing projection of a product, with the
// image reference already rendered displayable.
type ProductResponse struct {
	ID                 uint                 `json:"id"`
	Name               string               `json:"name"`
	Description        string               `json:"description"`
	Price              float64              `json:"price"`
	Stock              int                  `json:"stock"`
	Category           string               `json:"category"`
	Available          bool                 `json:"available"`
	Approved           bool                 `json:"approved"`
	ProductSizes       []string             `json:"productSizes"`
	ProductColors      []string             `json:"productColors"`
	ProductImageBase64 string               `json:"productImageBase64"`
	ProductOwner       *models.ProductOwner `json:"productOwner,omitempty"`
}

func ToProductResponse(p *models.Product) ProductResponse {
	sizes := make([]string, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, s.Label)
	}
	colors := make([]string, 0, len(p.Colors))
	for _, c := range p.Colors {
		colors = append(colors, c.Label)
	}

	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price,
		Stock:              p.Stock,
		Category:           p.Category,
		Available:          p.Available,
		Approved:           p.Approved,
		ProductSizes:       sizes,
		ProductColors:      colors,
		ProductImageBase64: imaging.ParseStored(p.Image).Display(),
		ProductOwner:       p.ProductOwner,
	}
}

func ToProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}
