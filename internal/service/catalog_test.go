package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flashmarket/backend/internal/transport"
)

func TestCreateProductParsesSizeAndColorLists(t *testing.T) {
	r := newTestRepo(t)
	owner := seedOwner(t, r)
	svc := &CatalogService{Repo: r}

	product, err := svc.CreateProduct(context.Background(), transport.CreateProductInput{
		Name:      "shirt",
		Price:     19.99,
		OwnerID:   owner.ID,
		SizesCSV:  "S,M,L",
		ColorsCSV: "red,blue",
	})
	require.NoError(t, err)
	require.False(t, product.Approved)

	var sizes []string
	for _, s := range product.Sizes {
		sizes = append(sizes, s.Label)
	}
	require.Equal(t, []string{"S", "M", "L"}, sizes)

	var colors []string
	for _, c := range product.Colors {
		colors = append(colors, c.Label)
	}
	require.Equal(t, []string{"red", "blue"}, colors)
}

func TestCreateProductEmptyListsStayEmpty(t *testing.T) {
	r := newTestRepo(t)
	owner := seedOwner(t, r)
	svc := &CatalogService{Repo: r}

	product, err := svc.CreateProduct(context.Background(), transport.CreateProductInput{
		Name:    "plain",
		Price:   1,
		OwnerID: owner.ID,
	})
	require.NoError(t, err)
	require.Empty(t, product.Sizes)
	require.Empty(t, product.Colors)
}

func TestCreateProductRejectsInvalidOwner(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	_, err := svc.CreateProduct(context.Background(), transport.CreateProductInput{Name: "x", Price: 1})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(context.Background(), transport.CreateProductInput{Name: "x", Price: 1, OwnerID: 999})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateProductURLWinsOverUpload(t *testing.T) {
	r := newTestRepo(t)
	owner := seedOwner(t, r)
	svc := &CatalogService{Repo: r}

	product, err := svc.CreateProduct(context.Background(), transport.CreateProductInput{
		Name:        "pic",
		Price:       1,
		OwnerID:     owner.ID,
		ImageURLs:   []string{"https://example.com/a.jpg"},
		ImageUpload: []byte("raw bytes"),
	})
	require.NoError(t, err)
	require.Equal(t, "https://example.com/a.jpg", product.Image)
}

func TestCreateProductUploadBecomesBase64(t *testing.T) {
	r := newTestRepo(t)
	owner := seedOwner(t, r)
	svc := &CatalogService{Repo: r}

	content := []byte("raw bytes")
	product, err := svc.CreateProduct(context.Background(), transport.CreateProductInput{
		Name:        "pic",
		Price:       1,
		OwnerID:     owner.ID,
		ImageUpload: content,
	})
	require.NoError(t, err)
	require.Equal(t, base64.StdEncoding.EncodeToString(content), product.Image)
}

func TestApproveIsIdempotent(t *testing.T) {
	r := newTestRepo(t)
	owner := seedOwner(t, r)
	product := seedProduct(t, r, owner.ID)
	svc := &CatalogService{Repo: r}

	require.NoError(t, svc.Approve(context.Background(), product.ID))
	require.NoError(t, svc.Approve(context.Background(), product.ID))

	got, err := svc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.True(t, got.Approved)
}

func TestApproveNotFound(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	err := svc.Approve(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListApprovedFiltersUnapproved(t *testing.T) {
	r := newTestRepo(t)
	owner := seedOwner(t, r)
	approved := seedProduct(t, r, owner.ID)
	seedProduct(t, r, owner.ID)
	svc := &CatalogService{Repo: r}

	require.NoError(t, svc.Approve(context.Background(), approved.ID))

	products, err := svc.ListApproved(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, approved.ID, products[0].ID)
}

func TestDeleteRemovesSizeAndColorRows(t *testing.T) {
	r := newTestRepo(t)
	owner := seedOwner(t, r)
	svc := &CatalogService{Repo: r}

	product, err := svc.CreateProduct(context.Background(), transport.CreateProductInput{
		Name:      "shirt",
		Price:     1,
		OwnerID:   owner.ID,
		SizesCSV:  "S,M",
		ColorsCSV: "red",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), product.ID))

	_, err = svc.GetProduct(context.Background(), product.ID)
	require.ErrorIs(t, err, ErrNotFound)

	nSizes, err := r.CountProductSizes(context.Background(), product.ID)
	require.NoError(t, err)
	require.Zero(t, nSizes)

	nColors, err := r.CountProductColors(context.Background(), product.ID)
	require.NoError(t, err)
	require.Zero(t, nColors)
}

func TestDeleteNotFound(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	err := svc.Delete(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListByOwner(t *testing.T) {
	r := newTestRepo(t)
	owner := seedOwner(t, r)
	svc := &CatalogService{Repo: r}

	seedProduct(t, r, owner.ID)
	seedProduct(t, r, owner.ID)

	products, err := svc.ListByOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)

	none, err := svc.ListByOwner(context.Background(), owner.ID+1)
	require.NoError(t, err)
	require.Empty(t, none)
}
