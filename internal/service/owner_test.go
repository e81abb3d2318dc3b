package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flashmarket/backend/internal/transport"
)

func ownerReq() transport.RegisterOwnerRequest {
	return transport.RegisterOwnerRequest{
		Name:     "shopkeeper",
		Email:    "keeper@example.com",
		Password: "plain-secret",
		Phone:    "+1-555",
	}
}

func TestOwnerRegister(t *testing.T) {
	r := newTestRepo(t)
	svc := &OwnerService{Repo: r}

	owner, err := svc.Register(context.Background(), ownerReq())
	require.NoError(t, err)
	require.NotZero(t, owner.ID)
	// stored as received, hashing is not this service's job
	require.Equal(t, "plain-secret", owner.Password)
}

func TestOwnerRegisterRequiresAllFields(t *testing.T) {
	r := newTestRepo(t)
	svc := &OwnerService{Repo: r}

	for _, mutate := range []func(*transport.RegisterOwnerRequest){
		func(q *transport.RegisterOwnerRequest) { q.Name = "" },
		func(q *transport.RegisterOwnerRequest) { q.Email = "" },
		func(q *transport.RegisterOwnerRequest) { q.Password = "" },
		func(q *transport.RegisterOwnerRequest) { q.Phone = "" },
	} {
		req := ownerReq()
		mutate(&req)
		_, err := svc.Register(context.Background(), req)
		require.ErrorIs(t, err, ErrValidation)
	}
}

func TestOwnerRegisterDuplicateEmailAndPhone(t *testing.T) {
	r := newTestRepo(t)
	svc := &OwnerService{Repo: r}

	_, err := svc.Register(context.Background(), ownerReq())
	require.NoError(t, err)

	dupEmail := ownerReq()
	dupEmail.Phone = "+1-666"
	_, err = svc.Register(context.Background(), dupEmail)
	require.ErrorIs(t, err, ErrValidation)

	dupPhone := ownerReq()
	dupPhone.Email = "other@example.com"
	_, err = svc.Register(context.Background(), dupPhone)
	require.ErrorIs(t, err, ErrValidation)
}

func TestOwnerDeleteCascadesToProducts(t *testing.T) {
	r := newTestRepo(t)
	owner := seedOwner(t, r)
	svc := &OwnerService{Repo: r}
	catalog := &CatalogService{Repo: r}

	product, err := catalog.CreateProduct(context.Background(), transport.CreateProductInput{
		Name:     "doomed",
		Price:    1,
		OwnerID:  owner.ID,
		SizesCSV: "S",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), owner.ID))

	_, err = svc.GetByID(context.Background(), owner.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = catalog.GetProduct(context.Background(), product.ID)
	require.ErrorIs(t, err, ErrNotFound)

	nSizes, err := r.CountProductSizes(context.Background(), product.ID)
	require.NoError(t, err)
	require.Zero(t, nSizes)
}

func TestOwnerDeleteNotFound(t *testing.T) {
	r := newTestRepo(t)
	svc := &OwnerService{Repo: r}

	err := svc.Delete(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}
