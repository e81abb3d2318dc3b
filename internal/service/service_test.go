package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/flashmarket/backend/internal/config"
	"github.com/flashmarket/backend/internal/models"
	"github.com/flashmarket/backend/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return repo.New(db)
}

func seedOwner(t *testing.T, r *repo.GormRepo) *models.ProductOwner {
	t.Helper()
	owner := &models.ProductOwner{
		Name:     "test_owner",
		Email:    fmt.Sprintf("%s@example.com", t.Name()),
		Password: "secret",
		Phone:    fmt.Sprintf("+1-%s", t.Name()),
	}
	require.NoError(t, r.DB.Create(owner).Error)
	return owner
}

func seedUser(t *testing.T, r *repo.GormRepo) *models.User {
	t.Helper()
	user := &models.User{
		Email: fmt.Sprintf("user-%s@example.com", t.Name()),
		Name:  "test_user",
	}
	require.NoError(t, r.DB.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, r *repo.GormRepo, ownerID uint) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:           "test_product",
		Description:    "test_description",
		Price:          10,
		Stock:          5,
		Category:       "test",
		Available:      true,
		ProductOwnerID: ownerID,
	}
	require.NoError(t, r.DB.Create(product).Error)
	return product
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
