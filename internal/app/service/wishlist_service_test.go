package service

import (
	"testing"

	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/internal/app/repository"
	"github.com/nsharma/shopmitra-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWishlistServiceTest(t *testing.T) (WishlistService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	wishlistRepo := repository.NewWishlistRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	wishlistService := NewWishlistService(wishlistRepo, productRepo)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	category := &model.Category{Name: "Apparel"}
	testDB.Create(category)

	product := &model.Product{
		Name:       "Test Product",
		Price:      799,
		CategoryID: category.ID,
	}
	testDB.Create(product)

	return wishlistService, user, product, testDB
}

func TestWishlistService_AddToWishlist(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	item, err := wishlistService.AddToWishlist(user.ID, product.ID)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)

	items, err := wishlistService.GetWishlist(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWishlistService_AddToWishlist_Duplicate(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	_, err := wishlistService.AddToWishlist(user.ID, product.ID)
	require.NoError(t, err)

	_, err = wishlistService.AddToWishlist(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrWishlistDuplicate)
}

func TestWishlistService_AddToWishlist_ProductNotFound(t *testing.T) {
	wishlistService, user, _, _ := setupWishlistServiceTest(t)

	_, err := wishlistService.AddToWishlist(user.ID, 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWishlistService_RemoveThenReAdd(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	_, err := wishlistService.AddToWishlist(user.ID, product.ID)
	require.NoError(t, err)

	require.NoError(t, wishlistService.RemoveFromWishlist(user.ID, product.ID))

	// Removal frees the slot for a later add.
	_, err = wishlistService.AddToWishlist(user.ID, product.ID)
	assert.NoError(t, err)
}

func TestWishlistService_RemoveFromWishlist_NotFound(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	err := wishlistService.RemoveFromWishlist(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)
}

func TestWishlistService_CrossCustomerItemInvisible(t *testing.T) {
	wishlistService, user, product, testDB := setupWishlistServiceTest(t)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Other", Role: model.RoleUser}
	testDB.Create(other)

	_, err := wishlistService.AddToWishlist(other.ID, product.ID)
	require.NoError(t, err)

	err = wishlistService.RemoveFromWishlist(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)

	items, err := wishlistService.GetWishlist(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
