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

func setupCartServiceTest(t *testing.T) (CartService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	category := &model.Category{Name: "Electronics"}
	testDB.Create(category)

	product := &model.Product{
		Name:          "Test Product",
		Price:         1000,
		CategoryID:    category.ID,
		StockQuantity: 10,
	}
	testDB.Create(product)

	return cartService, user, product, testDB
}

func TestCartService_AddToCart_NewLine(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	cart, err := cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 2000.0, cart.TotalPrice)
}

func TestCartService_AddToCart_MergesExistingLine(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)

	// Adding the same product again bumps the quantity, no second line.
	cart, err := cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_GetCart_UsesSalePrice(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	salePrice := 800.0
	testDB.Model(product).Updates(map[string]interface{}{
		"is_on_sale": true,
		"sale_price": salePrice,
	})

	_, err := cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)

	cart, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1600.0, cart.TotalPrice)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)

	cart, err := cartService.UpdateQuantity(user.ID, product.ID, 5)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_UpdateQuantity_MissingLine(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.UpdateQuantity(user.ID, product.ID, 5)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)

	cart, err := cartService.RemoveFromCart(user.ID, product.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_RemoveFromCart_OtherCustomerLineInvisible(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Other", Role: model.RoleUser}
	testDB.Create(other)

	_, err := cartService.AddToCart(other.ID, product.ID, 1)
	require.NoError(t, err)

	// The caller's cart has no such line, so the other customer's line
	// is reported as missing rather than denied.
	_, err = cartService.RemoveFromCart(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 3)
	require.NoError(t, err)

	require.NoError(t, cartService.ClearCart(user.ID))

	cart, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
}
