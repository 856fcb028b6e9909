package repository

import (
	"testing"

	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWishlistTest(t *testing.T) (*gorm.DB, WishlistRepository, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewWishlistRepository(testDB)

	category := &model.Category{Name: "Apparel"}
	testDB.Create(category)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:       "Test Product",
		Price:      799,
		CategoryID: category.ID,
	}
	testDB.Create(product)

	return testDB, repo, user, product
}

func TestWishlistRepository_Create(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	item := &model.WishlistItem{CustomerID: user.ID, ProductID: product.ID}
	err := repo.Create(item)
	assert.NoError(t, err)
	assert.NotZero(t, item.ID)
}

func TestWishlistRepository_Create_DuplicateRejected(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.WishlistItem{CustomerID: user.ID, ProductID: product.ID}))

	err := repo.Create(&model.WishlistItem{CustomerID: user.ID, ProductID: product.ID})
	assert.Error(t, err)
}

func TestWishlistRepository_ExistsByCustomerAndProduct(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	exists, err := repo.ExistsByCustomerAndProduct(user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(&model.WishlistItem{CustomerID: user.ID, ProductID: product.ID}))

	exists, err = repo.ExistsByCustomerAndProduct(user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWishlistRepository_Delete_AllowsReAdd(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.WishlistItem{CustomerID: user.ID, ProductID: product.ID}))
	require.NoError(t, repo.Delete(user.ID, product.ID))

	// Removal frees the unique pair for a later add.
	err := repo.Create(&model.WishlistItem{CustomerID: user.ID, ProductID: product.ID})
	assert.NoError(t, err)
}

func TestWishlistRepository_Delete_NotFound(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	err := repo.Delete(user.ID, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWishlistRepository_FindByCustomerID(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	other := &model.Product{Name: "Other", Price: 100, CategoryID: product.CategoryID}
	testDB.Create(other)

	require.NoError(t, repo.Create(&model.WishlistItem{CustomerID: user.ID, ProductID: product.ID}))
	require.NoError(t, repo.Create(&model.WishlistItem{CustomerID: user.ID, ProductID: other.ID}))

	items, err := repo.FindByCustomerID(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.NotEmpty(t, items[0].Product.Name)
}
