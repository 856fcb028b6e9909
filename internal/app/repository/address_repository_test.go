package repository

import (
	"testing"

	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAddressTest(t *testing.T) (*gorm.DB, AddressRepository, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewAddressRepository(testDB)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	return testDB, repo, user
}

func newTestAddress(customerID uint, isDefault bool) *model.Address {
	return &model.Address{
		CustomerID: customerID,
		FullName:   "Ravi Kumar",
		Phone:      "+91-9876543210",
		Line1:      "221B MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
		IsDefault:  isDefault,
	}
}

func TestAddressRepository_Create(t *testing.T) {
	testDB, repo, user := setupAddressTest(t)
	defer db.CleanupTestDB(testDB)

	address := newTestAddress(user.ID, false)
	err := repo.Create(address)
	assert.NoError(t, err)
	assert.NotZero(t, address.ID)
}

func TestAddressRepository_FindByCustomerAndID_Scoped(t *testing.T) {
	testDB, repo, user := setupAddressTest(t)
	defer db.CleanupTestDB(testDB)

	address := newTestAddress(user.ID, false)
	require.NoError(t, repo.Create(address))

	found, err := repo.FindByCustomerAndID(user.ID, address.ID)
	require.NoError(t, err)
	assert.Equal(t, address.ID, found.ID)

	// Another customer's lookup behaves as if the address does not exist.
	_, err = repo.FindByCustomerAndID(user.ID+1, address.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAddressRepository_Delete_Scoped(t *testing.T) {
	testDB, repo, user := setupAddressTest(t)
	defer db.CleanupTestDB(testDB)

	address := newTestAddress(user.ID, false)
	require.NoError(t, repo.Create(address))

	err := repo.Delete(user.ID+1, address.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(user.ID, address.ID)
	assert.NoError(t, err)

	_, err = repo.FindByCustomerAndID(user.ID, address.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAddressRepository_ClearOtherDefaults(t *testing.T) {
	testDB, repo, user := setupAddressTest(t)
	defer db.CleanupTestDB(testDB)

	first := newTestAddress(user.ID, true)
	second := newTestAddress(user.ID, true)
	third := newTestAddress(user.ID, true)
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))
	require.NoError(t, repo.Create(third))

	err := repo.ClearOtherDefaults(user.ID, third.ID)
	require.NoError(t, err)

	addresses, err := repo.FindByCustomerID(user.ID)
	require.NoError(t, err)

	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			assert.Equal(t, third.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestAddressRepository_ClearOtherDefaults_LeavesOtherCustomers(t *testing.T) {
	testDB, repo, user := setupAddressTest(t)
	defer db.CleanupTestDB(testDB)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Other", Role: model.RoleUser}
	testDB.Create(other)

	mine := newTestAddress(user.ID, true)
	theirs := newTestAddress(other.ID, true)
	require.NoError(t, repo.Create(mine))
	require.NoError(t, repo.Create(theirs))

	require.NoError(t, repo.ClearOtherDefaults(user.ID, mine.ID))

	found, err := repo.FindByCustomerAndID(other.ID, theirs.ID)
	require.NoError(t, err)
	assert.True(t, found.IsDefault)
}
