package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/internal/app/repository"
	"github.com/nsharma/shopmitra-backend/internal/app/service"
	"github.com/nsharma/shopmitra-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductControllerTest(t *testing.T) (*ProductController, *gin.Engine, *gorm.DB, *model.Category) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	productService := service.NewProductService(productRepo, categoryRepo)
	productController := NewProductController(productService)

	category := &model.Category{Name: "Electronics"}
	testDB.Create(category)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return productController, router, testDB, category
}

func seedProduct(t *testing.T, testDB *gorm.DB, categoryID uint, name string, price float64) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:          name,
		Price:         price,
		StockQuantity: 10,
		CategoryID:    categoryID,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func TestProductController_GetProducts(t *testing.T) {
	controller, router, testDB, category := setupProductControllerTest(t)

	seedProduct(t, testDB, category.ID, "Wireless Mouse", 1200)
	seedProduct(t, testDB, category.ID, "Keyboard", 3000)

	router.GET("/products", controller.GetProducts)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["total"])
	assert.Len(t, response["products"], 2)
}

func TestProductController_GetProducts_FilteredByKeyword(t *testing.T) {
	controller, router, testDB, category := setupProductControllerTest(t)

	seedProduct(t, testDB, category.ID, "Wireless Mouse", 1200)
	seedProduct(t, testDB, category.ID, "Keyboard", 3000)

	router.GET("/products", controller.GetProducts)

	req := httptest.NewRequest(http.MethodGet, "/products?keyword=mouse", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["total"])
}

func TestProductController_GetProducts_Paged(t *testing.T) {
	controller, router, testDB, category := setupProductControllerTest(t)

	for i := 0; i < 5; i++ {
		seedProduct(t, testDB, category.ID, fmt.Sprintf("Product %d", i), float64(100*(i+1)))
	}

	router.GET("/products", controller.GetProducts)

	req := httptest.NewRequest(http.MethodGet, "/products?page=2&page_size=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(5), response["total"])
	assert.Equal(t, float64(2), response["page"])
	assert.Len(t, response["products"], 2)
}

func TestProductController_GetProduct_Success(t *testing.T) {
	controller, router, testDB, category := setupProductControllerTest(t)

	product := seedProduct(t, testDB, category.ID, "Wireless Mouse", 1200)

	router.GET("/products/:id", controller.GetProduct)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	found := response["product"].(map[string]interface{})
	assert.Equal(t, "Wireless Mouse", found["name"])
}

func TestProductController_GetProduct_NotFound(t *testing.T) {
	controller, router, _, _ := setupProductControllerTest(t)

	router.GET("/products/:id", controller.GetProduct)

	req := httptest.NewRequest(http.MethodGet, "/products/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_GetProduct_InvalidID(t *testing.T) {
	controller, router, _, _ := setupProductControllerTest(t)

	router.GET("/products/:id", controller.GetProduct)

	req := httptest.NewRequest(http.MethodGet, "/products/invalid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_CreateProduct_Success(t *testing.T) {
	controller, router, _, category := setupProductControllerTest(t)

	router.POST("/admin/products", controller.CreateProduct)

	salePrice := 900.0
	reqBody := ProductRequest{
		Name:          "Discounted Mouse",
		Price:         1200,
		CategoryID:    category.ID,
		StockQuantity: 30,
		IsOnSale:      true,
		SalePrice:     &salePrice,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Product created successfully", response["message"])

	created := response["product"].(map[string]interface{})
	assert.Equal(t, true, created["is_on_sale"])
	assert.Equal(t, float64(900), created["sale_price"])
}

func TestProductController_CreateProduct_InvalidSalePrice(t *testing.T) {
	controller, router, _, category := setupProductControllerTest(t)

	router.POST("/admin/products", controller.CreateProduct)

	salePrice := 1500.0
	reqBody := ProductRequest{
		Name:       "Bad Sale",
		Price:      1200,
		CategoryID: category.ID,
		IsOnSale:   true,
		SalePrice:  &salePrice,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Sale price must be below the regular price", response["error"])
}

func TestProductController_CreateProduct_UnknownCategory(t *testing.T) {
	controller, router, _, _ := setupProductControllerTest(t)

	router.POST("/admin/products", controller.CreateProduct)

	reqBody := ProductRequest{
		Name:       "Orphan",
		Price:      100,
		CategoryID: 9999,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Category not found", response["error"])
}

func TestProductController_UpdateProduct_Success(t *testing.T) {
	controller, router, testDB, category := setupProductControllerTest(t)

	product := seedProduct(t, testDB, category.ID, "Old Name", 1000)

	router.PUT("/admin/products/:id", controller.UpdateProduct)

	reqBody := ProductRequest{
		Name:          "New Name",
		Price:         1100,
		CategoryID:    category.ID,
		StockQuantity: 5,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/products/%d", product.ID), bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	updated := response["product"].(map[string]interface{})
	assert.Equal(t, "New Name", updated["name"])
	assert.Equal(t, float64(1100), updated["price"])
}

func TestProductController_UpdateProduct_NotFound(t *testing.T) {
	controller, router, _, category := setupProductControllerTest(t)

	router.PUT("/admin/products/:id", controller.UpdateProduct)

	reqBody := ProductRequest{
		Name:       "Ghost",
		Price:      100,
		CategoryID: category.ID,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/admin/products/9999", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_DeleteProduct(t *testing.T) {
	controller, router, testDB, category := setupProductControllerTest(t)

	product := seedProduct(t, testDB, category.ID, "Doomed", 100)

	router.DELETE("/admin/products/:id", controller.DeleteProduct)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/products/%d", product.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/products/%d", product.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
