package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/nsharma/shopmitra-backend/config"
	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/internal/app/repository"
	"github.com/nsharma/shopmitra-backend/internal/db"
	"github.com/nsharma/shopmitra-backend/pkg/util"
	"gorm.io/gorm"
)

// Seeds a demo catalog and an admin account for local development.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := seedAdmin(); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	count, err := seedCatalog()
	if err != nil {
		log.Fatal("Failed to seed catalog:", err)
	}

	fmt.Printf("Seeding completed: %d products\n", count)
}

func seedAdmin() error {
	userRepo := repository.NewUserRepository(db.GetDB())

	exists, err := userRepo.ExistsByEmail("admin@shopmitra.local")
	if err != nil {
		return err
	}
	if exists {
		fmt.Println("Admin account already present, skipping")
		return nil
	}

	hash, err := util.HashPassword("admin12345")
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        "admin@shopmitra.local",
		PasswordHash: hash,
		Name:         "Store Admin",
		Role:         model.RoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}

	fmt.Println("Admin account created: admin@shopmitra.local")
	return nil
}

func seedCatalog() (int, error) {
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())

	type seedProduct struct {
		name       string
		price      float64
		stock      int
		bestseller bool
		salePrice  *float64
	}

	sale := func(p float64) *float64 { return &p }

	catalog := map[string][]seedProduct{
		"Electronics": {
			{name: "Wireless Earbuds", price: 2999, stock: 120, bestseller: true},
			{name: "Bluetooth Speaker", price: 4499, stock: 60, salePrice: sale(3499)},
			{name: "Smart Watch", price: 7999, stock: 45},
		},
		"Apparel": {
			{name: "Cotton T-Shirt", price: 599, stock: 300, bestseller: true},
			{name: "Denim Jeans", price: 1899, stock: 150},
		},
		"Home & Kitchen": {
			{name: "Ceramic Dinner Set", price: 3299, stock: 40},
			{name: "Electric Kettle", price: 1499, stock: 80, salePrice: sale(1199)},
		},
	}

	total := 0
	for categoryName, products := range catalog {
		category, err := categoryRepo.FindByName(categoryName)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = &model.Category{Name: categoryName}
			if err := categoryRepo.Create(category); err != nil {
				return total, err
			}
		} else if err != nil {
			return total, err
		}

		for _, p := range products {
			product := &model.Product{
				Name:          p.name,
				Price:         p.price,
				CategoryID:    category.ID,
				StockQuantity: p.stock,
				IsBestseller:  p.bestseller,
			}
			if p.salePrice != nil {
				product.IsOnSale = true
				product.SalePrice = p.salePrice
			}
			if err := productRepo.Create(product); err != nil {
				return total, err
			}
			total++
		}
	}

	return total, nil
}
