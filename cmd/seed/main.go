// Command seed loads a small demo dataset: a customer with a funded wallet,
// a restaurant with a menu, and an active promotion. Intended for local
// development only.
package main

import (
	"log"
	"time"

	"mesa/internal/config"
	"mesa/internal/models"
	"mesa/internal/repositories"

	"github.com/shopspring/decimal"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Printf("Failed to close PostgreSQL connection: %v", err)
				}
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}
	}()

	db := repositories.DB

	var existing models.User
	if err := db.Where("email = ?", "ada@example.com").First(&existing).Error; err == nil {
		log.Println("Demo data already seeded")
		return
	}

	customer := models.User{Name: "Ada", Email: "ada@example.com", Phone: "+15550100", Role: models.RoleCustomer}
	owner := models.User{Name: "Marco", Email: "marco@example.com", Phone: "+15550101", Role: models.RoleOwner}
	driver := models.User{Name: "Sam", Email: "sam@example.com", Phone: "+15550102", Role: models.RoleDriver}
	for _, u := range []*models.User{&customer, &owner, &driver} {
		if err := db.Create(u).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", u.Email, err)
		}
	}

	home := models.Address{UserID: customer.ID, Line1: "1 Canal St", City: "Amsterdam"}
	shop := models.Address{UserID: owner.ID, Line1: "42 Market Sq", City: "Amsterdam"}
	for _, a := range []*models.Address{&home, &shop} {
		if err := db.Create(a).Error; err != nil {
			log.Fatalf("Failed to create address: %v", err)
		}
	}

	restaurant := models.Restaurant{
		OwnerID:         owner.ID,
		Name:            "Trattoria Marco",
		AddressID:       shop.ID,
		AcceptingOrders: true,
	}
	if err := db.Create(&restaurant).Error; err != nil {
		log.Fatalf("Failed to create restaurant: %v", err)
	}

	margherita := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         "Margherita",
		Price:        decimal.NewFromFloat(11.50),
		CategoryIDs:  models.IDList{1},
	}
	tiramisu := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         "Tiramisu",
		Price:        decimal.NewFromFloat(6.00),
		CategoryIDs:  models.IDList{2},
	}
	for _, m := range []*models.MenuItem{&margherita, &tiramisu} {
		if err := db.Create(m).Error; err != nil {
			log.Fatalf("Failed to create menu item: %v", err)
		}
	}

	large := models.ItemVariant{MenuItemID: margherita.ID, Name: "Large", Price: decimal.NewFromFloat(14.50)}
	if err := db.Create(&large).Error; err != nil {
		log.Fatalf("Failed to create variant: %v", err)
	}

	promo := models.Promotion{
		Name:        "Pizza week",
		Type:        models.PromotionTypePercentage,
		Value:       decimal.NewFromInt(10),
		CategoryIDs: models.IDList{1},
		Status:      models.PromotionStatusActive,
		StartDate:   time.Now().AddDate(0, 0, -1),
		EndDate:     time.Now().AddDate(0, 0, 14),
	}
	if err := db.Create(&promo).Error; err != nil {
		log.Fatalf("Failed to create promotion: %v", err)
	}

	wallets := []models.Wallet{
		{OwnerID: customer.ID, OwnerRole: models.WalletOwnerCustomer, Balance: decimal.NewFromInt(100)},
		{OwnerID: owner.ID, OwnerRole: models.WalletOwnerRestaurant, Balance: decimal.Zero},
		{OwnerID: driver.ID, OwnerRole: models.WalletOwnerDriver, Balance: decimal.Zero},
	}
	for i := range wallets {
		if err := db.Create(&wallets[i]).Error; err != nil {
			log.Fatalf("Failed to create wallet: %v", err)
		}
	}

	log.Println("Demo data seeded")
}
