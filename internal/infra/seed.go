package infra

import (
	"log"

	"gorm.io/gorm"

	"hairday/internal/models/db_models"
)

// SeedPlans installs the default catalog on an empty plans table:
// the three paid tiers plus the standalone token pack.
func SeedPlans(db *gorm.DB) {
	var count int64
	if err := db.Model(&db_models.Plan{}).Count(&count).Error; err != nil {
		log.Printf("Error counting plans: %v", err)
		return
	}
	if count > 0 {
		return
	}

	plans := []db_models.Plan{
		{Code: "basic", Name: "Basic", PriceMinor: 9900, Currency: "KRW",
			ProductType: db_models.ProductPlan, TokenAllotment: 3000, ValidityDays: 30, IsActive: true},
		{Code: "pro", Name: "Pro", PriceMinor: 19900, Currency: "KRW",
			ProductType: db_models.ProductPlan, TokenAllotment: 10000, ValidityDays: 30, IsActive: true},
		{Code: "business", Name: "Business", PriceMinor: 49900, Currency: "KRW",
			ProductType: db_models.ProductPlan, TokenAllotment: 30000, ValidityDays: 30, IsActive: true},
		{Code: "tokens_5000", Name: "5,000 Tokens", PriceMinor: 5900, Currency: "KRW",
			ProductType: db_models.ProductTokenPack, TokenAllotment: 5000, IsActive: true},
	}

	if err := db.Create(&plans).Error; err != nil {
		log.Printf("Error seeding plans: %v", err)
	}
}
