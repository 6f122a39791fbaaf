package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"hairday/internal/infra"
	"hairday/internal/repositories"
)

var Module = fx.Provide(
	provideDB,
	provideStore,
)

func provideDB() *gorm.DB {
	db := infra.InitPostgresql()
	infra.SeedPlans(db)
	return db
}

func provideStore(db *gorm.DB) repositories.Store {
	return repositories.NewStore(db)
}
