package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sealjuli/Library/pkg/models"
)

// RunMigrations creates or updates the books, users and user_books tables.
func RunMigrations(db *gorm.DB, logger *zap.Logger) error {
	for _, m := range schemaModels() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrate %T: %w", m, err)
		}
	}
	logger.Info("migrations completed")
	return nil
}

// schemaModels lists the models in dependency order: the join table last.
func schemaModels() []any {
	return []any{
		&models.Book{},
		&models.User{},
		&models.UserBook{},
	}
}
