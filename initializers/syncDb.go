package initializers

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sareecustoms/storefront-api/models"
)

// SyncDatabase creates or alters every table the API reads.
func SyncDatabase(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Tag{},
		&models.Order{},
		&models.User{},
		&models.Admin{},
		&models.Feedback{},
		&models.ContactMessage{},
	); err != nil {
		return err
	}
	log.Info("Database synced successfully.")
	return nil
}
