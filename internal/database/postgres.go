package database

import (
	"fmt"
	"log"

	"github.com/templateworks/backend/internal/config"
	"github.com/templateworks/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connected successfully")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	err := db.AutoMigrate(
		&models.User{},
		&models.TagDefinition{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// Seed installs the per-kind tag vocabularies. The lists are reference
// data for display coloring only; they are upserted by (kind, name) so
// redeploys can extend them without disturbing stored template tags.
func Seed(db *gorm.DB) error {
	log.Println("Seeding database...")

	chatTags := []models.TagDefinition{
		{Kind: models.TagKindChat, Name: "new chat", Label: "New Chat", Color: "bg-blue-100 text-blue-800"},
		{Kind: models.TagKindChat, Name: "closing", Label: "Closing", Color: "bg-green-100 text-green-800"},
		{Kind: models.TagKindChat, Name: "pause", Label: "Pause", Color: "bg-yellow-100 text-yellow-800"},
		{Kind: models.TagKindChat, Name: "collecting assets", Label: "Collecting Assets", Color: "bg-red-100 text-red-800"},
		{Kind: models.TagKindChat, Name: "self serve", Label: "Self Serve", Color: "bg-purple-100 text-purple-800"},
		{Kind: models.TagKindChat, Name: "MPS transfer", Label: "MPS Transfer", Color: "bg-pink-100 text-pink-800"},
		{Kind: models.TagKindChat, Name: "call permission", Label: "Call Permission", Color: "bg-indigo-100 text-indigo-800"},
		{Kind: models.TagKindChat, Name: "no response", Label: "No Response", Color: "bg-teal-100 text-teal-800"},
		{Kind: models.TagKindChat, Name: "other", Label: "Other", Color: "bg-gray-100 text-gray-800"},
	}

	emailTags := []models.TagDefinition{
		{Kind: models.TagKindEmail, Name: "updating", Label: "Updating", Color: "bg-blue-100 text-blue-800"},
		{Kind: models.TagKindEmail, Name: "asking", Label: "Asking", Color: "bg-green-100 text-green-800"},
		{Kind: models.TagKindEmail, Name: "requesting", Label: "Requesting", Color: "bg-yellow-100 text-yellow-800"},
		{Kind: models.TagKindEmail, Name: "facebook", Label: "Facebook", Color: "bg-indigo-100 text-indigo-800"},
		{Kind: models.TagKindEmail, Name: "instagram", Label: "Instagram", Color: "bg-purple-100 text-purple-800"},
		{Kind: models.TagKindEmail, Name: "whatsapp", Label: "Whatsapp", Color: "bg-green-200 text-green-800"},
		{Kind: models.TagKindEmail, Name: "messenger", Label: "Messenger", Color: "bg-pink-100 text-pink-800"},
		{Kind: models.TagKindEmail, Name: "ads-manager", Label: "Ads Manager", Color: "bg-orange-100 text-orange-800"},
		{Kind: models.TagKindEmail, Name: "business-manager", Label: "Business Manager", Color: "bg-teal-100 text-teal-800"},
		{Kind: models.TagKindEmail, Name: "commerce-manager", Label: "Commerce Manager", Color: "bg-red-100 text-red-800"},
	}

	resolutionTags := []models.TagDefinition{
		{Kind: models.TagKindResolution, Name: "facebook", Label: "Facebook", Color: "bg-blue-100 text-blue-800"},
		{Kind: models.TagKindResolution, Name: "instagram", Label: "Instagram", Color: "bg-purple-100 text-purple-800"},
		{Kind: models.TagKindResolution, Name: "whatsapp", Label: "Whatsapp", Color: "bg-green-200 text-green-800"},
		{Kind: models.TagKindResolution, Name: "messenger", Label: "Messenger", Color: "bg-pink-100 text-pink-800"},
		{Kind: models.TagKindResolution, Name: "ads-manager", Label: "Ads Manager", Color: "bg-orange-100 text-orange-800"},
		{Kind: models.TagKindResolution, Name: "business-manager", Label: "Business Manager", Color: "bg-teal-100 text-teal-800"},
		{Kind: models.TagKindResolution, Name: "commerce-manager", Label: "Commerce Manager", Color: "bg-red-100 text-red-800"},
		{Kind: models.TagKindResolution, Name: "pixel", Label: "Pixel", Color: "bg-indigo-100 text-indigo-800"},
		{Kind: models.TagKindResolution, Name: "events-manager", Label: "Events Manager", Color: "bg-yellow-100 text-yellow-800"},
	}

	order := 0
	for _, tags := range [][]models.TagDefinition{chatTags, emailTags, resolutionTags} {
		for _, tag := range tags {
			tag.SortOrder = order
			order++
			var existing models.TagDefinition
			result := db.Where("kind = ? AND name = ?", tag.Kind, tag.Name).First(&existing)
			if result.Error == gorm.ErrRecordNotFound {
				if err := db.Create(&tag).Error; err != nil {
					log.Printf("Failed to create tag %s/%s: %v", tag.Kind, tag.Name, err)
				}
			}
		}
	}

	log.Println("Database seeding completed")
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
