package db

import (
	"blogicum/internal/models"
	"blogicum/internal/utils"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the postgres connection, migrates the schema and seeds the
// initial categories and locations.
func Init(dsn string) *gorm.DB {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	log.Info().Msg("database connection established")

	err = conn.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	log.Info().Msg("database migration completed")

	seedCategories(conn)
	seedLocations(conn)

	return conn
}

func seedCategories(conn *gorm.DB) {
	var count int64
	conn.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return
	}

	categories := []models.Category{
		{Title: "News", Description: "What is happening around us"},
		{Title: "Travel", Description: "Trip reports and route notes"},
		{Title: "Recipes", Description: "Cooking, tested on ourselves"},
		{Title: "Essays", Description: "Longer reads without a deadline"},
	}

	for _, category := range categories {
		category.Slug = utils.Slugify(category.Title)
		category.IsPublished = true
		if err := conn.Create(&category).Error; err != nil {
			log.Error().Err(err).Str("category", category.Title).Msg("failed to seed category")
		}
	}
	log.Info().Msg("initial categories created")
}

func seedLocations(conn *gorm.DB) {
	var count int64
	conn.Model(&models.Location{}).Count(&count)
	if count > 0 {
		return
	}

	locations := []models.Location{
		{Name: "Home"},
		{Name: "Mountains"},
		{Name: "Seaside"},
	}

	for _, location := range locations {
		location.IsPublished = true
		if err := conn.Create(&location).Error; err != nil {
			log.Error().Err(err).Str("location", location.Name).Msg("failed to seed location")
		}
	}
	log.Info().Msg("initial locations created")
}
