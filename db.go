package main

import (
	"strings"

	"quickbill/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB(cfg *Config) {
	var err error
	db, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect postgres database")
	}
	if !cfg.AutoMigrate {
		return
	}
	// Migrate models individually so a failure on one doesn't block others.
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Warn().Err(err).Msg("migration warning (users)")
	}
	if err := db.AutoMigrate(&models.Client{}); err != nil {
		log.Warn().Err(err).Msg("migration warning (clients)")
	}
	if err := db.AutoMigrate(&models.Invoice{}); err != nil {
		log.Warn().Err(err).Msg("migration warning (invoices)")
	}
}

// isUniqueConstraintError reports whether err is a duplicate-key failure.
// The (user_id, invoice_number) index relies on this to detect the numbering
// race between concurrent creates.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
