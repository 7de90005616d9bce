package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	appConfig *Config
	jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)
)

func main() {
	// Load ./.env if present before reading vars; existing env wins.
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := setupLogging(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid log configuration")
	}
	appConfig = cfg
	jwtSecret = []byte(cfg.JWTSecret)

	// Support a lightweight migrate command: `./quickbill migrate`.
	// It runs AutoMigrate and exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB(cfg)
		log.Info().Msg("migration completed")
		return
	}

	initDB(cfg)
	initRedis(cfg)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())

	setupRoutes(r)

	log.Info().Str("port", cfg.Port).Msg("server listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
