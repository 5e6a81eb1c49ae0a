// @title CallCenter English API
// @version 1.0
// @description Backend for the English-learning platform for call-center agents.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"callcenter_english_backend/internal/app"
	"callcenter_english_backend/internal/config"
	"callcenter_english_backend/pkg/configwatcher"
	"callcenter_english_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(reloaded *config.Config) {
		application.ApplyConfig(reloaded)
	})

	application.Run()
}
