// @title Student Portal API
// @version 1.0
// @description Backend for a school information portal covering enrollment,
// @description attendance and assessments.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"student_portal_backend/internal/app"
	"student_portal_backend/internal/config"
	"student_portal_backend/pkg/configwatcher"
	"student_portal_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force migrations on startup, even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration finished, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			application.ApplyConfig(c)
		}
	})

	application.Run()
}
