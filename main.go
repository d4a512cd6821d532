// @title Quiz Backend API
// @version 1.0
// @description Quiz-taking backend: MCQ management, scoring, history and certificates.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"quiz_backend/internal/app"
	"quiz_backend/internal/config"
	"quiz_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
