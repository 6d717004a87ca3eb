package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/voycel/Asset-Tracker-sub000/cmd"
	"github.com/voycel/Asset-Tracker-sub000/internal/core/container"
	"github.com/voycel/Asset-Tracker-sub000/internal/core/logger"
	"github.com/voycel/Asset-Tracker-sub000/internal/core/routes"
	"github.com/voycel/Asset-Tracker-sub000/internal/database"
	"github.com/voycel/Asset-Tracker-sub000/internal/integrations/googlesheets"
)

func init() {
	// Load .env file, but don't overwrite system environment variables.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if len(os.Args) > 1 {
		cmd.Execute(ctx)
		return
	}

	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		appLogger.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		appLogger.Fatal("unable to connect to the database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db, "migrations", appLogger); err != nil {
		appLogger.Fatal("unable to run migrations", zap.Error(err))
	}

	appContainer := container.NewAppContainer(db, appLogger)

	if os.Getenv("GOOGLE_SHEETS_CREDENTIALS_JSON") != "" {
		sheetsClient, err := googlesheets.NewSheetsClient(ctx)
		if err != nil {
			appLogger.Warn("google sheets integration disabled", zap.Error(err))
		} else {
			appContainer.AttachSheets(sheetsClient)
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.NewRouter(appLogger)
	routes.RegisterUtilityRoutes(router)
	routes.RegisterRoutes(router, appContainer)

	addr := os.Getenv("APP_HOST")
	if addr == "" {
		addr = ":8080"
	}

	appLogger.Info("starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		appLogger.Fatal("server stopped", zap.Error(err))
	}
}
