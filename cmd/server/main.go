package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/flocknet/backend/internal/router"
	"github.com/flocknet/backend/pkg/config"
	"github.com/flocknet/backend/pkg/firebase"
	"github.com/flocknet/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	// Firebase login is optional; enabled only when credentials are
	// configured.
	var authClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		authClient = firebaseApp.AuthClient
	}

	e := echo.New()
	e.Validator = validators.NewValidator()
	router.SetupMiddleware(e)
	router.SetupRoutes(e, db, authClient, cfg.JWTSecret)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
