package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/openpetition/petition-api/internal/config"
	"github.com/openpetition/petition-api/internal/database"
	"github.com/openpetition/petition-api/internal/handler"
	"github.com/openpetition/petition-api/internal/middleware"
	"github.com/openpetition/petition-api/internal/queue"
	"github.com/openpetition/petition-api/internal/repository"
	"github.com/openpetition/petition-api/internal/router"
)

func main() {
	_ = godotenv.Load() // optional .env; real deployments set the environment directly

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter and the browse cache. A nil client
	// disables both; the API still works without Redis.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepo(db)
	petitionRepo := repository.NewPetitionRepo(db)
	signatureRepo := repository.NewSignatureRepo(db)
	complaintRepo := repository.NewComplaintRepo(db)
	complaintTypeRepo := repository.NewComplaintTypeRepo(db)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, userRepo)
	petitionHandler := handler.NewPetitionHandler(petitionRepo)
	signatureHandler := handler.NewSignatureHandler(cfg, signatureRepo, petitionRepo)
	complaintHandler := handler.NewComplaintHandler(complaintRepo)
	complaintTypeHandler := handler.NewComplaintTypeHandler(complaintTypeRepo)
	userHandler := handler.NewUserHandler(cfg, userRepo)
	adminHandler := handler.NewAdminHandler(petitionRepo, signatureRepo)
	publicHandler := handler.NewPublicHandler(petitionRepo)

	e := echo.New() // Create Echo instance

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, limiter)
	router.RegisterPublic(e, publicHandler, signatureHandler, cache)
	router.RegisterProtected(e, cfg.JWTSecret, cfg.JWTAlgorithm,
		petitionHandler, signatureHandler, complaintHandler, complaintTypeHandler, userHandler, adminHandler)

	// Background consumer for signature.validated events. Runs its own
	// reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartSignatureConsumer(); err != nil {
			log.Printf("signature consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
