package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"readquest/internal/config"
	"readquest/internal/database"
	"readquest/internal/handlers"
	"readquest/internal/repository"
	"readquest/internal/security"
	"readquest/internal/service"
	"readquest/internal/storage"
	"readquest/internal/tasks"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	ctx := context.Background()

	// External services
	objectStore, err := storage.NewS3Storage(ctx, cfg.AWSRegion, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize email: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	bookRepo := repository.NewBookRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	eventRepo := repository.NewEventRepository(db)
	missionRepo := repository.NewMissionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize services
	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.TokenDuration)
	authService := service.NewAuthService(db, userRepo, profileRepo, statsRepo, tokens)
	catalogService := service.NewCatalogService(bookRepo, objectStore)
	libraryService := service.NewLibraryService(progressRepo, favoriteRepo, bookRepo, statsRepo)
	evaluationService := service.NewEvaluationService(db, evaluationRepo, statsRepo)
	notificationService := service.NewNotificationService(notificationRepo, emailService)
	statsService := service.NewStatsService(eventRepo, statsRepo, cfg.Timezone)
	missionService := service.NewMissionService(missionRepo, missionRepo, statsRepo, cfg.Timezone)

	// Background task runner for mission assignment, progress recomputation
	// and other best-effort work
	runner := tasks.NewRunner(cfg.TaskWorkers, cfg.TaskQueueSize)
	engagement := service.NewEngagement(runner, missionService, statsService, notificationService, emailService)

	// Initialize handlers
	middleware := handlers.NewMiddleware(tokens, cfg.IngestToken)
	authHandler := handlers.NewAuthHandler(authService, engagement)
	bookHandler := handlers.NewBookHandler(catalogService, cfg.UploadMaxSize)
	libraryHandler := handlers.NewLibraryHandler(libraryService, engagement)
	evaluationHandler := handlers.NewEvaluationHandler(evaluationService, engagement)
	missionHandler := handlers.NewMissionHandler(missionService)
	statsHandler := handlers.NewStatsHandler(statsService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	profileHandler := handlers.NewProfileHandler(profileRepo, statsService)
	ingestHandler := handlers.NewIngestHandler(evaluationService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.RateLimit(authHandler.Login))

	// Catalog
	mux.HandleFunc("GET /books", middleware.RequireAuth(bookHandler.Search))
	mux.HandleFunc("GET /books/{id}", middleware.RequireAuth(bookHandler.Get))
	mux.HandleFunc("POST /books", middleware.RequireAdmin(bookHandler.Upload))
	mux.HandleFunc("GET /categories", middleware.RequireAuth(bookHandler.ListCategories))
	mux.HandleFunc("POST /categories", middleware.RequireAdmin(bookHandler.CreateCategory))
	mux.HandleFunc("GET /education-levels", middleware.RequireAuth(bookHandler.ListEducationLevels))

	// Personal library and favorites
	mux.HandleFunc("GET /library", middleware.RequireAuth(libraryHandler.List))
	mux.HandleFunc("POST /library", middleware.RequireAuth(libraryHandler.Add))
	mux.HandleFunc("PUT /library/{bookID}/progress", middleware.RequireAuth(libraryHandler.UpdateProgress))
	mux.HandleFunc("GET /favorites", middleware.RequireAuth(libraryHandler.ListFavorites))
	mux.HandleFunc("POST /favorites/{bookID}", middleware.RequireAuth(libraryHandler.AddFavorite))
	mux.HandleFunc("DELETE /favorites/{bookID}", middleware.RequireAuth(libraryHandler.RemoveFavorite))

	// Chapters, questions and evaluations
	mux.HandleFunc("GET /books/{bookID}/chapters", middleware.RequireAuth(evaluationHandler.ListChapters))
	mux.HandleFunc("GET /chapters/{chapterID}/questions", middleware.RequireAuth(evaluationHandler.ListQuestions))
	mux.HandleFunc("POST /evaluations", middleware.RequireAuth(evaluationHandler.Submit))

	// Missions
	mux.HandleFunc("GET /missions", middleware.RequireAuth(missionHandler.ListActive))
	mux.HandleFunc("POST /missions/{assignmentID}/complete", middleware.RequireAuth(missionHandler.Complete))

	// Streak and statistics
	mux.HandleFunc("GET /stats/streak", middleware.RequireAuth(statsHandler.Streak))
	mux.HandleFunc("GET /stats", middleware.RequireAuth(statsHandler.General))

	// Profile screen
	mux.HandleFunc("GET /profile", middleware.RequireAuth(profileHandler.Get))

	// Notifications
	mux.HandleFunc("GET /notifications", middleware.RequireAuth(notificationHandler.List))
	mux.HandleFunc("POST /notifications/{id}/read", middleware.RequireAuth(notificationHandler.MarkRead))

	// Content-ingestion worker endpoints
	mux.HandleFunc("POST /internal/chapters", middleware.RequireIngestToken(ingestHandler.CreateChapter))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	// Drain queued background work before exit
	runner.Close()
}
