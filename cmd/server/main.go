package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/NICOL-XPDK/weba-backend/internal/config"
	"github.com/NICOL-XPDK/weba-backend/internal/handlers"
	"github.com/NICOL-XPDK/weba-backend/internal/logger"
	"github.com/NICOL-XPDK/weba-backend/internal/middleware"
	"github.com/NICOL-XPDK/weba-backend/internal/routes"
	"github.com/NICOL-XPDK/weba-backend/internal/services"
	"github.com/NICOL-XPDK/weba-backend/internal/storage"
)

func main() {
	// Load env before config and logger read it
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.Get()
	defer logger.Close()

	if envErr != nil {
		log.Info("No .env file found")
	}

	// Select the storage backend once at startup. A missing credential or a
	// failed bucket check degrades to local mode instead of crashing.
	var store storage.Store
	if cfg.StorageConfigured() {
		minioStore, err := storage.NewMinioStore(cfg, log)
		if err != nil {
			log.Warnf("Failed to initialize storage: %v", err)
			log.Warn("Running in degraded local mode: submissions will not be persisted")
			store = storage.NewDisabledStore(log)
		} else {
			log.Infof("✅ Storage connected (bucket: %s)", cfg.MinioBucket)
			store = minioStore
		}
	} else {
		log.Warn("Storage credentials not found. Running in degraded local mode: submissions will not be persisted")
		store = storage.NewDisabledStore(log)
	}

	// Wire services and handlers
	submissionService := services.NewSubmissionService(store, log)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, log)
	healthHandler := handlers.NewHealthHandler(submissionService)

	// Setup router
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)

	routes.SetupRoutes(r, submissionHandler, healthHandler, cfg.StaticDir)

	log.Info("📋 Registered routes:")
	log.Info("  GET  /")
	log.Info("  POST /api/submit")
	log.Info("  GET  /api/submissions")
	log.Info("  GET  /api/health")

	log.Infof("🚀 Feedback backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
