package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/username/dealparse/backend/src/config"
	"github.com/username/dealparse/backend/src/database"
	"github.com/username/dealparse/backend/src/handlers"
	"github.com/username/dealparse/backend/src/logger"
	"github.com/username/dealparse/backend/src/ner"
	"github.com/username/dealparse/backend/src/security"
	"github.com/username/dealparse/backend/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin == config.Cfg.FrontendBaseURL {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Deal extraction backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	sessionCache := cache.New(config.Cfg.SessionTTL, config.Cfg.SessionCleanupInterval)
	sessionService := services.NewSessionService(sessionCache)

	var recognizer ner.Recognizer
	if config.Cfg.NERServiceURL != "" {
		recognizer = ner.NewClient(config.Cfg.NERServiceURL, config.Cfg.NERTimeout)
		logger.L.Info("Statistical recognizer configured", "url", config.Cfg.NERServiceURL, "timeout", config.Cfg.NERTimeout)
	} else {
		logger.L.Info("No NER_SERVICE_URL configured; free-text extraction will run the regex engine only")
	}

	extractionService := services.NewExtractionService(recognizer)

	uploadHandler := handlers.NewUploadHandler(extractionService, sessionService)
	extractionHandler := handlers.NewExtractionHandler(extractionService, sessionService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "message": "Document extraction pipeline is running"})
	})

	r.Route("/api", func(r chi.Router) {
		if config.Cfg.JWTSecret != "" {
			authService := security.NewAuthService(config.Cfg.JWTSecret)
			r.Use(handlers.AuthMiddleware(authService))
		}

		r.Post("/upload", uploadHandler.HandleUpload)
		r.Post("/extract", extractionHandler.HandleExtract)
		r.Get("/documents/{documentID}", extractionHandler.HandleGetDocument)
		r.Get("/extractions", extractionHandler.HandleListExtractions)
	})

	server := &http.Server{
		Addr:         ":" + config.Cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server listening", "port", config.Cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
