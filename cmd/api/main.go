package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"stock-analysis-backend/cmd"
	"stock-analysis-backend/internal/advisor"
	"stock-analysis-backend/internal/api"
	"stock-analysis-backend/internal/database"
	"stock-analysis-backend/internal/llm"
	"stock-analysis-backend/internal/storage"
)

type APIConfig struct {
	DatabaseURL string `env:"DATABASE_URL" envDefault:"./data/stock-analysis.db"`
	APIPort     string `env:"API_PORT" envDefault:"8001"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	ChatModel    string `env:"CHAT_MODEL" envDefault:"gpt-4o"`

	ChatTimeout     time.Duration `env:"CHAT_TIMEOUT" envDefault:"30s"`
	AnalysisTimeout time.Duration `env:"ANALYSIS_TIMEOUT" envDefault:"2m"`

	// Uploaded chart images are archived locally under UploadRoot unless an
	// S3 endpoint is configured.
	UploadRoot        string `env:"UPLOAD_ROOT" envDefault:"/tmp/uploads"`
	ChartBucket       string `env:"CHART_BUCKET" envDefault:"chart-uploads"`
	S3EndpointURL     string `env:"S3_ENDPOINT_URL"`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
}

func createArchive(cfg APIConfig) storage.Provider {
	if cfg.S3EndpointURL == "" {
		return storage.NewLocalProvider(cfg.UploadRoot)
	}

	provider, err := storage.NewS3Provider(&storage.S3ProviderConfig{
		S3EndpointURL:     cfg.S3EndpointURL,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
		S3Region:          cfg.S3Region,
	})
	if err != nil {
		log.Fatalf("Failed to create S3 provider: %v", err)
	}
	return provider
}

func main() {
	log.Println("Starting API Server...")

	cmd.LoadEnvFile()

	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set, chat and analysis requests will fail")
	}

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	archive := createArchive(cfg)
	if err := archive.CreateBucket(context.Background(), cfg.ChartBucket); err != nil {
		log.Fatalf("Failed to create chart bucket: %v", err)
	}

	gateway := llm.NewGateway(cfg.OpenAIAPIKey, cfg.ChatModel)

	service := advisor.NewService(gateway, database.NewSessionStore(db), archive, advisor.Config{
		ChartBucket:     cfg.ChartBucket,
		ChatTimeout:     cfg.ChatTimeout,
		AnalysisTimeout: cfg.AnalysisTimeout,
	})

	// --- Chi Router Setup ---
	r := chi.NewRouter()

	// Middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Cache preflight response for 5 minutes
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Log requests
	r.Use(middleware.Recoverer) // Recover from panics

	apiHandler := api.NewAdvisorService(service)
	r.Route("/api", apiHandler.AddRoutes)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: r,
	}

	// Goroutine for graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("API server listening on port %s", cfg.APIPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
	}

	log.Println("Server stopped.")
}
