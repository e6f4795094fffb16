package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"excelinterview/internal/cache"
	"excelinterview/internal/config"
	"excelinterview/internal/report"
	"excelinterview/internal/repository"
	"excelinterview/internal/service"
	"excelinterview/internal/transport/rest"
)

// @title Excel Interview API
// @version 1.0
// @description Automated Excel skill interview platform
// @host localhost:8000
// @BasePath /api
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Eval:     %s", aiConfig.Models.Eval)
	log.Printf("  Analysis: %s", aiConfig.Models.Analysis)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:  configured ✓")
	} else {
		log.Println("  API Key:  NOT SET (using degraded defaults)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Static directories for narration audio and report artifacts
	for _, dir := range []string{cfg.TTSDir(), cfg.ReportsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	// Initialize repositories
	sessionRepo := repository.NewSessionRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	answerRepo := repository.NewAnswerRepo(db)
	reportRepo := repository.NewReportRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb)
	narrationCache := cache.NewNarrationCache(rdb)

	// Initialize services
	evaluator := service.NewEvaluatorService(aiConfig)
	transcriber := service.NewSpeechService(aiConfig)
	narrator := service.NewNarrationService(aiConfig, narrationCache, cfg.TTSDir())
	renderer := report.NewPDFRenderer(cfg.ReportsDir())

	interviewSvc := service.NewInterviewService(
		sessionRepo, questionRepo, answerRepo, sessionCache,
		evaluator, transcriber, narrator,
		cfg.MaxQuestions, cfg.MaxFollowUps,
	)
	reportSvc := service.NewReportService(
		sessionRepo, answerRepo, reportRepo, sessionCache,
		evaluator, renderer,
	)

	// Create router with container
	container := &rest.Container{
		InterviewService: interviewSvc,
		ReportService:    reportSvc,
		MongoClient:      mongoClient,
		RedisClient:      rdb,
		StaticDir:        cfg.StaticDir,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Printf("Static dir: %s", mustAbs(cfg.StaticDir))
		log.Println("Endpoints:")
		log.Println("  POST /api/sessions")
		log.Println("  GET  /api/sessions/{id}/question")
		log.Println("  POST /api/sessions/{id}/answer")
		log.Println("  GET  /api/sessions/{id}/report")
		log.Println("  GET  /api/health")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func mustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
