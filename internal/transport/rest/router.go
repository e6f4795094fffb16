package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"excelinterview/internal/service"
	"excelinterview/internal/transport/rest/handler"
	"excelinterview/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	InterviewService *service.InterviewService
	ReportService    *service.ReportService
	MongoClient      *mongo.Client
	RedisClient      *redis.Client
	StaticDir        string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(c.InterviewService)
	reportHandler := handler.NewReportHandler(c.ReportService)
	healthHandler := handler.NewHealthHandler(c.MongoClient, c.RedisClient)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)
	r.Use(middleware.Logging)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/sessions/{sessionId}/question", sessionHandler.NextQuestion).Methods("GET", "OPTIONS")
	api.HandleFunc("/sessions/{sessionId}/answer", sessionHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	api.HandleFunc("/sessions/{sessionId}/report", reportHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/health", healthHandler.Check).Methods("GET")

	// Narration audio and report artifacts
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(c.StaticDir))))

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
