package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/fitlog-app/fitlog-backend/internal/config"
	"github.com/fitlog-app/fitlog-backend/internal/database"
	"github.com/fitlog-app/fitlog-backend/internal/handlers"
	"github.com/fitlog-app/fitlog-backend/internal/middleware"
	"github.com/fitlog-app/fitlog-backend/internal/routes"
	"github.com/fitlog-app/fitlog-backend/internal/services"
	"github.com/fitlog-app/fitlog-backend/pkg/logging"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	logger := logging.New("fitlog-backend", cfg.Environment)

	// Connect to MongoDB
	logger.Info("connecting to MongoDB...")
	client, db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		logger.WithField("error", err.Error()).Fatal("failed to connect to MongoDB")
	}
	defer database.Disconnect(client)
	logger.Info("connected to MongoDB")

	// Wire services and handlers
	userService := services.NewUserService(db)
	exerciseService := services.NewExerciseService(db, userService)
	logService := services.NewLogService(db, userService)
	h := handlers.New(logger, userService, exerciseService, logService)

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Rate limiting needs Redis; run without it if unavailable
	logger.Info("connecting to Redis...")
	rdb, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		logger.WithField("error", err.Error()).Warn("Redis unavailable, rate limiting disabled")
	} else {
		defer rdb.Close()
		r.Use(middleware.RateLimit(rdb))
		logger.Info("connected to Redis")
	}

	// Health check (no rate limit consequences worth special-casing here)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, h)

	logger.WithField("port", cfg.Port).Info("fitlog backend listening")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.WithField("error", err.Error()).Fatal("server stopped")
	}
}
