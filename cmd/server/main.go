package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"signplay/internal/config"
	"signplay/internal/database"
	"signplay/internal/gesture"
	"signplay/internal/handlers"
	"signplay/internal/repository"
	"signplay/internal/security"
	"signplay/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	tokenManager := security.NewTokenManager(cfg.JWTSecret, cfg.TokenDuration)
	authService := service.NewAuthService(userRepo, tokenManager, emailService)
	gameService := service.NewGameService(sessionRepo, questionRepo, answerRepo, userRepo)
	statsService := service.NewStatsService(userRepo, sessionRepo, questionRepo, answerRepo)

	predictor := gesture.NewClient(cfg.InferenceURL, cfg.InferenceTimeout)

	googleOAuth := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}

	// Initialize middleware and handlers
	loginLimiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(tokenManager, loginLimiter)

	authHandler := handlers.NewAuthHandler(authService)
	googleAuthHandler := handlers.NewGoogleAuthHandler(authService, googleOAuth)
	gameHandler := handlers.NewGameHandler(gameService, statsService)
	gestureHandler := handlers.NewGestureHandler(predictor)
	healthHandler := handlers.NewHealthHandler(db)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/signup", middleware.RateLimit(authHandler.Signup))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/google", middleware.RateLimit(googleAuthHandler.Login))
	mux.HandleFunc("POST /api/auth/forgot-password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("POST /api/auth/reset-password", middleware.RateLimit(authHandler.ResetPassword))

	mux.HandleFunc("POST /api/game/start-session", middleware.RequireAuth(gameHandler.StartSession))
	mux.HandleFunc("POST /api/game/save-question", middleware.RequireAuth(gameHandler.SaveQuestion))
	mux.HandleFunc("POST /api/game/complete-session", middleware.RequireAuth(gameHandler.CompleteSession))
	mux.HandleFunc("POST /api/game/save-result", middleware.RequireAuth(gameHandler.SaveResult))
	mux.HandleFunc("GET /api/game/stats", middleware.RequireAuth(gameHandler.Stats))
	mux.HandleFunc("GET /api/game/history", middleware.RequireAuth(gameHandler.History))
	mux.HandleFunc("GET /api/game/test-auth", middleware.RequireAuth(gameHandler.TestAuth))

	mux.HandleFunc("POST /api/gesture/predict", gestureHandler.Predict)

	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// Wrap with logging, CORS and body-size middleware
	var handler http.Handler = mux
	handler = handlers.MaxBytes(cfg.MaxBodySize)(handler)
	handler = handlers.CORS(cfg.AllowedOrigins)(handler)
	handler = handlers.Logging(handler)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}
