package main

import (
	"ShifaCare/cache"
	"ShifaCare/config"
	"ShifaCare/database"
	"ShifaCare/logger"
	"ShifaCare/routes"
	"ShifaCare/utils"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real environment variables take precedence
	_ = godotenv.Load()

	if err := logger.Init(os.Getenv("ENV")); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Load configuration from environment
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize the database
	db, err := database.InitDB(context.Background(), cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Seed the bootstrap admin account if configured
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		hash, err := utils.HashPassword(cfg.AdminPassword)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}
		if err := database.SeedAdmin(cfg.AdminUsername, hash); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	// Initialize Redis
	if err := database.InitializeRedis(); err != nil {
		log.Fatalf("failed to initialize Redis client: %v", err)
	}

	// Initialize the cache utility
	cacheClient, err := cache.NewCache()
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}

	handler := routes.SetupRoutes(cacheClient, cfg, db)

	// Configure and start the server
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		logger.L.Infof("Starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	logger.L.Info("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %+v", err)
	}

	wg.Wait()
	logger.L.Info("Server exited gracefully")
}

// loadConfig loads configuration from environment variables.
func loadConfig() (*config.AppConfig, error) {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return nil, errors.New("missing DB_URL environment variable")
	}

	redisAddress := os.Getenv("REDIS_URL")
	if redisAddress == "" {
		return nil, errors.New("missing REDIS_URL environment variable")
	}

	sessionKey := os.Getenv("SESSION_KEY")
	if len(sessionKey) != 32 {
		return nil, errors.New("SESSION_KEY must be set to a 32-byte value")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8930"
	}

	corsOrigins := []string{"http://localhost:3000", "https://www.shifacare.pk"}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		corsOrigins = corsOrigins[:0]
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				corsOrigins = append(corsOrigins, origin)
			}
		}
	}

	smtpPort := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid SMTP_PORT value")
		}
		smtpPort = parsed
	}

	return &config.AppConfig{
		DBURL:         dbURL,
		RedisAddress:  redisAddress,
		SessionKey:    sessionKey,
		Port:          port,
		CorsOrigins:   corsOrigins,
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      smtpPort,
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
	}, nil
}
