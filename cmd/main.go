package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-user-service/internal/config"
	"github.com/sbilibin2017/gw-user-service/internal/facades"
	"github.com/sbilibin2017/gw-user-service/internal/handlers"
	"github.com/sbilibin2017/gw-user-service/internal/jwt"
	"github.com/sbilibin2017/gw-user-service/internal/logger"
	"github.com/sbilibin2017/gw-user-service/internal/migrations"
	"github.com/sbilibin2017/gw-user-service/internal/password"
	"github.com/sbilibin2017/gw-user-service/internal/repositories"
	"github.com/sbilibin2017/gw-user-service/internal/services"

	"github.com/sbilibin2017/gw-user-service/internal/middlewares"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gw-user-service API
// @version 1.0.0
// @description Microservice for user accounts, sessions and channel profiles
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// run initializes the logger, database, Redis, Kafka, object storage and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg *config.Config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := migrations.Up(ctx, db.DB); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writer, optional
	var events services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		writer := &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		}
		defer writer.Close()
		events = writer
		logger.Log.Infow("Kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Log.Warn("KAFKA_BROKERS is empty, user events will not be published")
	}

	// Object storage
	s3Client, err := facades.NewS3Client(ctx, cfg.S3Region, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey)
	if err != nil {
		return fmt.Errorf("failed to configure S3 client: %w", err)
	}
	media := facades.NewMediaS3Facade(s3Client, cfg.S3Bucket, cfg.S3PublicBaseURL)

	tokens := jwt.New(
		jwt.WithAccessSecret(cfg.AccessTokenSecret),
		jwt.WithAccessExpiration(cfg.AccessTokenExpiry),
		jwt.WithRefreshSecret(cfg.RefreshTokenSecret),
		jwt.WithRefreshExpiration(cfg.RefreshTokenExpiry),
	)
	hasher := password.New(cfg.BcryptCost)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db, middlewares.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	denylistRepo := repositories.NewTokenDenylistRepository(rdb)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens, hasher, denylistRepo, media, events)
	profileService := services.NewProfileService(userReadRepo, userWriteRepo, media, events)

	r := newRouter(cfg, db, tokens, authService, profileService)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s", cfg.HTTPAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newRouter mounts the user routes under /api/v1/users.
// Mutating routes run in a request transaction; privileged routes require an access token.
func newRouter(
	cfg *config.Config,
	db *sqlx.DB,
	tokens *jwt.JWT,
	authService *services.AuthService,
	profileService *services.ProfileService,
) http.Handler {
	cookies := handlers.CookieConfig{Secure: cfg.CookieSecure}
	uploads := handlers.UploadConfig{TempDir: cfg.UploadTempDir, MaxBytes: cfg.MaxUploadBytes}

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService, uploads)
	loginHandler := handlers.NewLoginHandler(authService, cookies)
	refreshTokenHandler := handlers.NewRefreshTokenHandler(authService, cookies)
	logoutHandler := handlers.NewLogoutHandler(authService, middlewares.GetClaimsFromContext, cookies)
	changePasswordHandler := handlers.NewChangePasswordHandler(authService, middlewares.GetUserFromContext)
	currentUserHandler := handlers.NewCurrentUserHandler(middlewares.GetUserFromContext)
	updateDetailHandler := handlers.NewUpdateDetailHandler(profileService, middlewares.GetUserFromContext)
	updateAvatarHandler := handlers.NewUpdateAvatarHandler(profileService, middlewares.GetUserFromContext, uploads)
	updateCoverImageHandler := handlers.NewUpdateCoverImageHandler(profileService, middlewares.GetUserFromContext, uploads)
	channelProfileHandler := handlers.NewChannelProfileHandler(profileService, middlewares.GetUserFromContext)
	watchHistoryHandler := handlers.NewWatchHistoryHandler(profileService, middlewares.GetUserFromContext)

	txMiddleware := middlewares.TxMiddleware(db)
	authMiddleware := middlewares.AuthMiddleware(tokens, authService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Route("/api/v1/users", func(r chi.Router) {
		// Public routes
		r.With(txMiddleware).Post("/register", registerHandler)
		r.With(txMiddleware).Post("/login", loginHandler)
		r.With(txMiddleware).Post("/refresh-token", refreshTokenHandler)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.With(txMiddleware).Post("/logout", logoutHandler)
			r.With(txMiddleware).Post("/change-password", changePasswordHandler)
			r.Post("/current-user", currentUserHandler)
			r.With(txMiddleware).Patch("/update-detail", updateDetailHandler)
			r.With(txMiddleware).Patch("/update-avatar", updateAvatarHandler)
			r.With(txMiddleware).Patch("/update-cover-image", updateCoverImageHandler)
			r.Get("/channel/{username}", channelProfileHandler)
			r.Get("/watch-history", watchHistoryHandler)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s/swagger/doc.json", cfg.HTTPAddr())),
	))

	return r
}
