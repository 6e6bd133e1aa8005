package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-movie-tracker/docs"
	"github.com/sbilibin2017/gw-movie-tracker/internal/avatars"
	"github.com/sbilibin2017/gw-movie-tracker/internal/credentials"
	"github.com/sbilibin2017/gw-movie-tracker/internal/handlers"
	"github.com/sbilibin2017/gw-movie-tracker/internal/identity"
	"github.com/sbilibin2017/gw-movie-tracker/internal/logger"
	"github.com/sbilibin2017/gw-movie-tracker/internal/middlewares"
	"github.com/sbilibin2017/gw-movie-tracker/internal/migrations"
	"github.com/sbilibin2017/gw-movie-tracker/internal/repositories"
	"github.com/sbilibin2017/gw-movie-tracker/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds every setting read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string
	LogFile  string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecretKey string
	JWTExpSecond int
	BcryptCost   int

	AvatarDir string
}

// @title gw-movie-tracker API
// @version 1.0.0
// @description Accounts, watchlists, likes and reviews for a movie tracker
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
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

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, Kafka, logging, JWT and avatar settings.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogFile = getEnv("APP_LOG_FILE", "")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	// Kafka config; no brokers disables event publishing
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "movie-engagement")

	// JWT config; zero expiry issues tokens that never expire
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = getInt("JWT_EXP_SECOND", "86400"); err != nil {
		return
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)); err != nil {
		return
	}

	cfg.AvatarDir = getEnv("AVATAR_DIR", "uploads/avatars")

	return
}

// userService is everything the HTTP layer needs from the user store.
type userService interface {
	handlers.Registerer
	handlers.Authenticator
	handlers.UserFinder
}

// engagementService is everything the HTTP layer needs from the engagement store.
type engagementService interface {
	handlers.WatchlistManager
	handlers.LikesManager
	handlers.ReviewManager
}

// newRouter mounts every route. Identity is resolved for all requests;
// protected routes additionally require it.
func newRouter(
	log *zap.SugaredLogger,
	resolver middlewares.IdentityResolver,
	revoker handlers.TokenRevoker,
	users userService,
	engagement engagementService,
	avatarStore handlers.AvatarStore,
	swaggerURL string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(log))
	r.Use(middlewares.IdentityMiddleware(resolver, log))

	// Public routes
	r.Post("/register", handlers.NewRegisterHandler(users, avatarStore, log))
	r.Post("/login", handlers.NewLoginHandler(users))
	r.Get("/users/{user}", handlers.NewGetUserHandler(users))
	r.Get("/user/{userID}/avatar", handlers.NewGetUserAvatarHandler(users, avatarStore, log))
	r.Get("/movies/{movieID}/reviews", handlers.NewListMovieReviewsHandler(engagement))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.RequireIdentity)

		r.Post("/logout", handlers.NewLogoutHandler(revoker))

		r.Get("/user/avatar", handlers.NewGetMyAvatarHandler(users, avatarStore, log))
		r.Put("/user/avatar", handlers.NewPutAvatarHandler(users, avatarStore, log))

		r.Get("/watchlist", handlers.NewListWatchlistHandler(engagement))
		r.Get("/watchlist/{movieID}", handlers.NewInWatchlistHandler(engagement))
		r.Put("/watchlist/{movieID}", handlers.NewAddToWatchlistHandler(engagement))
		r.Delete("/watchlist/{movieID}", handlers.NewRemoveFromWatchlistHandler(engagement))

		r.Get("/likes", handlers.NewListLikesHandler(engagement))
		r.Get("/likes/{movieID}", handlers.NewIsLikedHandler(engagement))
		r.Put("/likes/{movieID}", handlers.NewAddToLikesHandler(engagement))
		r.Delete("/likes/{movieID}", handlers.NewRemoveFromLikesHandler(engagement))

		r.Get("/reviews", handlers.NewListMyReviewsHandler(engagement))
		r.Put("/movies/{movieID}/review", handlers.NewUpsertReviewHandler(engagement))
		r.Get("/movies/{movieID}/report", handlers.NewMovieReportHandler(engagement))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))

	return r
}

// run initializes the logger, database, Redis, Kafka and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer log.Sync()
	log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := migrations.Up(ctx, db.DB); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writer for engagement events
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer w.Close()
		kafkaWriter = w
		log.Infof("Publishing engagement events to %s on %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	}

	// Avatar storage
	avatarStore, err := avatars.New(afero.NewOsFs(), cfg.AvatarDir)
	if err != nil {
		return err
	}

	// Credentials
	creds := credentials.New(
		credentials.WithSecretKey(cfg.JWTSecretKey),
		credentials.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
		credentials.WithCost(cfg.BcryptCost),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db, log)
	userWriteRepo := repositories.NewUserWriteRepository(db, log)
	watchlistRepo := repositories.NewWatchlistRepository(db, log)
	likesRepo := repositories.NewLikesRepository(db, log)
	reviewRepo := repositories.NewReviewRepository(db, log)
	denylistRepo := repositories.NewTokenDenylistRepository(rdb, log)

	// Initialize services
	userService := services.NewUserService(userReadRepo, userWriteRepo, creds, log)
	engagementService := services.NewEngagementService(watchlistRepo, likesRepo, reviewRepo, kafkaWriter, log)
	resolver := identity.NewResolver(creds, userService, denylistRepo, log)

	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)
	router := newRouter(log, resolver, resolver, userService, engagementService, avatarStore,
		fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
