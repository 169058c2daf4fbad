package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-auth-service/internal/handlers"
	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/middlewares"
	"github.com/sbilibin2017/gw-auth-service/internal/password"
	"github.com/sbilibin2017/gw-auth-service/internal/repositories"
	"github.com/sbilibin2017/gw-auth-service/internal/services"
	"github.com/sbilibin2017/gw-auth-service/internal/tokens"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/sbilibin2017/gw-auth-service/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const serviceName = "gw-auth-service"

// config holds every setting read by parseConfig.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisEnabled      bool
	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisExpSecond    int

	BcryptCost int
	TokenBytes int

	AdminSeedEnabled bool
	AdminUsername    string
	AdminEmail       string
	AdminPassword    string
}

// @title gw-auth-service API
// @version 1.0.0
// @description User accounts and bearer token authentication
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.basic BasicAuth
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
	fmt.Printf("Starting %s version %s, commit %s, build %s\n", serviceName, buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, hashing, token and admin seed configuration.
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
	getBool := func(key, defaultValue string) (bool, error) {
		v, err := strconv.ParseBool(getEnv(key, defaultValue))
		if err != nil {
			return false, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

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
	if cfg.RedisEnabled, err = getBool("REDIS_ENABLED", "false"); err != nil {
		return
	}
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
	if cfg.RedisExpSecond, err = getInt("REDIS_EXP_SECOND", "300"); err != nil {
		return
	}

	// Password and token config
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", "10"); err != nil {
		return
	}
	if cfg.TokenBytes, err = getInt("TOKEN_BYTES", "32"); err != nil {
		return
	}

	// Admin seed config
	if cfg.AdminSeedEnabled, err = getBool("ADMIN_SEED_ENABLED", "false"); err != nil {
		return
	}
	cfg.AdminUsername = getEnv("ADMIN_USERNAME", "admin")
	cfg.AdminEmail = getEnv("ADMIN_EMAIL", "admin@localhost")
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "")
	if cfg.AdminSeedEnabled && cfg.AdminPassword == "" {
		err = errors.New("ADMIN_PASSWORD is required when ADMIN_SEED_ENABLED is true")
		return
	}

	return
}

// run initializes the logger, database, optional Redis cache, and HTTP server.
// It migrates the schema, seeds the administrator when enabled, sets up routes,
// and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel, serviceName); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("postgres connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	// Connect to Redis when the token cache is enabled
	var tokenCache services.TokenCache
	if cfg.RedisEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection error: %w", err)
		}
		defer rdb.Close()
		tokenCache = repositories.NewTokenCacheRepository(rdb, time.Duration(cfg.RedisExpSecond)*time.Second)
		logger.Log.Infof("Token cache enabled at %s:%d", cfg.RedisHost, cfg.RedisPort)
	}

	authService := newAuthService(db, tokenCache, cfg)

	if cfg.AdminSeedEnabled {
		if err := authService.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, cfg.PGDB),
	)

	r := newRouter(db, authService, tokens.New(cfg.TokenBytes), reg)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
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

// newAuthService wires repositories into the auth service. Writers and the
// user reader join the request transaction when one is open.
func newAuthService(db *sqlx.DB, tokenCache services.TokenCache, cfg config) *services.AuthService {
	txGetter := repositories.TxGetter(middlewares.GetTxFromContext)

	return services.NewAuthService(
		repositories.NewUserReadRepository(db, txGetter),
		repositories.NewUserWriteRepository(db, txGetter),
		repositories.NewTokenReadRepository(db),
		repositories.NewTokenWriteRepository(db, txGetter),
		tokenCache,
		tokens.New(cfg.TokenBytes),
		password.New(cfg.BcryptCost),
	)
}

// newRouter builds the HTTP routes. Each protected group runs its own
// authentication strategy followed by the guard.
func newRouter(db *sqlx.DB, authService *services.AuthService, tok *tokens.Tokens, reg *prometheus.Registry) chi.Router {
	basicAuth := middlewares.AuthMiddleware(middlewares.BasicStrategy(tok, authService))
	bearerAuth := middlewares.AuthMiddleware(middlewares.BearerStrategy(tok, authService))

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.NewMetrics(reg).Middleware)

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/auth/users", func(r chi.Router) {
		// Public routes
		r.Post("/", handlers.NewRegisterHandler(authService))

		// Username and password
		r.Group(func(r chi.Router) {
			r.Use(basicAuth, middlewares.GuardMiddleware)
			r.Post("/login", handlers.NewLoginHandler(authService))
		})

		// Bearer token
		r.Group(func(r chi.Router) {
			r.Use(bearerAuth, middlewares.GuardMiddleware)
			r.Post("/login/token", handlers.NewLoginTokenHandler())
			r.Get("/profilePic", handlers.NewProfilePicHandler())
			r.Get("/", handlers.NewListUsersHandler(authService))
			r.Get("/details", handlers.NewDetailsHandler())
			r.With(middlewares.TxMiddleware(db)).Post("/makeAdmin", handlers.NewMakeAdminHandler(authService))
		})
	})

	return r
}
