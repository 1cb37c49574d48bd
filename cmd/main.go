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
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/bookie-app/bookie-api/internal/handlers"
	jwtpkg "github.com/bookie-app/bookie-api/internal/jwt"
	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/middlewares"
	"github.com/bookie-app/bookie-api/internal/models"
	"github.com/bookie-app/bookie-api/internal/repositories"
	"github.com/bookie-app/bookie-api/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title bookie-api
// @version 1.0.0
// @description REST backend for a book review service: accounts, token auth, books and reviews
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaAddr, kafkaTopic,
		jwtSecretKey, jwtAccessExpMinute, jwtRefreshExpHour,
		denylistTTLSecond,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaAddr, kafkaTopic,
		jwtSecretKey, jwtAccessExpMinute, jwtRefreshExpHour,
		denylistTTLSecond,
	); err != nil {
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

// parseConfig loads environment variables from a file and returns
// all application, database, Redis, Kafka, JWT, and denylist configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	kafkaAddr, kafkaTopic string,
	jwtSecretKey string, jwtAccessExpMinute, jwtRefreshExpHour int,
	denylistTTLSecond int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "bookie")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")

	// Kafka config, empty address disables audit events
	kafkaAddr = getEnv("KAFKA_ADDR", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "bookie-audit")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtAccessExpMinute, err = strconv.Atoi(getEnv("JWT_ACCESS_EXP_MINUTE", "3600")); err != nil {
		return
	}
	if jwtRefreshExpHour, err = strconv.Atoi(getEnv("JWT_REFRESH_EXP_HOUR", "48")); err != nil {
		return
	}

	// Denylist config
	if denylistTTLSecond, err = strconv.Atoi(getEnv("DENYLIST_TTL_SECOND", "3600")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	kafkaAddr, kafkaTopic string,
	jwtSecretKey string, jwtAccessExpMinute, jwtRefreshExpHour int,
	denylistTTLSecond int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL: %s", dsn)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Fatal("PostgreSQL connection error:", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Fatal("PostgreSQL ping failed:", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Redis connection error:", err)
	}
	defer rdb.Close()

	// Kafka writer for audit events, optional
	var kafkaWriter services.KafkaWriter
	if kafkaAddr != "" {
		w := &kafka.Writer{
			Addr:     kafka.TCP(kafkaAddr),
			Topic:    kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infof("Kafka audit events enabled, topic %s", kafkaTopic)
	} else {
		logger.Log.Info("Kafka address not set, audit events disabled")
	}

	// Initialize token service
	tokens := jwtpkg.New(
		jwtpkg.WithSecretKey(jwtSecretKey),
		jwtpkg.WithAccessExp(time.Duration(jwtAccessExpMinute)*time.Minute),
		jwtpkg.WithRefreshExp(time.Duration(jwtRefreshExpHour)*time.Hour),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db, middlewares.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	bookReadRepo := repositories.NewBookReadRepository(db, middlewares.GetTxFromContext)
	bookWriteRepo := repositories.NewBookWriteRepository(db, middlewares.GetTxFromContext)
	reviewWriteRepo := repositories.NewReviewWriteRepository(db, middlewares.GetTxFromContext)
	denylistRepo := repositories.NewTokenDenylistRepository(rdb, time.Duration(denylistTTLSecond)*time.Second)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens, denylistRepo, kafkaWriter)
	bookService := services.NewBookService(bookReadRepo, bookWriteRepo)
	reviewService := services.NewReviewService(bookReadRepo, userReadRepo, reviewWriteRepo, kafkaWriter)

	// Initialize handlers
	signupHandler := handlers.NewSignupHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService)
	refreshHandler := handlers.NewRefreshHandler(authService)
	logoutHandler := handlers.NewLogoutHandler(authService)
	meHandler := handlers.NewMeHandler()
	listUsersHandler := handlers.NewListUsersHandler(authService)
	listBooksHandler := handlers.NewListBooksHandler(bookService)
	getBookHandler := handlers.NewGetBookHandler(bookService)
	createBookHandler := handlers.NewCreateBookHandler(bookService)
	updateBookHandler := handlers.NewUpdateBookHandler(bookService)
	deleteBookHandler := handlers.NewDeleteBookHandler(bookService)
	userBooksHandler := handlers.NewUserBooksHandler(bookService)
	createReviewHandler := handlers.NewCreateReviewHandler(reviewService)

	// Auth gates
	accessGate := middlewares.AuthMiddleware(tokens, denylistRepo, middlewares.TokenKindAccess)
	refreshGate := middlewares.AuthMiddleware(tokens, denylistRepo, middlewares.TokenKindRefresh)
	roleGate := middlewares.RoleMiddleware(userReadRepo, models.RoleAdmin, models.RoleUser)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/signup", signupHandler)
		r.Post("/auth/login", loginHandler)

		// Refresh-token gate
		r.Group(func(r chi.Router) {
			r.Use(refreshGate)
			r.Get("/auth/refresh", refreshHandler)
		})

		// Access-token gate
		r.Group(func(r chi.Router) {
			r.Use(accessGate)

			r.Get("/auth/logout", logoutHandler)

			r.Group(func(r chi.Router) {
				r.Use(roleGate)
				r.Get("/auth/me", meHandler)
				r.Get("/auth/users", listUsersHandler)
			})

			r.Get("/books", listBooksHandler)
			r.Post("/books", createBookHandler)
			r.Get("/books/{uid}", getBookHandler)
			r.Patch("/books/{uid}", updateBookHandler)
			r.Delete("/books/{uid}", deleteBookHandler)
			r.Get("/users/{uid}/books", userBooksHandler)

			// Review creation runs inside one transaction
			r.Group(func(r chi.Router) {
				r.Use(roleGate)
				r.Use(middlewares.TxMiddleware(db))
				r.Post("/reviews/book/{uid}", createReviewHandler)
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
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

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
