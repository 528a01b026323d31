package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"food-order-system/internal/config"
	"food-order-system/internal/database"
	"food-order-system/internal/httputil"
	"food-order-system/internal/logger"
	"food-order-system/internal/messaging"
	"food-order-system/internal/models"
	"food-order-system/internal/services/auth"
	"food-order-system/internal/services/cart"
	"food-order-system/internal/services/catalog"
	"food-order-system/internal/services/order"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to config file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		migrations = flag.String("migrations", "migrations", "Path to migrations directory")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New("food-order-api")
	requestID := logger.GenerateRequestID()

	log.Info("service_starting", "Starting food order API", requestID, map[string]any{
		"port": cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log, *migrations); err != nil {
		log.Error("service_failed", "Service failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, migrationsPath string) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	err = redisClient.Ping(pingCtx).Err()
	pingCancel()
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info("redis_connected", "Connected to Redis", requestID, nil)

	mqConn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer mqConn.Close()
	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(mqConn, log)

	// Identity layer
	tokens := auth.NewTokenManager(cfg.Auth)
	sessions := auth.NewRedisSessionStore(redisClient)
	authService := auth.NewService(auth.NewPostgresRepository(db), tokens, sessions, log, cfg.Auth.BcryptCost)
	authHandler := auth.NewHandler(authService, log)
	mw := auth.NewMiddleware(tokens)

	// Domain services
	catalogService := catalog.NewService(catalog.NewPostgresRepository(db), log)
	catalogHandler := catalog.NewHandler(catalogService, log)

	cartService := cart.NewService(cart.NewPostgresRepository(db), log)
	cartHandler := cart.NewHandler(cartService, log)

	orderService := order.NewService(order.NewPostgresRepository(db), publisher, log)
	orderHandler := order.NewHandler(orderService, log)

	mux := setupRoutes(log, db, mw, authHandler, catalogHandler, cartHandler, orderHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: mux,
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("API listening on port %d", cfg.Server.Port), requestID, nil)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

func setupRoutes(
	log *logger.Logger,
	db *database.DB,
	mw *auth.Middleware,
	authHandler *auth.Handler,
	catalogHandler *catalog.Handler,
	cartHandler *cart.Handler,
	orderHandler *order.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()
	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return httputil.WithLogging(log, h)
	}

	// Identity
	mux.HandleFunc("POST /api/v1/auth/register", wrap(authHandler.Register))
	mux.HandleFunc("POST /api/v1/auth/login", wrap(authHandler.Login))
	mux.HandleFunc("POST /api/v1/auth/refresh", wrap(authHandler.Refresh))
	mux.HandleFunc("GET /api/v1/auth/me", wrap(mw.Authenticate(authHandler.Me)))

	// Categories: reads for any authenticated caller, writes for admins
	mux.HandleFunc("GET /api/v1/categories", wrap(mw.Authenticate(catalogHandler.ListCategories)))
	mux.HandleFunc("GET /api/v1/categories/{id}", wrap(mw.Authenticate(catalogHandler.GetCategory)))
	mux.HandleFunc("POST /api/v1/categories", wrap(mw.RequireRole(models.RoleAdmin, catalogHandler.CreateCategory)))
	mux.HandleFunc("PUT /api/v1/categories/{id}", wrap(mw.RequireRole(models.RoleAdmin, catalogHandler.UpdateCategory)))
	mux.HandleFunc("DELETE /api/v1/categories/{id}", wrap(mw.RequireRole(models.RoleAdmin, catalogHandler.DeleteCategory)))

	// Menus
	mux.HandleFunc("GET /api/v1/menus", wrap(mw.Authenticate(catalogHandler.ListMenus)))
	mux.HandleFunc("GET /api/v1/menus/{id}", wrap(mw.Authenticate(catalogHandler.GetMenu)))
	mux.HandleFunc("POST /api/v1/menus", wrap(mw.RequireRole(models.RoleAdmin, catalogHandler.CreateMenu)))
	mux.HandleFunc("PUT /api/v1/menus/{id}", wrap(mw.RequireRole(models.RoleAdmin, catalogHandler.UpdateMenu)))
	mux.HandleFunc("DELETE /api/v1/menus/{id}", wrap(mw.RequireRole(models.RoleAdmin, catalogHandler.DeleteMenu)))

	// Cart: customer-only
	mux.HandleFunc("GET /api/v1/cart", wrap(mw.RequireRole(models.RoleCustomer, cartHandler.Get)))
	mux.HandleFunc("DELETE /api/v1/cart", wrap(mw.RequireRole(models.RoleCustomer, cartHandler.Clear)))
	mux.HandleFunc("POST /api/v1/cart/items", wrap(mw.RequireRole(models.RoleCustomer, cartHandler.AddItem)))
	mux.HandleFunc("PUT /api/v1/cart/items/{menuId}", wrap(mw.RequireRole(models.RoleCustomer, cartHandler.UpdateItem)))
	mux.HandleFunc("DELETE /api/v1/cart/items/{menuId}", wrap(mw.RequireRole(models.RoleCustomer, cartHandler.RemoveItem)))

	// Orders
	mux.HandleFunc("POST /api/v1/orders", wrap(mw.RequireRole(models.RoleCustomer, orderHandler.Create)))
	mux.HandleFunc("GET /api/v1/orders", wrap(mw.Authenticate(orderHandler.List)))
	mux.HandleFunc("GET /api/v1/orders/{id}", wrap(mw.Authenticate(orderHandler.Get)))
	mux.HandleFunc("PATCH /api/v1/orders/status", wrap(mw.RequireRole(models.RoleAdmin, orderHandler.UpdateStatus)))

	// Health
	startedAt := time.Now()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		healthy := db.Ping(ctx) == nil
		response := map[string]any{
			"status":         "ok",
			"uptime_seconds": int(time.Since(startedAt).Seconds()),
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
		}

		w.Header().Set("Content-Type", "application/json")
		if !healthy {
			response["status"] = "unhealthy"
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(response)
	})

	return mux
}
