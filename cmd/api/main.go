package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hestia-ledger-api/internal/asset"
	"hestia-ledger-api/internal/cache"
	"hestia-ledger-api/internal/config"
	"hestia-ledger-api/internal/handler"
	"hestia-ledger-api/internal/middleware"
	"hestia-ledger-api/internal/repository"
	"hestia-ledger-api/internal/router"
	"hestia-ledger-api/internal/service"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Hestia Ledger API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize the slot store
	var slotStore repository.SlotStore
	switch cfg.LedgerDB.Type {
	case "memory":
		slotStore = repository.NewMemorySlotStore()
		log.Println("In-memory slot store initialized")
	default: // sqlite
		sqliteStore, err := repository.NewSQLiteSlotStore(cfg.LedgerDB.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite slot store: %v", err)
		}
		slotStore = sqliteStore
		log.Println("SQLite slot store initialized")
	}
	defer slotStore.Close()

	// Initialize the MySQL asset database
	assetDB, err := sql.Open("mysql", cfg.AssetDB.DSN())
	if err != nil {
		log.Fatalf("Failed to open asset database: %v", err)
	}
	assetDB.SetMaxOpenConns(10)
	assetDB.SetMaxIdleConns(5)
	assetDB.SetConnMaxLifetime(5 * time.Minute)
	defer assetDB.Close()

	var transferService asset.TransferService
	if err := assetDB.Ping(); err != nil {
		log.Printf("Warning: asset database unreachable, using in-memory transfers: %v", err)
		transferService = asset.NewMemoryTransferService()
	} else {
		mysqlTransfers, err := asset.NewMySQLTransferService(assetDB)
		if err != nil {
			log.Fatalf("Failed to initialize transfer service: %v", err)
		}
		transferService = mysqlTransfers
		log.Println("MySQL transfer service initialized")
	}

	// Initialize the session cache
	var sessionCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Fatalf("Failed to initialize Redis cache: %v", err)
		}
		defer redisCache.Close()
		sessionCache = redisCache
		log.Println("Redis session cache initialized")
	default: // memory
		memCache := cache.NewMemoryCache()
		defer memCache.Close()
		sessionCache = memCache
		log.Println("In-memory session cache initialized")
	}

	// Initialize services
	tokenService := service.NewTokenService(sessionCache)
	protocolService := service.NewProtocolService(slotStore, nil)
	restaurantService := service.NewRestaurantService(slotStore, nil)
	inventoryService := service.NewInventoryService(slotStore, nil)
	menuService := service.NewMenuService(slotStore)
	orderService := service.NewOrderService(slotStore, transferService, nil)

	// Initialize handlers
	healthHandler := handler.New()
	authHandler := handler.NewAuthHandler(tokenService, cfg.App.EnrollKeyList())
	protocolHandler := handler.NewProtocolHandler(protocolService)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	menuHandler := handler.NewMenuHandler(menuService)
	orderHandler := handler.NewOrderHandler(orderService)

	// Create auth middleware with injected dependencies
	authMiddleware := middleware.NewAuthMiddleware(middleware.AuthConfig{
		TokenService: tokenService,
	})

	// Create router
	r := router.New(router.Config{
		Handler:           healthHandler,
		AuthHandler:       authHandler,
		ProtocolHandler:   protocolHandler,
		RestaurantHandler: restaurantHandler,
		InventoryHandler:  inventoryHandler,
		MenuHandler:       menuHandler,
		OrderHandler:      orderHandler,
		AuthMiddleware:    authMiddleware,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
