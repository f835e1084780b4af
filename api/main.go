package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/inventory-audit/internal/alert"
	"github.com/rogerio-castellano/inventory-audit/internal/auth"
	"github.com/rogerio-castellano/inventory-audit/internal/config"
	"github.com/rogerio-castellano/inventory-audit/internal/db"
	apphttp "github.com/rogerio-castellano/inventory-audit/internal/http"
	"github.com/rogerio-castellano/inventory-audit/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-audit/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-audit/internal/redissvc"
	"github.com/rogerio-castellano/inventory-audit/internal/repo"
)

// @title Inventory Audit API
// @version 1.0
// @description REST API for inventory tracking with a full change-log audit trail.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Could not load configuration: %v", err)
	}

	auth.Configure(cfg.JWT.Secret, cfg.JWT.AccessTTL)

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	redisService := redissvc.NewRedisService(rdb, ctx)
	alert.Configure(cfg.Alert, redisService)

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatal("❌ Could not run migrations:", err)
	}

	handlers.SetItemRepo(repo.NewPostgresItemRepository(database))
	handlers.SetCategoryRepo(repo.NewPostgresCategoryRepository(database))
	handlers.SetChangeLogRepo(repo.NewPostgresChangeLogRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))
	handlers.SetRefreshStore(auth.NewRefreshStore(rdb, cfg.JWT.RefreshTTL))

	go rl.StartVisitorCleanupLoop()
	go alert.StartDailySummary()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	r := apphttp.NewRouter()
	log.Printf("✅ Server running on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
