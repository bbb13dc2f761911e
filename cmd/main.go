package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockroom/internal/api"
	custommw "stockroom/internal/api/middleware"
	"stockroom/internal/config"
	"stockroom/internal/db"
	"stockroom/internal/feed"
	"stockroom/internal/models"
	"stockroom/internal/notify"
	"stockroom/internal/reports"
	"stockroom/internal/repository"
	"stockroom/internal/security"
	"stockroom/internal/services"
	"stockroom/internal/tasks"
	"stockroom/internal/utils/crypto"
	"stockroom/internal/utils/logger"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	log := logger.New("stockroom")

	// check if .env file exists
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		log.Info("No .env file found, skipping environment variable loading")
	} else {
		log.Info("Loading environment variables from .env file")
		if err := godotenv.Load(); err != nil {
			stdlog.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	cfg := config.Load()

	// Initialize keys
	if err := crypto.InitializeKeys(cfg.Crypto.PrivateKey); err != nil {
		stdlog.Fatalf("Failed to initialize keys: %v", err)
	}

	// Connect to database
	if err := db.Connect(cfg); err != nil {
		stdlog.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			stdlog.Fatalf("Failed to close database connection: %v", err)
		}
	}()

	if err := models.CreateAdminFromEnv(db.GetDB()); err != nil {
		log.Warn("Warning: Failed to create admin account: %v", err)
	}

	store := repository.NewGormStore(db.GetDB())
	sec := security.NewService()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	productFeed := feed.New(rdb)
	productFeed.Subscribe()

	mailer := notify.NewMailer(cfg.SMTP, cfg.Server.PublicURL)

	var uploader reports.Uploader
	if cfg.Storage.Bucket != "" {
		s3Store, err := reports.NewS3Store(cfg.Storage)
		if err != nil {
			stdlog.Fatalf("Failed to initialize report storage: %v", err)
		}
		uploader = s3Store
	}
	generator := reports.NewGenerator(store, uploader)

	// Task queue client doubles as the activation notifier
	taskClient := tasks.NewTaskClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer taskClient.Close()

	employeeService := services.NewEmployeeService(store, sec, taskClient)
	productService := services.NewProductService(store, sec)
	warehouseService := services.NewWarehouseService(store, sec)
	taskService := services.NewTaskService(store, sec)

	// Initialize task handlers
	taskHandler := tasks.NewTaskHandler(store, mailer, productFeed, generator)

	// Initialize task server
	taskServer := tasks.NewServer(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Worker.Concurrency, taskHandler)

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	go func() {
		if err := taskServer.Start(serverCtx); err != nil {
			log.Error("Task server error", err)
		}
	}()

	// Initialize task scheduler
	taskScheduler := tasks.NewScheduler(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	go func() {
		if err := taskScheduler.Start(); err != nil {
			log.Error("Task scheduler error", err)
		}
	}()

	// Initialize API server
	apiServer := api.NewServer(cfg, &api.Services{
		Employees:  employeeService,
		Products:   productService,
		Warehouses: warehouseService,
		Tasks:      taskService,
		Security:   &api.AuthServices{Middleware: custommw.NewAuthMiddleware(sec)},
		Feed:       productFeed,
	})
	go func() {
		log.Success("API server started on port %s", cfg.Server.Port)
		if err := apiServer.Start(); err != nil {
			log.Error("API server error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the servers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	taskScheduler.Stop()
	taskServer.Shutdown()
	serverCancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error("Failed to shutdown API server", err)
	}

	log.Info("Servers shutdown gracefully")
}
