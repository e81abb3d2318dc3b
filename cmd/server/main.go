package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/flashmarket/backend/internal/config"
	"github.com/flashmarket/backend/internal/es"
	"github.com/flashmarket/backend/internal/httpserver"
	"github.com/flashmarket/backend/internal/logging"
	"github.com/flashmarket/backend/internal/middleware/loggingmw"
	"github.com/flashmarket/backend/internal/mykafka"
	"github.com/flashmarket/backend/internal/repo"
	"github.com/flashmarket/backend/internal/service"
	"github.com/flashmarket/backend/internal/storage"
)

const productIndex = "product"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer mykafka.Publisher
	var kafkaProd *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		kafkaProd = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		producer = kafkaProd
	} else {
		logger.Warn("KAFKA_ADDRESS not set, events disabled")
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		esClient = nil
	}

	r := repo.New(db)
	store := storage.NewFileStore(configuration.UPLOAD_DIR)

	catalogSvc := &service.CatalogService{Repo: r}
	orderSvc := service.NewOrderService(r)
	userSvc := &service.UserService{Repo: r}
	ownerSvc := &service.OwnerService{Repo: r}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:             db,
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogSvc, Producer: producer, ES: esClient, Index: productIndex},
		OrderHandler:   &httpserver.OrderHTTP{Svc: orderSvc, Producer: producer},
		UserHandler:    &httpserver.UserHTTP{Svc: userSvc, Producer: producer},
		OwnerHandler:   &httpserver.OwnerHTTP{Svc: ownerSvc},
		UploadHandler:  &httpserver.UploadHTTP{Store: store},
		SearchHandler:  &httpserver.SearchHTTP{ES: esClient, Index: productIndex},
		JWTSecret:      []byte(configuration.JWT_SECRET),
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db() error", "error", err)
	}

	if kafkaProd != nil {
		if err := kafkaProd.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
