package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/erika-dalmagro/orders-app-backend/internal/cache"
	"github.com/erika-dalmagro/orders-app-backend/internal/config"
	"github.com/erika-dalmagro/orders-app-backend/internal/es"
	"github.com/erika-dalmagro/orders-app-backend/internal/handlers"
	"github.com/erika-dalmagro/orders-app-backend/internal/logging"
	"github.com/erika-dalmagro/orders-app-backend/internal/mykafka"
	"github.com/erika-dalmagro/orders-app-backend/internal/repo"
	"github.com/erika-dalmagro/orders-app-backend/internal/service"
	httpserver "github.com/erika-dalmagro/orders-app-backend/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		brokers := []string{configuration.KAFKA_ADDRESS}
		topics := []string{"product_events", "table_events", "order_events"}
		prod, err = mykafka.NewProducer(brokers, topics)
		if err != nil {
			log.Fatal(err)
		}
	}

	store := &repo.GormRepo{DB: db}

	var products repo.ProductRepo = store
	if configuration.REDIS_ADDRESS != "" {
		rdb, err := cache.ConnectRedis(configuration.REDIS_ADDRESS)
		if err != nil {
			log.Fatal(err)
		}
		products = cache.NewCachedProductRepo(store, rdb)
	}

	searchHandler := &handlers.SearchHandler{Index: "products"}
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		searchHandler.ES = esClient
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(httpserver.RequestLogger(logger))

	deps := httpserver.Deps{
		ProductHandler: &handlers.ProductHandler{Svc: &service.ProductService{Products: products, Store: store}, Producer: prod},
		TableHandler:   &handlers.TableHandler{Svc: &service.TableService{Store: store}, Producer: prod},
		OrderHandler:   &handlers.OrderHandler{Svc: &service.OrderService{Store: store}, Producer: prod},
		SearchHandler:  searchHandler,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDRESS,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if prod != nil {
		if err := prod.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
