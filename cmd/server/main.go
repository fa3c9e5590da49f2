package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Skotchmaster/course_shop/internal/config"
	"github.com/Skotchmaster/course_shop/internal/db"
	"github.com/Skotchmaster/course_shop/internal/es"
	"github.com/Skotchmaster/course_shop/internal/httpserver"
	"github.com/Skotchmaster/course_shop/internal/logging"
	loggingmw "github.com/Skotchmaster/course_shop/internal/middleware/logging"
	"github.com/Skotchmaster/course_shop/internal/middleware/metrics"
	"github.com/Skotchmaster/course_shop/internal/mykafka"
	"github.com/Skotchmaster/course_shop/internal/repo"
	"github.com/Skotchmaster/course_shop/internal/seed"
	"github.com/Skotchmaster/course_shop/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL, db.WithPool(db.Pool(cfg.DBPool)))
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	users := &repo.UserRepo{DB: gdb}
	categories := &repo.CategoryRepo{DB: gdb}
	products := &repo.ProductRepo{DB: gdb}
	orders := &repo.OrderRepo{DB: gdb}

	userSvc := &service.UserService{Repo: users, Topic: cfg.KafkaUserTopic}
	var prod *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatal(err)
		}
		userSvc.Events = prod
	} else {
		logger.Warn("kafka disabled", "reason", "KAFKA_BROKERS is empty")
	}

	productSvc := &service.ProductService{Repo: products}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatal(err)
		}
		productSvc.Search = &es.ProductIndex{ES: esClient, Index: cfg.ESIndex}
	} else {
		logger.Warn("search disabled", "reason", "ES_URL is empty")
	}

	if cfg.SeedData {
		seedCtx := logging.IntoContext(context.Background(), logger)
		if err := seed.Run(seedCtx, seed.Repos{Users: users, Categories: categories, Products: products, Orders: orders}); err != nil {
			log.Fatal(err)
		}
	}
	if n, err := productSvc.Reindex(context.Background()); err != nil {
		logger.Error("reindex_failed", "error", err)
	} else if n > 0 {
		logger.Info("reindex_completed", "products", n)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(metrics.New(reg).Middleware())
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{DisablePrintStack: true}))

	httpserver.Register(e, &httpserver.Deps{
		DB:              gdb,
		UserHandler:     &httpserver.UserHTTP{Svc: userSvc},
		OrderHandler:    &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: orders}},
		ProductHandler:  &httpserver.ProductHTTP{Svc: productSvc},
		CategoryHandler: &httpserver.CategoryHTTP{Svc: &service.CategoryService{Repo: categories}},
		Gatherer:        reg,
		SearchEnabled:   productSvc.Search != nil,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if prod != nil {
		if err := prod.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
