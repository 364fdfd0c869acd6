package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"delivery-tracking/internal/config"
	"delivery-tracking/internal/db"
	"delivery-tracking/internal/events"
	"delivery-tracking/internal/httpapi"
	"delivery-tracking/internal/logging"
	"delivery-tracking/internal/order"
	"delivery-tracking/internal/places"
	"delivery-tracking/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("configuration loaded", zap.Stringer("config", cfg))

	// Open DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("open db", zap.Error(err))
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Warn("close db", zap.Error(err))
		}
	}()

	drivers := repository.NewDriverRepository(d)
	orders := repository.NewOrderRepository(d)
	locations := repository.NewLocationRepository(d)

	resolver := places.New(cfg.Places.APIKey, cfg.Places.BaseURL, logger)

	// Order events are optional; without a broker URL the publisher stays nil
	// and publishing is a no-op.
	var publisher *events.Publisher
	if cfg.Events.AMQPURL != "" {
		publisher, err = events.Dial(cfg.Events.AMQPURL)
		if err != nil {
			logger.Fatal("connect to broker", zap.Error(err))
		}
		defer publisher.Close()
	}

	svc := order.NewService(orders, locations, drivers, resolver, publisher, logger)
	server := httpapi.NewServer(logger, svc, resolver, drivers, locations, cfg.Auth.JWTSecret)

	shutdown, err := httpapi.Start(cfg, server)
	if err != nil {
		logger.Fatal("start http server", zap.Error(err))
	}
	logger.Info("http server listening", zap.String("address", cfg.HTTP.Address))

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
}
