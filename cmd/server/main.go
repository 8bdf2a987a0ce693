package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/ai-learning-backend/internal/conf"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/injector"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
	logLevel   = flag.String("log-level", "", "override log.level (debug, info, warn, error)")
	logFormat  = flag.String("log-format", "", "override log.format (json, console)")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	var logOpts []logger.Option
	if *logLevel != "" {
		logOpts = append(logOpts, logger.WithLevel(*logLevel))
	}
	if *logFormat != "" {
		logOpts = append(logOpts, logger.WithFormat(*logFormat))
	}

	log, err := logger.New(&config.Log, logOpts...)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()
	logger.SetGlobal(log)

	log.Info("config loaded successfully",
		zap.String("header_policy", config.Auth.HeaderPolicy),
		zap.String("model", config.AI.Model))

	gin.SetMode(gin.ReleaseMode)

	app, cleanup, err := injector.InitializeApp(config, log)
	if err != nil {
		log.Fatal("failed to initialize application", zap.Error(err))
	}
	defer cleanup()

	go func() {
		if err := app.HTTPServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully", zap.String("addr", config.Server.Addr()))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.HTTPServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
