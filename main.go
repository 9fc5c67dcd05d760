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

	"github.com/raushankrgupta/virtual-closet/api"
	"github.com/raushankrgupta/virtual-closet/closet"
	"github.com/raushankrgupta/virtual-closet/config"
	"github.com/raushankrgupta/virtual-closet/generation"
	"github.com/raushankrgupta/virtual-closet/history"
	"github.com/raushankrgupta/virtual-closet/profile"
	"github.com/raushankrgupta/virtual-closet/utils"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	logger, err := utils.NewLogger(config.IsDev(), config.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	var (
		historyStore history.Store
		profileStore api.ProfileStore
	)
	if config.DatabaseEnabled() {
		if err := utils.ConnectMongo(config.MongoURI); err != nil {
			logger.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		historyStore = history.NewMongoStore(utils.GetCollection(history.CollectionName))
		profileStore = profile.NewMongoStore(utils.GetCollection(profile.CollectionName))
	} else {
		logger.Warn("MONGO_URI not set, history and profiles are kept in memory")
		historyStore = history.NewMemoryStore()
		profileStore = profile.NewMemoryStore()
	}

	ctx := context.Background()

	var images utils.ImageStore
	if config.StorageEnabled() {
		s3Store, err := utils.NewS3ImageStore(ctx)
		if err != nil {
			logger.Fatal("failed to initialize S3", zap.Error(err))
		}
		images = s3Store
	} else {
		logger.Warn("AWS_BUCKET_NAME not set, image uploads disabled")
	}

	var generator generation.Generator
	if config.GenerateURL != "" {
		generator = generation.NewClient(config.GenerateURL)
		logger.Info("using remote generation endpoint", zap.String("url", config.GenerateURL))
	} else {
		gemini, err := generation.NewGemini(ctx, config.GeminiAPIKey, config.GeminiModel)
		if err != nil {
			logger.Fatal("failed to initialize Gemini", zap.Error(err))
		}
		defer gemini.Close()
		generator = gemini
	}

	var verifier api.TokenVerifier
	if config.GoogleClientID != "" {
		verifier = api.GoogleTokenVerifier(config.GoogleClientID)
	} else {
		logger.Warn("GOOGLE_CLIENT_ID not set, sign-in disabled")
	}

	handler := &api.Handler{
		Closets: closet.NewRegistry(func(s *closet.Session) {
			s.Canvas.SetBounds(config.CanvasWidth, config.CanvasHeight)
		}),
		History:         historyStore,
		Generation:      generation.NewService(generator, historyStore, config.GeneratedTextCap, logger),
		Generator:       generator,
		TextCap:         config.GeneratedTextCap,
		Profiles:        profileStore,
		Images:          images,
		VerifyIDToken:   verifier,
		BrowserFallback: config.BrowserFallback,
		Logger:          logger,
	}

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      api.NewRouter(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", config.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if err := utils.DisconnectMongo(shutdownCtx); err != nil {
		logger.Error("failed to disconnect MongoDB", zap.Error(err))
	}
	logger.Info("server stopped")
}
