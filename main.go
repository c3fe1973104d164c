package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"youtube-fetcher/infrastructure/cache"
	youtubeclient "youtube-fetcher/infrastructure/clients/youtube"
	"youtube-fetcher/infrastructure/configuration"
	"youtube-fetcher/infrastructure/logger"
	"youtube-fetcher/infrastructure/persistence"
	"youtube-fetcher/infrastructure/queue"
	"youtube-fetcher/infrastructure/scraper"
	"youtube-fetcher/infrastructure/thumbnails"
	"youtube-fetcher/infrastructure/worker"
	httpHandler "youtube-fetcher/interfaces/http"
	"youtube-fetcher/server"
	"youtube-fetcher/usecase"

	"golang.org/x/sync/errgroup"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	cfg := configuration.C

	redisCache, err := cache.NewCache(ctx, cfg.RedisClient.Host, cfg.RedisClient.Port, cfg.RedisClient.Password, cfg.RedisClient.Database)
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Redis initialization failed")
	}

	jobStore := persistence.NewJobStore(redisCache)
	jobQueue := queue.NewJobQueue(redisCache)

	htmlScraper := scraper.NewScraper(cfg.YouTube.Cookies, cfg.YouTube.UserAgent)
	debugStore := thumbnails.NewFileDebugStore(cfg.YouTube.ThumbnailDir)
	thumbnailFetcher := thumbnails.NewFetcher(htmlScraper, debugStore)

	responseCache, err := youtubeclient.NewResponseCache(cfg.YouTube.CacheDir)
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("YouTube response cache initialization failed")
	}
	rotator := youtubeclient.NewKeyRotator(cfg.YouTube.APIKeys)
	dataAPI := youtubeclient.NewDataAPI(cfg.YouTube.Mode, rotator, responseCache)

	jobUseCase := usecase.NewJobUseCase(jobStore, jobQueue)
	youtubeUseCase := usecase.NewYouTubeUseCase(dataAPI)

	jobHandler := httpHandler.NewJobHandler(jobUseCase)
	youtubeHandler := httpHandler.NewYouTubeHandler(youtubeUseCase)

	router := server.InitiateRouter(jobHandler, youtubeHandler, cfg.App.APIKey)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	pool := worker.NewPool(jobStore, jobQueue, htmlScraper, thumbnailFetcher, cfg.Worker.Count)
	g.Go(func() error {
		return pool.Run(ctx)
	})

	g.Go(func() error {
		logger.GetLogger().WithField("port", cfg.App.Port).Info("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		select {
		case sig := <-interrupt:
			logger.GetLogger().WithField("signal", sig.String()).Info("Shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Service exited with error")
	}
}
