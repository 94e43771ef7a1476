package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/tv-instance-generator/api/swagger"
	"github.com/noah-isme/tv-instance-generator/internal/handler"
	"github.com/noah-isme/tv-instance-generator/internal/repository"
	"github.com/noah-isme/tv-instance-generator/internal/service"
	"github.com/noah-isme/tv-instance-generator/pkg/cache"
	"github.com/noah-isme/tv-instance-generator/pkg/config"
	"github.com/noah-isme/tv-instance-generator/pkg/jobs"
	"github.com/noah-isme/tv-instance-generator/pkg/logger"
	"github.com/noah-isme/tv-instance-generator/pkg/storage"
)

// @title TV Instance Generator API
// @version 1.0.0
// @description Synthesizes randomized TV-channel scheduling instances.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	checks := map[string]handler.ReadinessCheck{}
	previews, redisClient, err := newPreviewRepository(ctx, cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("preview store unavailable", "store", cfg.Preview.Store, "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
		checks["redis"] = func(c *gin.Context) error {
			return redisClient.Ping(c.Request.Context()).Err()
		}
	}

	presetSvc, err := service.NewPresetService(cfg.Presets.File, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to load presets", "file", cfg.Presets.File, "error", err)
	}

	var (
		fileStore *storage.LocalStorage
		signer    *storage.SignedURLSigner
	)
	if cfg.Exports.Enabled {
		fileStore, err = storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to prepare export storage", "dir", cfg.Exports.StorageDir, "error", err)
		}
		signer = storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	}
	exportSvc := service.NewExportService(fileStore, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, logr)

	validate := validator.New()
	instanceSvc := service.NewInstanceService(previews, exportSvc, metricsSvc, validate, logr, service.InstanceServiceConfig{
		Strict:      cfg.Generator.Strict,
		MaxChannels: cfg.Generator.MaxChannels,
		PreviewTTL:  cfg.Preview.TTL,
	})

	handlers := routeHandlers{
		instances: handler.NewInstanceHandler(instanceSvc),
		presets:   handler.NewPresetHandler(presetSvc, instanceSvc),
		metrics:   handler.NewMetricsHandler(metricsSvc, checks),
	}

	if cfg.Exports.Enabled {
		batchRepo := repository.NewBatchRepository()
		worker := service.NewBatchWorker(batchRepo, exportSvc, metricsSvc, logr)
		var batchSvc *service.BatchService
		queue := jobs.NewQueue(service.JobTypeBatch, worker.Handle, jobs.QueueConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
			RetryDelay: 2 * time.Second,
			Logger:     logr,
			OnFailure: func(job jobs.Job, err error) {
				batchSvc.MarkFailed(context.Background(), job.ID, err.Error())
			},
		})
		batchSvc = service.NewBatchService(batchRepo, queue, instanceSvc, exportSvc, metricsSvc, validate, logr, service.BatchServiceConfig{
			MaxBatchSize:    cfg.Exports.MaxBatchSize,
			ResultTTL:       cfg.Exports.SignedURLTTL,
			CleanupInterval: cfg.Exports.CleanupInterval,
		})
		queue.Start(ctx)
		defer queue.Stop()
		batchSvc.StartCleanup(ctx)
		handlers.batches = handler.NewBatchHandler(batchSvc)
	}

	router := newRouter(cfg, logr, metricsSvc, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "previewStore", cfg.Preview.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

func newPreviewRepository(ctx context.Context, cfg *config.Config, logr *zap.Logger) (service.PreviewRepository, *redis.Client, error) {
	if cfg.Preview.Store != config.PreviewStoreRedis {
		return repository.NewMemoryPreviewRepository(), nil, nil
	}
	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewRedisPreviewRepository(client, logr), client, nil
}
