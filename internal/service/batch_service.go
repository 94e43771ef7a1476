package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tv-instance-generator/internal/dto"
	"github.com/noah-isme/tv-instance-generator/internal/generator"
	"github.com/noah-isme/tv-instance-generator/internal/models"
	"github.com/noah-isme/tv-instance-generator/internal/repository"
	appErrors "github.com/noah-isme/tv-instance-generator/pkg/errors"
	"github.com/noah-isme/tv-instance-generator/pkg/export"
	"github.com/noah-isme/tv-instance-generator/pkg/jobs"
)

// JobTypeBatch tags queue jobs produced by the batch service.
const JobTypeBatch = "instance_batch"

type batchJobStore interface {
	Create(ctx context.Context, job *models.BatchJob) error
	GetByID(ctx context.Context, id string) (*models.BatchJob, error)
	Update(ctx context.Context, id string, params repository.UpdateBatchJobParams) error
	ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.BatchJob, error)
	Delete(ctx context.Context, id string) error
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type configPreparer interface {
	Prepare(req dto.GenerateInstanceRequest) (generator.Config, error)
}

type artifactStore interface {
	ParseToken(token string, allowExpired bool) (ownerID, relPath string, expiresAt time.Time, err error)
	Read(relPath string) ([]byte, error)
	Delete(relPath string) error
	Cleanup(ttl time.Duration) ([]string, error)
}

type batchMetrics interface {
	RecordBatch(status models.BatchStatus)
}

// BatchServiceConfig governs batch limits and artifact cleanup.
type BatchServiceConfig struct {
	MaxBatchSize    int
	ResultTTL       time.Duration
	CleanupInterval time.Duration
}

// BatchDownload is a resolved artifact ready to stream.
type BatchDownload struct {
	Filename    string
	ContentType string
	Body        []byte
	ExpiresAt   time.Time
}

// BatchService accepts multi-instance export requests and tracks their jobs.
type BatchService struct {
	repo      batchJobStore
	queue     jobDispatcher
	preparer  configPreparer
	artifacts artifactStore
	metrics   batchMetrics
	validator *validator.Validate
	logger    *zap.Logger
	cfg       BatchServiceConfig
	newSeed   func() int64
}

// NewBatchService constructs the batch service.
func NewBatchService(repo batchJobStore, queue jobDispatcher, preparer configPreparer, artifacts artifactStore, metrics batchMetrics, validate *validator.Validate, logger *zap.Logger, cfg BatchServiceConfig) *BatchService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = 50
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = time.Hour
	}
	return &BatchService{
		repo:      repo,
		queue:     queue,
		preparer:  preparer,
		artifacts: artifacts,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		newSeed:   func() int64 { return generator.NewSource().Seed() },
	}
}

// CreateBatch validates the request, records a queued job and enqueues it.
func (s *BatchService) CreateBatch(ctx context.Context, req dto.BatchRequest) (*dto.BatchJobResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid batch payload")
	}
	if req.Count > s.cfg.MaxBatchSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("count must not exceed %d", s.cfg.MaxBatchSize))
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, err.Error())
	}
	cfg, err := s.preparer.Prepare(req.Config)
	if err != nil {
		return nil, err
	}

	seed := s.newSeed()
	if req.Config.Seed != nil {
		seed = *req.Config.Seed
	}
	job := &models.BatchJob{
		Status: models.BatchStatusQueued,
		Count:  req.Count,
		Format: string(format),
		Seed:   seed,
		Config: cfg,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create batch job")
	}
	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: JobTypeBatch}); err != nil {
		s.MarkFailed(ctx, job.ID, "failed to enqueue job")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue batch job")
	}
	s.logger.Sugar().Infow("batch queued", "batch_id", job.ID, "count", job.Count, "format", job.Format, "seed", seed)
	return &dto.BatchJobResponse{ID: job.ID, Status: job.Status, Progress: job.Progress}, nil
}

// GetStatus exposes job progress.
func (s *BatchService) GetStatus(ctx context.Context, id string) (*dto.BatchStatusResponse, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "batch not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch job")
	}
	return &dto.BatchStatusResponse{
		ID:         job.ID,
		Status:     job.Status,
		Progress:   job.Progress,
		Count:      job.Count,
		Format:     job.Format,
		Seed:       job.Seed,
		ResultURL:  job.ResultURL,
		ExpiresAt:  job.ExpiresAt,
		FinishedAt: job.FinishedAt,
		Error:      job.ErrorMessage,
	}, nil
}

// ResolveDownload validates a signed token and loads the artifact it names.
func (s *BatchService) ResolveDownload(ctx context.Context, token string) (*BatchDownload, error) {
	jobID, relPath, expiresAt, err := s.artifacts.ParseToken(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "batch not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch job")
	}
	if job.ResultURL == nil || !strings.HasSuffix(*job.ResultURL, token) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "token mismatch")
	}
	if job.Status != models.BatchStatusFinished {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "batch not ready")
	}
	body, err := s.artifacts.Read(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "batch artifact no longer available")
	}
	format := export.Format(job.Format)
	return &BatchDownload{
		Filename:    path.Base(relPath),
		ContentType: format.ContentType(),
		Body:        body,
		ExpiresAt:   expiresAt,
	}, nil
}

// MarkFailed moves a job to FAILED. It is also the queue's give-up hook.
func (s *BatchService) MarkFailed(ctx context.Context, id, message string) {
	failed := models.BatchStatusFailed
	progress := 100
	now := time.Now().UTC()
	if err := s.repo.Update(ctx, id, repository.UpdateBatchJobParams{
		Status:       &failed,
		Progress:     &progress,
		ErrorMessage: &message,
		FinishedAt:   &now,
	}); err != nil {
		s.logger.Sugar().Warnw("failed to mark batch failed", "batch_id", id, "error", err)
		return
	}
	if s.metrics != nil {
		s.metrics.RecordBatch(failed)
	}
	s.logger.Sugar().Warnw("batch failed", "batch_id", id, "error", message)
}

// StartCleanup boots a goroutine that purges expired artifacts periodically.
func (s *BatchService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanupExpired(ctx)
			}
		}
	}()
}

func (s *BatchService) cleanupExpired(ctx context.Context) {
	cutoff := time.Now().Add(-s.cfg.ResultTTL)
	for {
		expired, err := s.repo.ListFinishedBefore(ctx, cutoff, 100)
		if err != nil {
			s.logger.Sugar().Warnw("cleanup list failed", "error", err)
			return
		}
		for _, job := range expired {
			if job.ResultPath != "" {
				if err := s.artifacts.Delete(job.ResultPath); err != nil {
					s.logger.Sugar().Warnw("cleanup delete failed", "batch_id", job.ID, "error", err)
				}
			}
			_ = s.repo.Delete(ctx, job.ID)
		}
		if len(expired) < 100 {
			break
		}
	}
	if removed, err := s.artifacts.Cleanup(s.cfg.ResultTTL); err != nil {
		s.logger.Sugar().Warnw("filesystem cleanup failed", "error", err)
	} else if len(removed) > 0 {
		s.logger.Sugar().Infow("expired batch artifacts removed", "count", len(removed))
	}
}

type batchRenderer interface {
	RenderBatch(batchID string, instances []generator.Instance, format export.Format) (*RenderedFile, error)
	Store(ownerID string, file *RenderedFile) (*ExportResult, error)
}

// BatchWorker bridges queue jobs to instance generation and export.
type BatchWorker struct {
	repo     batchJobStore
	renderer batchRenderer
	metrics  batchMetrics
	logger   *zap.Logger
}

// NewBatchWorker constructs a worker.
func NewBatchWorker(repo batchJobStore, renderer batchRenderer, metrics batchMetrics, logger *zap.Logger) *BatchWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchWorker{
		repo:     repo,
		renderer: renderer,
		metrics:  metrics,
		logger:   logger,
	}
}

// Handle processes a queue job. Instance i of a batch is generated from
// seed+i, so a batch is reproducible from its reported seed.
func (w *BatchWorker) Handle(ctx context.Context, job jobs.Job) error {
	record, err := w.repo.GetByID(ctx, job.ID)
	if err != nil {
		return err
	}
	processing := models.BatchStatusProcessing
	progress := 5
	if err := w.repo.Update(ctx, job.ID, repository.UpdateBatchJobParams{Status: &processing, Progress: &progress}); err != nil {
		return err
	}

	instances := make([]generator.Instance, 0, record.Count)
	for i := 0; i < record.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		instances = append(instances, generator.Generate(record.Config, generator.NewSeededSource(record.Seed+int64(i))))
		progress = 5 + (i+1)*85/record.Count
		if err := w.repo.Update(ctx, job.ID, repository.UpdateBatchJobParams{Progress: &progress}); err != nil {
			return err
		}
	}

	result, err := w.store(record, instances)
	if err != nil {
		msg := err.Error()
		queued := models.BatchStatusQueued
		reset := 0
		if updateErr := w.repo.Update(ctx, job.ID, repository.UpdateBatchJobParams{
			Status:       &queued,
			Progress:     &reset,
			ErrorMessage: &msg,
		}); updateErr != nil {
			w.logger.Sugar().Warnw("failed to requeue batch", "batch_id", job.ID, "error", updateErr)
		}
		return err
	}

	finished := models.BatchStatusFinished
	progress = 100
	now := time.Now().UTC()
	clear := ""
	if err := w.repo.Update(ctx, job.ID, repository.UpdateBatchJobParams{
		Status:       &finished,
		Progress:     &progress,
		ResultPath:   &result.RelativePath,
		ResultURL:    &result.URL,
		ExpiresAt:    &result.ExpiresAt,
		ErrorMessage: &clear,
		FinishedAt:   &now,
	}); err != nil {
		w.logger.Sugar().Warnw("failed to mark batch finished", "batch_id", job.ID, "error", err)
		return err
	}
	if w.metrics != nil {
		w.metrics.RecordBatch(finished)
	}
	w.logger.Sugar().Infow("batch finished", "batch_id", job.ID, "count", record.Count, "path", result.RelativePath)
	return nil
}

func (w *BatchWorker) store(record *models.BatchJob, instances []generator.Instance) (*ExportResult, error) {
	file, err := w.renderer.RenderBatch(record.ID, instances, export.Format(record.Format))
	if err != nil {
		return nil, fmt.Errorf("render batch: %w", err)
	}
	result, err := w.renderer.Store(record.ID, file)
	if err != nil {
		return nil, fmt.Errorf("store batch: %w", err)
	}
	return result, nil
}
