package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tv-instance-generator/internal/dto"
	"github.com/noah-isme/tv-instance-generator/internal/generator"
	"github.com/noah-isme/tv-instance-generator/internal/models"
	appErrors "github.com/noah-isme/tv-instance-generator/pkg/errors"
	"github.com/noah-isme/tv-instance-generator/pkg/export"
)

// PreviewRepository stores generated previews for a bounded time.
type PreviewRepository interface {
	Save(ctx context.Context, preview *models.Preview, ttl time.Duration) error
	Get(ctx context.Context, id string) (*models.Preview, error)
	Delete(ctx context.Context, id string) error
}

type instanceRenderer interface {
	RenderInstance(inst generator.Instance, format export.Format, title string) (*RenderedFile, error)
}

type generationMetrics interface {
	ObserveGeneration(source string, programs int)
	RecordPreviewLookup(hit bool)
}

// InstanceServiceConfig governs request validation and preview lifetime.
type InstanceServiceConfig struct {
	Strict      bool
	MaxChannels int
	PreviewTTL  time.Duration
}

// InstanceService generates scheduling instances and keeps them as previews
// until they are downloaded or cleared.
type InstanceService struct {
	previews  PreviewRepository
	renderer  instanceRenderer
	metrics   generationMetrics
	validator *validator.Validate
	logger    *zap.Logger
	cfg       InstanceServiceConfig
	newSeed   func() int64
}

// NewInstanceService wires instance generation dependencies.
func NewInstanceService(previews PreviewRepository, renderer instanceRenderer, metrics generationMetrics, validate *validator.Validate, logger *zap.Logger, cfg InstanceServiceConfig) *InstanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PreviewTTL <= 0 {
		cfg.PreviewTTL = 30 * time.Minute
	}
	if cfg.MaxChannels <= 0 {
		cfg.MaxChannels = 50
	}
	return &InstanceService{
		previews:  previews,
		renderer:  renderer,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		newSeed:   func() int64 { return generator.NewSource().Seed() },
	}
}

// Generate validates the request, builds an instance and stores it as a preview.
func (s *InstanceService) Generate(ctx context.Context, req dto.GenerateInstanceRequest) (*dto.InstancePreviewResponse, error) {
	return s.generate(ctx, req, models.PreviewSourceRequest, "")
}

// GenerateFromPreset runs a named preset, optionally pinning the seed.
func (s *InstanceService) GenerateFromPreset(ctx context.Context, preset *dto.PresetResponse, seed *int64) (*dto.InstancePreviewResponse, error) {
	if preset == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "preset not found")
	}
	req := preset.Config
	if seed != nil {
		req.Seed = seed
	}
	return s.generate(ctx, req, models.PreviewSourcePreset, preset.Name)
}

func (s *InstanceService) generate(ctx context.Context, req dto.GenerateInstanceRequest, source models.PreviewSource, preset string) (*dto.InstancePreviewResponse, error) {
	cfg, err := s.Prepare(req)
	if err != nil {
		return nil, err
	}

	seed := s.newSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	inst := generator.Generate(cfg, generator.NewSeededSource(seed))
	summary := generator.Summarize(inst)

	preview := &models.Preview{
		ID:        uuid.NewString(),
		Seed:      seed,
		Source:    source,
		Preset:    preset,
		Config:    cfg,
		Instance:  inst,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.previews.Save(ctx, preview, s.cfg.PreviewTTL); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store preview")
	}
	if s.metrics != nil {
		s.metrics.ObserveGeneration(string(source), summary.Programs)
	}
	s.logger.Sugar().Infow("instance generated",
		"preview_id", preview.ID,
		"source", source,
		"seed", seed,
		"channels", summary.Channels,
		"programs", summary.Programs,
	)

	return toPreviewResponse(preview), nil
}

// Prepare validates a request and converts it into generator input. It is
// shared with batch exports so both paths accept the same configurations.
func (s *InstanceService) Prepare(req dto.GenerateInstanceRequest) (generator.Config, error) {
	if err := s.validator.Struct(req); err != nil {
		return generator.Config{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instance generation payload")
	}
	if req.ChannelsCount > s.cfg.MaxChannels {
		return generator.Config{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("channels_count must not exceed %d", s.cfg.MaxChannels))
	}
	cfg := req.ToConfig()
	if s.cfg.Strict {
		if err := generator.Validate(cfg); err != nil {
			return generator.Config{}, err
		}
	}
	return cfg, nil
}

// Get returns a stored preview.
func (s *InstanceService) Get(ctx context.Context, id string) (*dto.InstancePreviewResponse, error) {
	preview, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPreviewResponse(preview), nil
}

// Clear drops a preview. Clearing an unknown id is not an error.
func (s *InstanceService) Clear(ctx context.Context, id string) error {
	if err := s.previews.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear preview")
	}
	s.logger.Sugar().Infow("preview cleared", "preview_id", id)
	return nil
}

// Export renders a stored preview for download.
func (s *InstanceService) Export(ctx context.Context, id, rawFormat string) (*RenderedFile, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, err.Error())
	}
	preview, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	file, err := s.renderer.RenderInstance(preview.Instance, format, "TV scheduling instance "+preview.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render instance")
	}
	return file, nil
}

// Defaults returns the form defaults as a request body.
func (s *InstanceService) Defaults() dto.GenerateInstanceRequest {
	return dto.DefaultGenerateInstanceRequest()
}

// Genres returns the genre vocabulary.
func (s *InstanceService) Genres() []string {
	return generator.Genres()
}

func (s *InstanceService) load(ctx context.Context, id string) (*models.Preview, error) {
	preview, err := s.previews.Get(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			if s.metrics != nil {
				s.metrics.RecordPreviewLookup(false)
			}
			return nil, appErrors.Clone(appErrors.ErrNotFound, "preview not found or expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load preview")
	}
	if s.metrics != nil {
		s.metrics.RecordPreviewLookup(true)
	}
	return preview, nil
}

func toPreviewResponse(p *models.Preview) *dto.InstancePreviewResponse {
	return &dto.InstancePreviewResponse{
		Mode:        dto.ModePreview,
		PreviewID:   p.ID,
		Seed:        p.Seed,
		Source:      string(p.Source),
		Preset:      p.Preset,
		Summary:     generator.Summarize(p.Instance),
		Instance:    p.Instance,
		GeneratedAt: p.CreatedAt,
		ExpiresAt:   p.ExpiresAt,
	}
}
