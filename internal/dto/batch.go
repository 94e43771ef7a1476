package dto

import (
	"time"

	"github.com/noah-isme/tv-instance-generator/internal/models"
)

// BatchRequest captures POST /batches.
type BatchRequest struct {
	Config GenerateInstanceRequest `json:"config"`
	Count  int                     `json:"count" validate:"required,min=1"`
	Format string                  `json:"format" validate:"omitempty,oneof=json csv pdf"`
}

// BatchJobResponse is returned after enqueueing a batch.
type BatchJobResponse struct {
	ID       string             `json:"id"`
	Status   models.BatchStatus `json:"status"`
	Progress int                `json:"progress"`
}

// BatchStatusResponse exposes batch progress metadata.
type BatchStatusResponse struct {
	ID         string             `json:"id"`
	Status     models.BatchStatus `json:"status"`
	Progress   int                `json:"progress"`
	Count      int                `json:"count"`
	Format     string             `json:"format"`
	Seed       int64              `json:"seed"`
	ResultURL  *string            `json:"resultUrl,omitempty"`
	ExpiresAt  *time.Time         `json:"expiresAt,omitempty"`
	FinishedAt *time.Time         `json:"finishedAt,omitempty"`
	Error      *string            `json:"error,omitempty"`
}
