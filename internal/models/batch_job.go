package models

import (
	"time"

	"github.com/noah-isme/tv-instance-generator/internal/generator"
)

// BatchStatus captures background job lifecycle states.
type BatchStatus string

const (
	BatchStatusQueued     BatchStatus = "QUEUED"
	BatchStatusProcessing BatchStatus = "PROCESSING"
	BatchStatusFinished   BatchStatus = "FINISHED"
	BatchStatusFailed     BatchStatus = "FAILED"
)

// BatchJob tracks one asynchronous multi-instance export.
type BatchJob struct {
	ID           string           `json:"id"`
	Status       BatchStatus      `json:"status"`
	Progress     int              `json:"progress"`
	Count        int              `json:"count"`
	Format       string           `json:"format"`
	Seed         int64            `json:"seed"`
	Config       generator.Config `json:"config"`
	ResultPath   string           `json:"-"`
	ResultURL    *string          `json:"result_url,omitempty"`
	ExpiresAt    *time.Time       `json:"expires_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	FinishedAt   *time.Time       `json:"finished_at,omitempty"`
	ErrorMessage *string          `json:"error_message,omitempty"`
}

// Terminal reports whether the job reached a final state.
func (j BatchJob) Terminal() bool {
	return j.Status == BatchStatusFinished || j.Status == BatchStatusFailed
}
