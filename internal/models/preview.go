package models

import (
	"time"

	"github.com/noah-isme/tv-instance-generator/internal/generator"
)

// PreviewSource records which entry point produced a preview.
type PreviewSource string

const (
	PreviewSourceRequest PreviewSource = "request"
	PreviewSourcePreset  PreviewSource = "preset"
)

// Preview is a generated instance held until it expires or is cleared.
type Preview struct {
	ID        string             `json:"id"`
	Seed      int64              `json:"seed"`
	Source    PreviewSource      `json:"source"`
	Preset    string             `json:"preset,omitempty"`
	Config    generator.Config   `json:"config"`
	Instance  generator.Instance `json:"instance"`
	CreatedAt time.Time          `json:"created_at"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// Expired reports whether the preview is past its lifetime at now.
func (p Preview) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && now.After(p.ExpiresAt)
}
