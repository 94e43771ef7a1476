package models

import "time"

// MetricsSnapshot summarises process counters for the JSON metrics endpoint.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	InstancesGenerated       uint64    `json:"instancesGenerated"`
	ProgramsGenerated        uint64    `json:"programsGenerated"`
	PreviewHitRatio          float64   `json:"previewHitRatio"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
