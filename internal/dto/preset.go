package dto

// PresetResponse describes a named generator configuration.
type PresetResponse struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Config      GenerateInstanceRequest `json:"config"`
}

// PresetGenerateRequest optionally pins the seed used for a preset run.
type PresetGenerateRequest struct {
	Seed *int64 `json:"seed,omitempty"`
}
