package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/tv-instance-generator/internal/dto"
	appErrors "github.com/noah-isme/tv-instance-generator/pkg/errors"
)

// DefaultPresetName is always available and carries the form defaults.
const DefaultPresetName = "default"

type presetFile struct {
	Presets []presetEntry `yaml:"presets"`
}

type presetEntry struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Config      yaml.Node `yaml:"config"`
}

// PresetService serves named generator configurations loaded from YAML.
type PresetService struct {
	presets map[string]dto.PresetResponse
	logger  *zap.Logger
}

// NewPresetService loads presets from path. A missing file leaves only the
// built-in default preset.
func NewPresetService(path string, logger *zap.Logger) (*PresetService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &PresetService{presets: builtinPresets(), logger: logger}
	if path == "" {
		return svc, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Sugar().Infow("presets file not found, using built-in presets", "path", path)
			return svc, nil
		}
		return nil, fmt.Errorf("read presets %s: %w", path, err)
	}
	if err := svc.Load(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("load presets %s: %w", path, err)
	}
	logger.Sugar().Infow("presets loaded", "path", path, "count", len(svc.presets))
	return svc, nil
}

// Load merges presets from a YAML document. Keys left out of a preset's
// config keep their default values.
func (s *PresetService) Load(r io.Reader) error {
	var file presetFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode presets: %w", err)
	}

	seen := make(map[string]bool, len(file.Presets))
	for i, entry := range file.Presets {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return fmt.Errorf("preset %d: name is required", i+1)
		}
		if seen[name] {
			return fmt.Errorf("preset %q defined twice", name)
		}
		seen[name] = true

		cfg := dto.DefaultGenerateInstanceRequest()
		if !entry.Config.IsZero() {
			if err := entry.Config.Decode(&cfg); err != nil {
				return fmt.Errorf("preset %q: %w", name, err)
			}
		}
		s.presets[name] = dto.PresetResponse{Name: name, Description: entry.Description, Config: cfg}
	}
	return nil
}

// List returns every preset, the default first and the rest by name.
func (s *PresetService) List() []dto.PresetResponse {
	result := make([]dto.PresetResponse, 0, len(s.presets))
	for _, p := range s.presets {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name == DefaultPresetName {
			return true
		}
		if result[j].Name == DefaultPresetName {
			return false
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// Get returns a preset by name.
func (s *PresetService) Get(name string) (*dto.PresetResponse, error) {
	preset, ok := s.presets[name]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("preset %q not found", name))
	}
	return &preset, nil
}

func builtinPresets() map[string]dto.PresetResponse {
	return map[string]dto.PresetResponse{
		DefaultPresetName: {
			Name:        DefaultPresetName,
			Description: "Generator form defaults: 24 channels over a 10.5 hour window",
			Config:      dto.DefaultGenerateInstanceRequest(),
		},
	}
}
