package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tv-instance-generator/internal/dto"
	"github.com/noah-isme/tv-instance-generator/internal/repository"
	appErrors "github.com/noah-isme/tv-instance-generator/pkg/errors"
)

const samplePresets = `
presets:
  - name: prime-time
    description: Evening block
    config:
      opening_time: 1080
      closing_time: 1440
      channels_count: 4
      time_preferences:
        - start: 1200
          end: 1320
          preferred_genre: movie
          bonus: 40
  - name: bare
`

func TestPresetServiceLoadsYAML(t *testing.T) {
	svc, err := NewPresetService("", nil)
	require.NoError(t, err)
	require.NoError(t, svc.Load(strings.NewReader(samplePresets)))

	list := svc.List()
	require.Len(t, list, 3)
	assert.Equal(t, DefaultPresetName, list[0].Name)
	assert.Equal(t, "bare", list[1].Name)
	assert.Equal(t, "prime-time", list[2].Name)

	prime, err := svc.Get("prime-time")
	require.NoError(t, err)
	assert.Equal(t, 1080, prime.Config.OpeningTime)
	assert.Equal(t, 4, prime.Config.ChannelsCount)
	assert.Equal(t, 30, prime.Config.MinDuration, "absent keys keep defaults")
	require.Len(t, prime.Config.TimePreferences, 1)
	assert.Equal(t, "movie", prime.Config.TimePreferences[0].PreferredGenre)

	bare, err := svc.Get("bare")
	require.NoError(t, err)
	assert.Equal(t, dto.DefaultGenerateInstanceRequest(), bare.Config)
}

func TestPresetServiceRejectsBadFiles(t *testing.T) {
	svc, err := NewPresetService("", nil)
	require.NoError(t, err)

	assert.Error(t, svc.Load(strings.NewReader("presets:\n  - description: nameless\n")))
	assert.Error(t, svc.Load(strings.NewReader("presets:\n  - name: a\n  - name: a\n")))
	assert.Error(t, svc.Load(strings.NewReader("presets:\n  - name: a\n    config:\n      opening_time: soon\n")))
}

func TestPresetServiceMissingFileKeepsDefault(t *testing.T) {
	svc, err := NewPresetService(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)

	require.Len(t, svc.List(), 1)
	_, err = svc.Get("nope")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPresetServiceReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePresets), 0o600))

	svc, err := NewPresetService(path, nil)
	require.NoError(t, err)
	assert.Len(t, svc.List(), 3)
}

func TestBundledPresetsGenerateStrictly(t *testing.T) {
	svc, err := NewPresetService(filepath.Join("..", "..", "configs", "presets.yaml"), nil)
	require.NoError(t, err)
	require.Greater(t, len(svc.List()), 1)

	instances := NewInstanceService(repository.NewMemoryPreviewRepository(), nil, nil, nil, nil, InstanceServiceConfig{Strict: true})
	for _, preset := range svc.List() {
		_, err := instances.Prepare(preset.Config)
		assert.NoError(t, err, preset.Name)
	}
}
