package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tv-instance-generator/internal/dto"
	appErrors "github.com/noah-isme/tv-instance-generator/pkg/errors"
	"github.com/noah-isme/tv-instance-generator/pkg/response"
)

type presetCatalog interface {
	List() []dto.PresetResponse
	Get(name string) (*dto.PresetResponse, error)
}

type presetGenerator interface {
	GenerateFromPreset(ctx context.Context, preset *dto.PresetResponse, seed *int64) (*dto.InstancePreviewResponse, error)
}

// PresetHandler exposes named configurations.
type PresetHandler struct {
	presets   presetCatalog
	generator presetGenerator
}

// NewPresetHandler constructs the handler.
func NewPresetHandler(presets presetCatalog, generator presetGenerator) *PresetHandler {
	return &PresetHandler{presets: presets, generator: generator}
}

// List godoc
// @Summary List presets
// @Tags Presets
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /presets [get]
func (h *PresetHandler) List(c *gin.Context) {
	presets := h.presets.List()
	response.JSON(c, http.StatusOK, presets, map[string]interface{}{"total": len(presets)})
}

// Get godoc
// @Summary Preset configuration
// @Tags Presets
// @Produce json
// @Param name path string true "Preset name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /presets/{name} [get]
func (h *PresetHandler) Get(c *gin.Context) {
	preset, err := h.presets.Get(c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, preset)
}

// Generate godoc
// @Summary Generate a preview from a preset
// @Tags Presets
// @Accept json
// @Produce json
// @Param name path string true "Preset name"
// @Param payload body dto.PresetGenerateRequest false "Optional seed"
// @Success 200 {object} response.Envelope
// @Router /presets/{name}/generate [post]
func (h *PresetHandler) Generate(c *gin.Context) {
	var req dto.PresetGenerateRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid preset payload"))
		return
	}
	preset, err := h.presets.Get(c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	preview, err := h.generator.GenerateFromPreset(c.Request.Context(), preset, req.Seed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, preview)
}
