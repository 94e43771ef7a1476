package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tv-instance-generator/internal/dto"
	"github.com/noah-isme/tv-instance-generator/internal/service"
	appErrors "github.com/noah-isme/tv-instance-generator/pkg/errors"
	"github.com/noah-isme/tv-instance-generator/pkg/response"
)

type instanceGenerator interface {
	Generate(ctx context.Context, req dto.GenerateInstanceRequest) (*dto.InstancePreviewResponse, error)
	Get(ctx context.Context, id string) (*dto.InstancePreviewResponse, error)
	Clear(ctx context.Context, id string) error
	Export(ctx context.Context, id, format string) (*service.RenderedFile, error)
	Defaults() dto.GenerateInstanceRequest
	Genres() []string
}

// InstanceHandler exposes instance generation endpoints.
type InstanceHandler struct {
	service instanceGenerator
}

// NewInstanceHandler constructs the handler.
func NewInstanceHandler(svc instanceGenerator) *InstanceHandler {
	return &InstanceHandler{service: svc}
}

// Defaults godoc
// @Summary Default generator configuration
// @Tags Instances
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /instances/defaults [get]
func (h *InstanceHandler) Defaults(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Defaults())
}

// Genres godoc
// @Summary Genre vocabulary used for synthesized programs
// @Tags Instances
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /instances/genres [get]
func (h *InstanceHandler) Genres(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Genres())
}

// Generate godoc
// @Summary Generate a scheduling instance preview
// @Description Omitted keys take the default configuration. The reported seed replays the run.
// @Tags Instances
// @Accept json
// @Produce json
// @Param payload body dto.GenerateInstanceRequest false "Generator configuration"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /instances/generate [post]
func (h *InstanceHandler) Generate(c *gin.Context) {
	req := dto.DefaultGenerateInstanceRequest()
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	preview, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, preview)
}

// Get godoc
// @Summary Fetch a stored preview
// @Tags Instances
// @Produce json
// @Param id path string true "Preview ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /instances/{id} [get]
func (h *InstanceHandler) Get(c *gin.Context) {
	preview, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, preview)
}

// Export godoc
// @Summary Download a stored preview
// @Tags Instances
// @Produce json,text/csv,application/pdf
// @Param id path string true "Preview ID"
// @Param format query string false "json (default), csv or pdf"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /instances/{id}/export [get]
func (h *InstanceHandler) Export(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}
	file, err := h.service.Export(c.Request.Context(), c.Param("id"), query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// Clear godoc
// @Summary Discard a stored preview
// @Tags Instances
// @Param id path string true "Preview ID"
// @Success 204
// @Router /instances/{id} [delete]
func (h *InstanceHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
