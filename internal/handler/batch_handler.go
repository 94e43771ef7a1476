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

type batchService interface {
	CreateBatch(ctx context.Context, req dto.BatchRequest) (*dto.BatchJobResponse, error)
	GetStatus(ctx context.Context, id string) (*dto.BatchStatusResponse, error)
	ResolveDownload(ctx context.Context, token string) (*service.BatchDownload, error)
}

// BatchHandler exposes asynchronous multi-instance exports.
type BatchHandler struct {
	service batchService
}

// NewBatchHandler constructs the handler.
func NewBatchHandler(svc batchService) *BatchHandler {
	return &BatchHandler{service: svc}
}

// Create godoc
// @Summary Queue a batch of generated instances
// @Tags Batches
// @Accept json
// @Produce json
// @Param payload body dto.BatchRequest true "Batch payload"
// @Success 202 {object} response.Envelope
// @Router /batches [post]
func (h *BatchHandler) Create(c *gin.Context) {
	req := dto.BatchRequest{Config: dto.DefaultGenerateInstanceRequest()}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid batch payload"))
		return
	}
	job, err := h.service.CreateBatch(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, job)
}

// Status godoc
// @Summary Batch progress
// @Tags Batches
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} response.Envelope
// @Router /batches/{id} [get]
func (h *BatchHandler) Status(c *gin.Context) {
	status, err := h.service.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// Download godoc
// @Summary Download a finished batch through its signed token
// @Tags Batches
// @Produce json,text/csv,application/pdf
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /downloads/{token} [get]
func (h *BatchHandler) Download(c *gin.Context) {
	download, err := h.service.ResolveDownload(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, download.Filename, download.ContentType, download.Body)
}
