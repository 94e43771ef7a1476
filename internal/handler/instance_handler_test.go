package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tv-instance-generator/internal/dto"
	"github.com/noah-isme/tv-instance-generator/internal/generator"
	"github.com/noah-isme/tv-instance-generator/internal/service"
	appErrors "github.com/noah-isme/tv-instance-generator/pkg/errors"
)

type instanceServiceStub struct {
	gotRequest *dto.GenerateInstanceRequest
	gotFormat  string
	preview    *dto.InstancePreviewResponse
	file       *service.RenderedFile
	err        error
	clearedID  string
}

func (s *instanceServiceStub) Generate(ctx context.Context, req dto.GenerateInstanceRequest) (*dto.InstancePreviewResponse, error) {
	s.gotRequest = &req
	return s.preview, s.err
}

func (s *instanceServiceStub) Get(ctx context.Context, id string) (*dto.InstancePreviewResponse, error) {
	return s.preview, s.err
}

func (s *instanceServiceStub) Clear(ctx context.Context, id string) error {
	s.clearedID = id
	return s.err
}

func (s *instanceServiceStub) Export(ctx context.Context, id, format string) (*service.RenderedFile, error) {
	s.gotFormat = format
	return s.file, s.err
}

func (s *instanceServiceStub) Defaults() dto.GenerateInstanceRequest {
	return dto.DefaultGenerateInstanceRequest()
}

func (s *instanceServiceStub) Genres() []string {
	return generator.Genres()
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) *appErrors.Error {
	t.Helper()
	var env struct {
		Data  json.RawMessage  `json:"data"`
		Error *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Error
}

func TestInstanceHandlerGenerateKeepsDefaultsForMissingKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &instanceServiceStub{preview: &dto.InstancePreviewResponse{Mode: dto.ModePreview, PreviewID: "p-1", Seed: 5}}
	h := NewInstanceHandler(svc)

	c, w := newGinContext(http.MethodPost, "/instances/generate", []byte(`{"channels_count":3}`))
	h.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.gotRequest)
	defaults := dto.DefaultGenerateInstanceRequest()
	assert.Equal(t, 3, svc.gotRequest.ChannelsCount)
	assert.Equal(t, defaults.ClosingTime, svc.gotRequest.ClosingTime)
	assert.Equal(t, defaults.MaxConsecutiveGenre, svc.gotRequest.MaxConsecutiveGenre)

	var preview dto.InstancePreviewResponse
	assert.Nil(t, decodeEnvelope(t, w, &preview))
	assert.Equal(t, "p-1", preview.PreviewID)
}

func TestInstanceHandlerGenerateAcceptsEmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &instanceServiceStub{preview: &dto.InstancePreviewResponse{PreviewID: "p-2"}}
	h := NewInstanceHandler(svc)

	c, w := newGinContext(http.MethodPost, "/instances/generate", nil)
	h.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.DefaultGenerateInstanceRequest(), *svc.gotRequest)
}

func TestInstanceHandlerGenerateRejectsMalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &instanceServiceStub{}
	h := NewInstanceHandler(svc)

	c, w := newGinContext(http.MethodPost, "/instances/generate", []byte(`{"channels_count":`))
	h.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	appErr := decodeEnvelope(t, w, nil)
	require.NotNil(t, appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Nil(t, svc.gotRequest)
}

func TestInstanceHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewInstanceHandler(&instanceServiceStub{err: appErrors.Clone(appErrors.ErrNotFound, "preview not found")})

	c, w := newGinContext(http.MethodGet, "/instances/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInstanceHandlerExportStreamsAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &instanceServiceStub{file: &service.RenderedFile{
		Filename:    service.DownloadBaseName + ".csv",
		ContentType: "text/csv",
		Body:        []byte("channel_id\n0\n"),
	}}
	h := NewInstanceHandler(svc)

	c, w := newGinContext(http.MethodGet, "/instances/p-1/export?format=csv", nil)
	c.Params = gin.Params{{Key: "id", Value: "p-1"}}
	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", svc.gotFormat)
	assert.Equal(t, `attachment; filename="kosovo_tv_input_generated.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "channel_id\n0\n", w.Body.String())
}

func TestInstanceHandlerClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &instanceServiceStub{}
	h := NewInstanceHandler(svc)

	c, w := newGinContext(http.MethodDelete, "/instances/p-9", nil)
	c.Params = gin.Params{{Key: "id", Value: "p-9"}}
	h.Clear(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "p-9", svc.clearedID)
}

func TestInstanceHandlerGenres(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewInstanceHandler(&instanceServiceStub{})

	c, w := newGinContext(http.MethodGet, "/instances/genres", nil)
	h.Genres(c)

	var genres []string
	decodeEnvelope(t, w, &genres)
	assert.Equal(t, generator.Genres(), genres)
}
