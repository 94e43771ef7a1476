package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tv-instance-generator/internal/generator"
	"github.com/noah-isme/tv-instance-generator/pkg/export"
	"github.com/noah-isme/tv-instance-generator/pkg/storage"
)

func sampleInstance() generator.Instance {
	return generator.Instance{
		OpeningTime:         0,
		ClosingTime:         60,
		MinDuration:         30,
		MaxConsecutiveGenre: 2,
		ChannelsCount:       1,
		Channels: []generator.Channel{{
			ChannelID:   0,
			ChannelName: "Channel_0",
			Programs: []generator.Program{
				{ProgramID: "Channel_0_1", Start: 0, End: 30, Genre: "news", Score: 10},
				{ProgramID: "Channel_0_2", Start: 30, End: 60, Genre: "sports", Score: 20},
			},
		}},
	}
}

func newExportServiceForTest(t *testing.T) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewExportService(store, storage.NewSignedURLSigner("secret", time.Hour), ExportConfig{APIPrefix: "/api/v2/"}, nil)
}

func TestExportServiceRenderInstanceFormats(t *testing.T) {
	svc := newExportServiceForTest(t)
	inst := sampleInstance()

	csvFile, err := svc.RenderInstance(inst, export.FormatCSV, "")
	require.NoError(t, err)
	assert.Equal(t, "channel_id,channel_name,program_id,start,end,genre,score\n0,Channel_0,Channel_0_1,0,30,news,10\n0,Channel_0,Channel_0_2,30,60,sports,20\n", string(csvFile.Body))

	pdfFile, err := svc.RenderInstance(inst, export.FormatPDF, "Instance")
	require.NoError(t, err)
	assert.Equal(t, "kosovo_tv_input_generated.pdf", pdfFile.Filename)
	assert.Equal(t, "application/pdf", pdfFile.ContentType)
	assert.True(t, bytes.HasPrefix(pdfFile.Body, []byte("%PDF")))

	_, err = svc.RenderInstance(inst, export.Format("xml"), "")
	assert.Error(t, err)
}

func TestExportServiceStoreSignsURL(t *testing.T) {
	svc := newExportServiceForTest(t)
	file, err := svc.RenderBatch("b1", []generator.Instance{sampleInstance()}, export.FormatPDF)
	require.NoError(t, err)

	result, err := svc.Store("b1", file)
	require.NoError(t, err)
	assert.Equal(t, "batches/b1/kosovo_tv_inputs_b1.pdf", result.RelativePath)
	assert.Equal(t, "/api/v2/downloads/"+result.Token, result.URL)

	owner, rel, _, err := svc.ParseToken(result.Token, false)
	require.NoError(t, err)
	assert.Equal(t, "b1", owner)
	body, err := svc.Read(rel)
	require.NoError(t, err)
	assert.Equal(t, file.Body, body)
}

func TestExportServiceStoreRequiresStorage(t *testing.T) {
	svc := NewExportService(nil, nil, ExportConfig{}, nil)
	_, err := svc.Store("b1", &RenderedFile{Filename: "a.json"})
	assert.Error(t, err)
	_, _, _, err = svc.ParseToken("x", false)
	assert.ErrorIs(t, err, storage.ErrInvalidToken)
}
