package service

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tv-instance-generator/internal/generator"
	"github.com/noah-isme/tv-instance-generator/pkg/export"
	"github.com/noah-isme/tv-instance-generator/pkg/storage"
)

// DownloadBaseName is the file name offered for a single generated instance.
const DownloadBaseName = "kosovo_tv_input_generated"

var programHeaders = []string{"channel_id", "channel_name", "program_id", "start", "end", "genre", "score"}

type fileStorage interface {
	Save(relPath string, data []byte) (string, error)
	Read(relPath string) ([]byte, error)
	Delete(relPath string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(doc export.Document) ([]byte, error)
}

type jsonRenderer interface {
	Render(v interface{}) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// RenderedFile is an encoded instance ready to be served or stored.
type RenderedFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportResult captures a stored artifact and its signed download link.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	ExpiresAt    time.Time
}

// ExportService encodes instances and manages stored batch artifacts.
type ExportService struct {
	storage fileStorage
	signer  *storage.SignedURLSigner
	json    jsonRenderer
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService. storage and signer may be
// nil when only direct downloads are needed.
func NewExportService(store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = time.Hour
	}
	return &ExportService{
		storage: store,
		signer:  signer,
		json:    export.NewJSONExporter(),
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
		cfg:     cfg,
	}
}

// RenderInstance encodes one instance in the requested format.
func (s *ExportService) RenderInstance(inst generator.Instance, format export.Format, title string) (*RenderedFile, error) {
	var (
		body []byte
		err  error
	)
	switch format {
	case export.FormatJSON:
		body, err = s.json.Render(inst)
	case export.FormatCSV:
		body, err = s.csv.Render(programDataset(nil, inst))
	case export.FormatPDF:
		body, err = s.pdf.Render(export.Document{Title: title, Summary: instanceSummary(inst), Table: programDataset(nil, inst)})
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return nil, err
	}
	return &RenderedFile{Filename: DownloadBaseName + format.Extension(), ContentType: format.ContentType(), Body: body}, nil
}

// RenderBatch encodes several instances into one artifact. JSON yields an
// array; CSV and PDF add a leading instance column.
func (s *ExportService) RenderBatch(batchID string, instances []generator.Instance, format export.Format) (*RenderedFile, error) {
	var (
		body []byte
		err  error
	)
	switch format {
	case export.FormatJSON:
		body, err = s.json.Render(instances)
	case export.FormatCSV:
		body, err = s.csv.Render(batchDataset(instances))
	case export.FormatPDF:
		summary := [][2]string{{"Batch", batchID}, {"Instances", strconv.Itoa(len(instances))}}
		if len(instances) > 0 {
			summary = append(summary, instanceSummary(instances[0])...)
		}
		body, err = s.pdf.Render(export.Document{Title: "TV scheduling instances", Summary: summary, Table: batchDataset(instances)})
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("kosovo_tv_inputs_%s%s", sanitizeFilename(batchID), format.Extension())
	return &RenderedFile{Filename: name, ContentType: format.ContentType(), Body: body}, nil
}

// Store saves a rendered file under the owner's directory and signs a
// download link for it.
func (s *ExportService) Store(ownerID string, file *RenderedFile) (*ExportResult, error) {
	if s.storage == nil || s.signer == nil {
		return nil, fmt.Errorf("artifact storage not configured")
	}
	relPath, err := s.storage.Save(path.Join("batches", sanitizeFilename(ownerID), file.Filename), file.Body)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(ownerID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/downloads/%s", prefix, token),
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (ownerID, relPath string, expiresAt time.Time, err error) {
	if s.signer == nil {
		return "", "", time.Time{}, storage.ErrInvalidToken
	}
	return s.signer.Parse(token, allowExpired)
}

// Read loads a stored artifact.
func (s *ExportService) Read(relPath string) ([]byte, error) {
	return s.storage.Read(relPath)
}

// Delete removes a stored artifact.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes artifacts older than ttl, defaulting to the result TTL.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func programDataset(extra map[string]string, inst generator.Instance) export.Dataset {
	rows := make([]map[string]string, 0)
	for _, ch := range inst.Channels {
		for _, p := range ch.Programs {
			row := map[string]string{
				"channel_id":   strconv.Itoa(ch.ChannelID),
				"channel_name": ch.ChannelName,
				"program_id":   p.ProgramID,
				"start":        strconv.Itoa(p.Start),
				"end":          strconv.Itoa(p.End),
				"genre":        p.Genre,
				"score":        strconv.Itoa(p.Score),
			}
			for k, v := range extra {
				row[k] = v
			}
			rows = append(rows, row)
		}
	}
	return export.Dataset{Headers: programHeaders, Rows: rows}
}

func batchDataset(instances []generator.Instance) export.Dataset {
	headers := append([]string{"instance"}, programHeaders...)
	rows := make([]map[string]string, 0)
	for i, inst := range instances {
		rows = append(rows, programDataset(map[string]string{"instance": strconv.Itoa(i + 1)}, inst).Rows...)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func instanceSummary(inst generator.Instance) [][2]string {
	sum := generator.Summarize(inst)
	return [][2]string{
		{"Broadcast window", fmt.Sprintf("%d - %d", inst.OpeningTime, inst.ClosingTime)},
		{"Min duration", strconv.Itoa(inst.MinDuration)},
		{"Max consecutive genre", strconv.Itoa(inst.MaxConsecutiveGenre)},
		{"Penalties (switch / termination)", fmt.Sprintf("%d / %d", inst.SwitchPenalty, inst.TerminationPenalty)},
		{"Channels / programs", fmt.Sprintf("%d / %d", sum.Channels, sum.Programs)},
		{"Priority blocks / preferences", fmt.Sprintf("%d / %d", sum.PriorityBlocks, sum.TimePreferences)},
	}
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
