package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"recon-engine/core/logger"
	"recon-engine/core/reconcile"
	"recon-engine/core/storage"
	"recon-engine/core/validate"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// PublishPrefix is the object key prefix of published reports.
const PublishPrefix = "reports/"

// Report is the output of one run.
type Report struct {
	ID             string             `json:"id"`
	Project        string             `json:"project"`
	GeneratedAt    time.Time          `json:"generated_at"`
	Reconciliation *reconcile.Summary `json:"reconciliation,omitempty"`
	Validation     *validate.Summary  `json:"validation,omitempty"`
	Overview       Overview           `json:"overview"`
	Log            []logger.Entry     `json:"execution_log"`
}

// New assembles a report. Either summary may be nil.
func New(project string, at time.Time, recon *reconcile.Summary, valid *validate.Summary, log []logger.Entry) *Report {
	if log == nil {
		log = []logger.Entry{}
	}
	return &Report{
		ID:             uuid.NewString(),
		Project:        project,
		GeneratedAt:    at,
		Reconciliation: recon,
		Validation:     valid,
		Overview:       NewOverview(at, recon, valid),
		Log:            log,
	}
}

// Name returns the report file name for project at t.
func Name(project string, t time.Time) string {
	project = strings.ReplaceAll(strings.TrimSpace(project), " ", "_")
	if project == "" {
		project = "reconciliation"
	}
	return fmt.Sprintf("%s_%s.json", project, t.Format("20060102_150405"))
}

// Name returns the report's file name.
func (r *Report) Name() string {
	return Name(r.Project, r.GeneratedAt)
}

// Write emits the report as indented JSON.
func (r *Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Read decodes a report written by Write.
func Read(rd io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &r, nil
}

// Save writes the report into dir, creating it if needed, and returns the file path.
func (r *Report) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, r.Name())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, f.Close()
}

// Publish uploads the report to bucket under PublishPrefix and returns the object key.
func (r *Report) Publish(ctx context.Context, client storage.Client, bucket string) (string, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	key := PublishPrefix + r.Name()
	_, err := client.PutObject(ctx, bucket, key, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish report: %w", err)
	}
	return key, nil
}
