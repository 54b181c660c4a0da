package report

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/tracklab/hdfsum/internal/batch"
	"github.com/tracklab/hdfsum/internal/utils"
)

// ManifestFileName is written beside the tables when manifests are enabled.
const ManifestFileName = "run_manifest.json"

// FileStatus records the outcome for one input file.
type FileStatus struct {
	FileName string `json:"file_name"`
	Status   string `json:"status"` // ok|failed
}

// Manifest describes one batch run for audit purposes: which files went in,
// which failed, and everything the run warned about.
type Manifest struct {
	RunID       string       `json:"run_id"`
	StartedAt   time.Time    `json:"started_at"`
	FinishedAt  time.Time    `json:"finished_at"`
	InputFolder string       `json:"input_folder"`
	FileCount   int          `json:"file_count"`
	FailedCount int          `json:"failed_count"`
	SensorCount int          `json:"sensor_count"`
	Files       []FileStatus `json:"files"`
	Warnings    []string     `json:"warnings,omitempty"`
}

// NewManifest starts a manifest for a run over inputFolder.
func NewManifest(inputFolder string) *Manifest {
	return &Manifest{
		RunID:       uuid.NewString(),
		StartedAt:   time.Now().UTC(),
		InputFolder: inputFolder,
	}
}

// Finish fills in the outcome from a completed batch result.
func (m *Manifest) Finish(res *batch.Result) {
	m.FinishedAt = time.Now().UTC()
	m.FileCount = len(res.Rows)
	m.FailedCount = res.Failed
	m.SensorCount = len(res.Columns)
	m.Files = make([]FileStatus, len(res.Rows))
	for i, row := range res.Rows {
		status := "ok"
		if row.Failed {
			status = "failed"
		}
		m.Files[i] = FileStatus{FileName: row.FileName, Status: status}
	}
	m.Warnings = res.Warnings
}

// Write stores the manifest as indented JSON in outDir.
func (m *Manifest) Write(outDir string) error {
	b, err := utils.PrettyJSON(m)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(outDir, ManifestFileName), b)
}
