// Package run records pipeline executions: each run gets a unique ID
// and a per-stage trail of dataset shapes, persisted as YAML next to
// the run's artifacts.
package run

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/crunchbyte/creditprep/internal/utils"
)

// Manifest describes one pipeline run.
type Manifest struct {
	ID         string    `yaml:"id"`
	Input      string    `yaml:"input"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at,omitempty"`
	Stages     []Stage   `yaml:"stages"`
	Artifacts  []string  `yaml:"artifacts,omitempty"`
}

// Stage is one recorded pipeline step and the dataset shape it left
// behind.
type Stage struct {
	Name    string    `yaml:"name"`
	Rows    int       `yaml:"rows"`
	Columns int       `yaml:"columns"`
	At      time.Time `yaml:"at"`
	Notes   []string  `yaml:"notes,omitempty"`
}

// New constructs a manifest for a fresh run over the given input path.
func New(input string) *Manifest {
	return &Manifest{
		ID:        uuid.NewString(),
		Input:     input,
		StartedAt: time.Now(),
	}
}

// Record appends a stage entry with the dataset's current shape.
func (m *Manifest) Record(name string, rows, columns int, notes ...string) {
	m.Stages = append(m.Stages, Stage{
		Name:    name,
		Rows:    rows,
		Columns: columns,
		At:      time.Now(),
		Notes:   notes,
	})
}

// AddArtifact registers an output file produced by the run.
func (m *Manifest) AddArtifact(path string) {
	m.Artifacts = append(m.Artifacts, path)
}

// Save stamps the finish time and writes the manifest atomically.
func (m *Manifest) Save(path string) error {
	m.FinishedAt = time.Now()
	b, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return utils.SafeWriteFile(path, b)
}

// Load reads a previously saved manifest.
func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
