// Package project handles persistence of jobs, material catalogs, strip
// configurations and application settings as JSON files.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// jobFileVersion is written into every saved job file so future format
// changes can be detected on load.
const jobFileVersion = "1.0"

// Job is one saved nesting job: the quoted pieces with the settings they
// were nested under. Results are not persisted; they are recomputed from the
// pieces on demand.
type Job struct {
	Version  string             `json:"version"`
	Name     string             `json:"name"`
	Pieces   []model.Piece      `json:"pieces"`
	Settings model.NestSettings `json:"settings"`
}

// NewJob creates an empty job with default settings.
func NewJob(name string) *Job {
	return &Job{
		Version:  jobFileVersion,
		Name:     name,
		Pieces:   []model.Piece{},
		Settings: model.DefaultSettings(),
	}
}

// SaveJob writes the job to the specified JSON file, creating parent
// directories if they do not exist.
func SaveJob(path string, job *Job) error {
	if job.Version == "" {
		job.Version = jobFileVersion
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJob reads a job from the specified JSON file.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}
	if job.Pieces == nil {
		job.Pieces = []model.Piece{}
	}
	if job.Settings.Strategy == "" {
		job.Settings = model.DefaultSettings()
	}
	return &job, nil
}
