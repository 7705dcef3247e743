package pipeline

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest records what a render job produced. It is written as JSON
// next to the output artifact.
type Manifest struct {
	JobID     string    `json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
	Output    string    `json:"output"`
	Format    string    `json:"format"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	FPS       int       `json:"fps"`
	Frames    int       `json:"frames"`
	Duration  float64   `json:"duration_seconds"`
	Scenario  string    `json:"scenario"`
	ElapsedMS int64     `json:"elapsed_ms"`
}

func WriteManifest(path string, m Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
