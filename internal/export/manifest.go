package export

import (
	"encoding/json"
	"os"

	"paperfold-renderer/internal/stage"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index    int     `json:"index"`
	Time     float64 `json:"time"` // seconds
	Fold     string  `json:"fold"`
	PageOpen bool    `json:"page_open"`
	Hovering bool    `json:"hovering"`
	Revealed bool    `json:"revealed"`
	Letter   string  `json:"letter"`
	Page     string  `json:"page"`
	Error    string  `json:"error,omitempty"`
}

// Manifest describes an export run.
type Manifest struct {
	RunID  string          `json:"run_id,omitempty"`
	FPS    int             `json:"fps"`
	Size   int             `json:"size"`
	Frames []ManifestEntry `json:"frames"`
}

// BuildManifest pairs captured frames with their render results.
func BuildManifest(fps, size int, frames []stage.Frame, results []Result) Manifest {
	m := Manifest{FPS: fps, Size: size, Frames: make([]ManifestEntry, len(frames))}
	for i, f := range frames {
		e := ManifestEntry{
			Index:    f.Index,
			Time:     f.At.Seconds(),
			Fold:     f.Letter.State.String(),
			PageOpen: f.Page.Open,
			Hovering: f.Page.Hovering,
			Revealed: f.Page.Revealed,
			Letter:   FramePath(LetterDir, f.Index),
			Page:     FramePath(PageDir, f.Index),
		}
		if i < len(results) && !results[i].Success {
			e.Error = results[i].Error
		}
		m.Frames[i] = e
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
