package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one rendered image in the output manifest.
type ManifestEntry struct {
	Name         string `json:"name"`
	Image        string `json:"image"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Triangles    int    `json:"triangles"`
	Written      int    `json:"written"`
	Degenerate   int    `json:"degenerate"`
	BehindCamera int    `json:"behind_camera"`
}

// WriteManifest writes the successful results as a JSON array. Image paths
// are made relative to the manifest's directory when possible.
func WriteManifest(path string, results []Result) error {
	base := filepath.Dir(path)
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		img := r.Image
		if rel, err := filepath.Rel(base, img); err == nil {
			img = filepath.ToSlash(rel)
		}
		entries = append(entries, ManifestEntry{
			Name:         r.Name,
			Image:        img,
			Width:        r.Width,
			Height:       r.Height,
			Triangles:    r.Stats.Raster.Triangles,
			Written:      r.Stats.Raster.Written,
			Degenerate:   r.Stats.Raster.Degenerate,
			BehindCamera: r.Stats.Projection.BehindCamera,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
