package record

import (
	"encoding/json"
	"os"
	"slices"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame      int     `json:"frame"`
	Image      string  `json:"image"`
	PixelRatio float64 `json:"pixel_ratio"`
}

// WriteManifest writes the successfully encoded frames to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Frame:      r.Index,
			Image:      r.File,
			PixelRatio: r.PixelRatio,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func sortResults(rs []Result) {
	slices.SortFunc(rs, func(a, b Result) int { return a.Index - b.Index })
}
