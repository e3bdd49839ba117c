// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// manifestFile is the run manifest written next to the extracted chapters.
const manifestFile = "manifest.yaml"

// manifest is the on-disk representation of an extraction run.
type manifest struct {
	Source       string          `yaml:"source"`
	CreatedAt    time.Time       `yaml:"created_at"`
	Chapters     []ChapterResult `yaml:"chapters"`
	SkippedTerms []string        `yaml:"skipped_terms,omitempty"`
	Summary      manifestSummary `yaml:"summary"`
}

type manifestSummary struct {
	Total     int `yaml:"total"`
	Extracted int `yaml:"extracted"`
	Failed    int `yaml:"failed"`
}

// WriteManifest saves the run report as manifest.yaml in the output
// directory, so a later reader can tell which chapters a directory holds
// and which failed.
func WriteManifest(report Report) error {
	m := manifest{
		Source:       report.Source,
		CreatedAt:    time.Now().UTC(),
		Chapters:     report.Results,
		SkippedTerms: report.SkippedTerms,
		Summary: manifestSummary{
			Total:     report.TotalChapters,
			Extracted: report.Extracted(),
			Failed:    report.Failed(),
		},
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	path := filepath.Join(report.OutputDir, manifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
