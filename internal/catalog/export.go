// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry is one run with its chapter rows, as written to the export
// file.
type ExportEntry struct {
	RunSummary `yaml:",inline"`
	Chapters   []ChapterRow `json:"chapters" yaml:"chapters"`
}

// ExportYAML writes all recorded runs to dir/export.yaml and returns the
// path.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}

	path := filepath.Join(s.dir, "export.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ExportJSON writes all recorded runs to dir/export.json and returns the
// path.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}

	path := filepath.Join(s.dir, "export.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	runs, err := s.Runs(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]ExportEntry, 0, len(runs))
	for _, run := range runs {
		chapters, err := s.RunChapters(ctx, run.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ExportEntry{RunSummary: run, Chapters: chapters})
	}
	return entries, nil
}
