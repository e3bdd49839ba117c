// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/chaptersplit/pkg/types"
)

// fakeSource implements PageSource for testing. It writes a recognizable
// marker per range and can be told to fail for specific chapters.
type fakeSource struct {
	pages    int
	failFrom map[int]error // keyed by start page
	calls    []string
}

func (f *fakeSource) PageCount() int { return f.pages }

func (f *fakeSource) ExtractRange(start, end int, w io.Writer) error {
	f.calls = append(f.calls, fmt.Sprintf("%d-%d", start, end))
	if err, ok := f.failFrom[start]; ok {
		return err
	}
	_, werr := fmt.Fprintf(w, "pdf pages %d..%d", start, end)
	return werr
}

func testChapters() []types.Chapter {
	return []types.Chapter{
		{Number: 1, Title: "Introduction", StartPage: 0, EndPage: 9},
		{Number: 2, Title: "Basics", StartPage: 10, EndPage: 24},
		{Number: 3, Title: "Advanced", StartPage: 25, EndPage: 29},
	}
}

func TestRun(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "chapters")
	src := &fakeSource{pages: 30}
	var log bytes.Buffer

	report, err := Run(src, "book.pdf", testChapters(), Options{OutputDir: outDir}, &log)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Extracted() != 3 || report.Failed() != 0 {
		t.Errorf("extracted/failed = %d/%d, want 3/0", report.Extracted(), report.Failed())
	}

	wantFiles := []string{"01_Introduction.pdf", "02_Basics.pdf", "03_Advanced.pdf"}
	for _, name := range wantFiles {
		path := filepath.Join(outDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected output file %s: %v", name, err)
		}
		if !strings.HasPrefix(string(data), "pdf pages ") {
			t.Errorf("%s has unexpected content %q", name, data)
		}
	}

	// Ranges are requested in ascending chapter order.
	wantCalls := []string{"0-9", "10-24", "25-29"}
	for i, want := range wantCalls {
		if src.calls[i] != want {
			t.Errorf("call %d = %s, want %s", i, src.calls[i], want)
		}
	}

	if !strings.Contains(log.String(), "Extracted 3 of 3 chapters") {
		t.Errorf("summary missing from log: %q", log.String())
	}
}

func TestRun_PartialFailure(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "chapters")
	src := &fakeSource{
		pages:    30,
		failFrom: map[int]error{10: fmt.Errorf("page 12 unreadable")},
	}
	var log bytes.Buffer

	report, err := Run(src, "book.pdf", testChapters(), Options{OutputDir: outDir}, &log)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Extracted() != 2 || report.Failed() != 1 {
		t.Errorf("extracted/failed = %d/%d, want 2/1", report.Extracted(), report.Failed())
	}
	if !report.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}

	// The failed chapter is named, and no file was left behind for it.
	if !strings.Contains(log.String(), "failed: chapter 2") {
		t.Errorf("failure not named in log: %q", log.String())
	}
	if _, err := os.Stat(filepath.Join(outDir, "02_Basics.pdf")); !os.IsNotExist(err) {
		t.Error("failed chapter left an output file behind")
	}

	// Later chapters still extracted.
	if _, err := os.Stat(filepath.Join(outDir, "03_Advanced.pdf")); err != nil {
		t.Errorf("chapter after the failure was not extracted: %v", err)
	}

	failedResult := report.Results[1]
	if failedResult.Status != StatusFailed || !strings.Contains(failedResult.Error, "unreadable") {
		t.Errorf("failed result = %+v, want failed status with cause", failedResult)
	}
}

func TestRun_NoChapters(t *testing.T) {
	src := &fakeSource{pages: 10}
	var log bytes.Buffer
	_, err := Run(src, "book.pdf", nil, Options{OutputDir: t.TempDir()}, &log)
	if err == nil {
		t.Fatal("Run() with no chapters succeeded, want error")
	}
}

func TestRun_Progress(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "chapters")
	src := &fakeSource{pages: 30}
	ticks := 0

	opts := Options{OutputDir: outDir, Progress: func() { ticks++ }}
	if _, err := Run(src, "book.pdf", testChapters(), opts, io.Discard); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ticks != 3 {
		t.Errorf("progress ticks = %d, want 3", ticks)
	}
}

func TestWriteManifest(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "chapters")
	src := &fakeSource{pages: 30}

	report, err := Run(src, "book.pdf", testChapters(), Options{OutputDir: outDir}, io.Discard)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	report.SkippedTerms = []string{`"20": chapter 20 out of range (1-3)`}

	if err := WriteManifest(report); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "manifest.yaml"))
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}

	var m struct {
		Source   string `yaml:"source"`
		Chapters []struct {
			Number   int    `yaml:"number"`
			Filename string `yaml:"filename"`
			Status   string `yaml:"status"`
		} `yaml:"chapters"`
		SkippedTerms []string `yaml:"skipped_terms"`
		Summary      struct {
			Total     int `yaml:"total"`
			Extracted int `yaml:"extracted"`
		} `yaml:"summary"`
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("parsing manifest: %v", err)
	}

	if m.Source != "book.pdf" || len(m.Chapters) != 3 {
		t.Errorf("manifest = source %q with %d chapters, want book.pdf with 3", m.Source, len(m.Chapters))
	}
	if m.Chapters[0].Filename != "01_Introduction.pdf" || m.Chapters[0].Status != "extracted" {
		t.Errorf("first chapter row = %+v", m.Chapters[0])
	}
	if len(m.SkippedTerms) != 1 || m.Summary.Total != 3 || m.Summary.Extracted != 3 {
		t.Errorf("manifest summary = %+v, skipped %v", m.Summary, m.SkippedTerms)
	}
}
