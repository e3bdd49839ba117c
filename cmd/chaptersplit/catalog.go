// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/chaptersplit/internal/catalog"
	"github.com/pdiddy/chaptersplit/internal/extract"
	"github.com/pdiddy/chaptersplit/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and export recorded split runs",
	Long: `Catalog manages a local SQLite record of split runs. Runs are recorded
when split is invoked with --catalog (or catalog.enabled in the config
file). Use subcommands to list past runs or export them.`,
}

var catalogRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded split runs",
	RunE:  runCatalogRuns,
}

func runCatalogRuns(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-30s  %-20s  %8s  %9s  %6s\n",
		"ID", "Source", "Started", "Chapters", "Extracted", "Failed")
	for _, r := range runs {
		source := r.Source
		if len(source) > 30 {
			source = source[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-30s  %-20s  %8d  %9d  %6d\n",
			r.ID, source, r.StartedAt, r.ChaptersTotal, r.Extracted, r.Failed)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to YAML or JSON",
	RunE:  runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background())
	case "json":
		path, err = store.ExportJSON(context.Background())
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	return catalog.NewStore(types.CatalogConfig{
		Dir: stringSetting(cmd, "catalog-dir", "catalog.dir", catalog.DefaultDir),
	})
}

// recordRun stores a finished split run in the catalog.
func recordRun(cmd *cobra.Command, report extract.Report) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	run := catalog.Run{
		Source:       report.Source,
		OutputDir:    report.OutputDir,
		StartedAt:    time.Now(),
		SkippedTerms: len(report.SkippedTerms),
		Chapters:     make([]catalog.ChapterRow, len(report.Results)),
	}
	for i, r := range report.Results {
		run.Chapters[i] = catalog.ChapterRow{
			Number:    r.Number,
			Title:     r.Title,
			StartPage: r.StartPage,
			EndPage:   r.EndPage,
			Pages:     r.Pages,
			Filename:  r.Filename,
			Status:    string(r.Status),
			Error:     r.Error,
		}
	}

	runID, err := store.RecordRun(context.Background(), run)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded run %d in catalog\n", runID)
	return nil
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", catalog.DefaultDir, "directory holding the catalog database")
	splitCmd.Flags().String("catalog-dir", catalog.DefaultDir, "directory holding the catalog database")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogRunsCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}
