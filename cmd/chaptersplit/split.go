// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/chaptersplit/internal/chapters"
	"github.com/pdiddy/chaptersplit/internal/extract"
	"github.com/pdiddy/chaptersplit/internal/outline"
	"github.com/pdiddy/chaptersplit/internal/pdf"
	"github.com/pdiddy/chaptersplit/internal/selection"
	"github.com/pdiddy/chaptersplit/pkg/types"
)

var splitCmd = &cobra.Command{
	Use:   "split <input.pdf>",
	Short: "Split a PDF into per-chapter files based on its bookmarks",
	Long: `Split derives one chapter per top-level bookmark and extracts each
chapter's page range into its own PDF in the output directory.

Chapter files are named {number}_{title}.pdf with the number zero-padded
to at least two digits and the title sanitized for filesystem use.

Examples:
  chaptersplit split book.pdf                      Split all chapters
  chaptersplit split book.pdf -o out               Split to a custom directory
  chaptersplit split book.pdf -c "1,3,5-7"         Extract specific chapters
  chaptersplit split book.pdf -l                   Preview without writing`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg := splitConfig(cmd)
	path := args[0]

	doc, res, err := loadChapters(path, cfg.RangePolicy)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d chapters in %s\n", len(res.Chapters), path)

	if cfg.ListOnly {
		chapters.WriteTable(os.Stdout, res.Chapters)
		return nil
	}

	sel, err := selection.Parse(cfg.Selection, len(res.Chapters))
	if err != nil {
		return err
	}
	for _, inv := range sel.Invalid {
		fmt.Fprintf(os.Stderr, "warning: skipping selection term %s\n", inv)
	}
	if sel.IsEmpty() {
		return fmt.Errorf("selection %q matches no valid chapters (valid range 1-%d)",
			cfg.Selection, len(res.Chapters))
	}

	selected := chapters.Select(res.Chapters, sel.Numbers)
	fmt.Printf("Extracting %d chapters to %s\n", len(selected), cfg.OutputDir)

	opts := extract.Options{
		OutputDir:   cfg.OutputDir,
		TitleMaxLen: cfg.TitleMaxLen,
	}
	var bar *progressbar.ProgressBar
	if !cfg.Quiet {
		bar = progressbar.Default(int64(len(selected)))
		opts.Progress = func() { _ = bar.Add(1) }
	}

	report, err := extract.Run(doc, path, selected, opts, os.Stdout)
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}
	if err != nil {
		return err
	}

	for _, inv := range sel.Invalid {
		report.SkippedTerms = append(report.SkippedTerms, inv.String())
	}

	if err := extract.WriteManifest(report); err != nil {
		fmt.Fprintf(os.Stderr, "warning: manifest write failed: %v\n", err)
	}

	if enabled, _ := cmd.Flags().GetBool("catalog"); enabled || viper.GetBool("catalog.enabled") {
		if err := recordRun(cmd, report); err != nil {
			fmt.Fprintf(os.Stderr, "warning: catalog record failed: %v\n", err)
		}
	}

	switch {
	case report.Extracted() == 0:
		return fmt.Errorf("no chapters extracted (%d of %d failed)", report.Failed(), len(selected))
	case report.HasFailures():
		fmt.Printf("Partial success: %d extracted, %d failed, %d selection term(s) skipped\n",
			report.Extracted(), report.Failed(), len(sel.Invalid))
	default:
		fmt.Println("PDF splitting completed successfully.")
	}
	return nil
}

// loadChapters opens the document and derives its chapter list. Derivation
// warnings go to stderr. A document without usable bookmarks is rejected
// here, before any output directory is created.
func loadChapters(path string, policy types.RangePolicy) (*pdf.Document, chapters.BuildResult, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return nil, chapters.BuildResult{}, err
	}
	fmt.Printf("Reading PDF: %s (%d pages)\n", path, doc.PageCount())

	nodes, err := doc.Outline()
	if err != nil {
		return nil, chapters.BuildResult{}, fmt.Errorf("%s: %w: %v", path, outline.ErrNoBookmarks, err)
	}

	bookmarks, err := outline.Flatten(nodes)
	if err != nil {
		return nil, chapters.BuildResult{}, fmt.Errorf("%s: %w", path, err)
	}

	res, err := chapters.Build(bookmarks, doc.PageCount(), policy)
	if err != nil {
		return nil, chapters.BuildResult{}, fmt.Errorf("%s: %w", path, err)
	}
	if warn := chapters.FormatWarnings(res.Warnings); warn != "" {
		fmt.Fprint(os.Stderr, warn)
	}
	return doc, res, nil
}

// splitConfig resolves split settings with flags taking precedence over the
// config file, and the config file over defaults.
func splitConfig(cmd *cobra.Command) types.SplitConfig {
	cfg := types.SplitConfig{
		OutputDir:   stringSetting(cmd, "output-dir", "split.output_dir", "chapters"),
		TitleMaxLen: intSetting(cmd, "title-max-len", "split.title_max_len", extract.DefaultTitleMaxLen),
		RangePolicy: types.RangeClamp,
	}
	cfg.Selection, _ = cmd.Flags().GetString("chapters")
	cfg.ListOnly, _ = cmd.Flags().GetBool("list-only")
	cfg.Quiet, _ = cmd.Flags().GetBool("quiet")

	if strict, _ := cmd.Flags().GetBool("strict-ranges"); strict ||
		types.RangePolicy(viper.GetString("split.range_policy")) == types.RangeStrict {
		cfg.RangePolicy = types.RangeStrict
	}
	return cfg
}

func stringSetting(cmd *cobra.Command, flag, key, def string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return def
}

func intSetting(cmd *cobra.Command, flag, key string, def int) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return def
}

func init() {
	splitCmd.Flags().StringP("output-dir", "o", "chapters", "output directory for chapter files")
	splitCmd.Flags().StringP("chapters", "c", "", `chapters to extract, e.g. "1,3,5-7" (default: all)`)
	splitCmd.Flags().BoolP("list-only", "l", false, "list chapters without writing any files")
	splitCmd.Flags().Int("title-max-len", extract.DefaultTitleMaxLen, "maximum length of the title portion of filenames")
	splitCmd.Flags().Bool("strict-ranges", false, "reject outlines with degenerate bookmark ranges instead of clamping")
	splitCmd.Flags().BoolP("quiet", "q", false, "suppress the progress bar")
	splitCmd.Flags().Bool("catalog", false, "record this run in the catalog")

	rootCmd.AddCommand(splitCmd)
}
