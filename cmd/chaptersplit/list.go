// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/chaptersplit/internal/chapters"
	"github.com/pdiddy/chaptersplit/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list <input.pdf>",
	Short: "List the chapters a PDF would be split into",
	Long: `List previews the chapter table derived from the PDF's bookmarks:
chapter number, title, page range, and page count. Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	policy := types.RangeClamp
	if strict, _ := cmd.Flags().GetBool("strict-ranges"); strict {
		policy = types.RangeStrict
	}

	_, res, err := loadChapters(args[0], policy)
	if err != nil {
		return err
	}

	chapters.WriteTable(os.Stdout, res.Chapters)
	return nil
}

func init() {
	listCmd.Flags().Bool("strict-ranges", false, "reject outlines with degenerate bookmark ranges instead of clamping")

	rootCmd.AddCommand(listCmd)
}
