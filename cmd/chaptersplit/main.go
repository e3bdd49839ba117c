// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the chaptersplit CLI, a tool that
// splits a bookmarked PDF into one file per chapter.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the chaptersplit CLI.
var rootCmd = &cobra.Command{
	Use:   "chaptersplit",
	Short: "Split bookmarked PDFs into per-chapter files",
	Long: `chaptersplit reads a PDF's bookmark outline, derives one contiguous page
range per top-level bookmark, and extracts each range into its own PDF.

Use "split" to extract chapters, "list" to preview the chapter table
without writing anything, and "catalog" to inspect recorded runs.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./chaptersplit.yaml or ~/.config/chaptersplit/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("chaptersplit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "chaptersplit"))
		}
	}

	viper.SetEnvPrefix("CHAPTERSPLIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
