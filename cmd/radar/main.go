// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the radar CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abrookins/radar/internal/dataset"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the radar CLI.
var rootCmd = &cobra.Command{
	Use:   "radar",
	Short: "Portland crime data pipeline and nearby-crime lookups",
	Long: `radar works with the Portland Police Bureau crime incident CSV export:
fetch the raw dataset, reproject its NAD83 Oregon North State Plane
coordinates to WGS84 longitude/latitude, load the converted file into a
local SQLite store, and query or serve "crimes near a point" lookups.

Each pipeline stage is a subcommand: fetch, convert, load, near, and serve.
Dataset files are resolved against the configured data directory, never the
working directory.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./radar.yaml or ~/.config/radar/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory dataset files live in (default: data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("radar")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "radar"))
		}
	}

	viper.SetDefault("data_dir", dataset.DefaultDir)
	viper.SetEnvPrefix("RADAR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// dataDir resolves the data directory: the --data-dir flag wins, then the
// config file or RADAR_DATA_DIR, then the built-in default.
func dataDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		return dir
	}
	if dir := viper.GetString("data_dir"); dir != "" {
		return dir
	}
	return dataset.DefaultDir
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
