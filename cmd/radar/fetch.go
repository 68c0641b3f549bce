package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abrookins/radar/internal/fetch"
	"github.com/abrookins/radar/pkg/types"
)

const (
	defaultFetchURL      = "https://www.civicapps.org/media/datasets/crime_incident_data.csv"
	defaultFetchFilename = "crime_incident_data.csv"
	defaultFetchTimeout  = 120 * time.Second
	defaultUserAgent     = "radar/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [url]",
	Short: "Download the raw crime incident dataset",
	Long: `Fetch downloads the crime incident CSV export into the data directory.
The download is written to a temp file and renamed into place, and an
existing file is not re-downloaded. Without a URL argument the configured
dataset URL is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("filename", "", "name to store the download under (default: crime_incident_data.csv)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 120s)")
	fetchCmd.Flags().Int("max-retries", 0, "retry budget for rate-limited requests (default 4)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	url := viper.GetString("fetch_url")
	if url == "" {
		url = defaultFetchURL
	}
	if len(args) == 1 {
		url = args[0]
	}

	filename, _ := cmd.Flags().GetString("filename")
	if filename == "" {
		filename = defaultFetchFilename
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}
	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		URL:        url,
		Filename:   filename,
		DataDir:    dataDir(cmd),
		MaxRetries: maxRetries,
	}

	client := &http.Client{Timeout: cfg.Timeout}

	_, err := fetch.Fetch(context.Background(), client, cfg, os.Stdout)
	return err
}
