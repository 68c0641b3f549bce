// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads the raw crime incident dataset into the data
// directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/abrookins/radar/internal/dataset"
	"github.com/abrookins/radar/internal/httputil"
	"github.com/abrookins/radar/pkg/types"
)

// Fetch downloads cfg.URL into cfg.DataDir/cfg.Filename. The download goes
// to a temp file in the destination directory and is renamed into place on
// success, so a failed transfer never leaves a partial dataset behind. An
// existing file is not re-downloaded; skipped reports that case.
func Fetch(ctx context.Context, client *http.Client, cfg types.FetchConfig, w io.Writer) (skipped bool, err error) {
	destPath := dataset.Resolve(cfg.DataDir, cfg.Filename)

	if _, err := os.Stat(destPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", cfg.Filename)
		return true, nil
	}

	if err := dataset.EnsureDir(cfg.DataDir); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "text/csv")

	fmt.Fprintf(w, "downloading: %s\n", cfg.URL)

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries, w)
	if err != nil {
		return false, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("HTTP %d from %s", resp.StatusCode, cfg.URL)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	n, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("renaming temp file: %w", err)
	}

	fmt.Fprintf(w, "downloaded: %s (%d bytes)\n", cfg.Filename, n)
	return false, nil
}
