// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrookins/radar/pkg/types"
)

const sampleCSV = "Record ID,Report Date\n1,05/27/2011\n"

func testConfig(url, dir string) types.FetchConfig {
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "radar/test"},
		URL:        url,
		Filename:   "crime.csv",
		DataDir:    dir,
	}
}

func TestFetchDownloads(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(sampleCSV))
	}))
	defer ts.Close()

	dir := t.TempDir()
	var log bytes.Buffer

	skipped, err := Fetch(context.Background(), ts.Client(), testConfig(ts.URL, dir), &log)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, "radar/test", gotUA)

	data, err := os.ReadFile(filepath.Join(dir, "crime.csv"))
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(data))
	assert.Contains(t, log.String(), "downloaded: crime.csv")

	// Temp files must not survive a successful transfer.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFetchSkipsExisting(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("server should not be contacted for an existing file")
	}))
	defer ts.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crime.csv"), []byte("old"), 0o644))

	var log bytes.Buffer
	skipped, err := Fetch(context.Background(), ts.Client(), testConfig(ts.URL, dir), &log)
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Contains(t, log.String(), "already exists")
}

func TestFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	dir := t.TempDir()
	_, err := Fetch(context.Background(), ts.Client(), testConfig(ts.URL, dir), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")

	// No partial output may remain.
	_, statErr := os.Stat(filepath.Join(dir, "crime.csv"))
	assert.True(t, os.IsNotExist(statErr))
}
