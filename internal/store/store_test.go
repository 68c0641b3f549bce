// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abrookins/radar/pkg/types"
)

const header = "Record ID,Report Date,Report Time,Major Offense Type,Address,Neighborhood,Police Precinct,Police District,X Coordinate,Y Coordinate"

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(types.StoreConfig{DataDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func writeCSV(t *testing.T, dir string, rows ...string) string {
	t.Helper()
	path := filepath.Join(dir, "crime_wgs84.csv")
	content := strings.Join(append([]string{header}, rows...), "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func incidentRow(id int, crimeType string, lon, lat float64) string {
	return fmt.Sprintf("%d,05/27/2011,08:35:00,%s,NE SCHUYLER ST,ELIOT,PORTLAND PREC NO,590,%v,%v",
		id, crimeType, lon, lat)
}

func TestLoadCSV(t *testing.T) {
	s, dir := testStore(t)
	path := writeCSV(t, dir,
		incidentRow(1, "Burglary", -122.6646, 45.5357),
		incidentRow(2, "Liquor Laws", -122.6650, 45.5360),
		"not-an-id,05/27/2011,08:35:00,Theft,addr,hood,prec,590,-122.66,45.53",
	)

	var log bytes.Buffer
	summary, err := s.LoadCSV(context.Background(), path, &log)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if summary.Loaded != 2 || summary.Skipped != 1 {
		t.Errorf("summary = %+v, want 2 loaded, 1 skipped", summary)
	}
	if !strings.Contains(log.String(), "loaded 2 incidents (1 skipped)") {
		t.Errorf("unexpected summary line: %q", log.String())
	}

	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestLoadCSVIsIdempotent(t *testing.T) {
	s, dir := testStore(t)
	path := writeCSV(t, dir, incidentRow(1, "Burglary", -122.6646, 45.5357))

	for i := 0; i < 2; i++ {
		if _, err := s.LoadCSV(context.Background(), path, &bytes.Buffer{}); err != nil {
			t.Fatalf("LoadCSV run %d: %v", i, err)
		}
	}

	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Count after reload = %d, want 1", n)
	}
}

func TestNear(t *testing.T) {
	s, dir := testStore(t)
	path := writeCSV(t, dir,
		incidentRow(1, "Burglary", -122.6646, 45.5357),
		incidentRow(2, "Theft", -122.6650, 45.5360),
		// Out of window: across town.
		incidentRow(3, "Robbery", -122.5000, 45.4000),
	)
	if _, err := s.LoadCSV(context.Background(), path, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	crimes, err := s.Near(context.Background(), 45.5357, -122.6646, 0.01)
	if err != nil {
		t.Fatalf("Near: %v", err)
	}
	if len(crimes) != 2 {
		t.Fatalf("Near returned %d incidents, want 2", len(crimes))
	}
	if crimes[0].ID != 1 || crimes[1].ID != 2 {
		t.Errorf("Near order = %v, %v, want IDs 1, 2", crimes[0].ID, crimes[1].ID)
	}
	if crimes[0].Type != "Burglary" {
		t.Errorf("Type = %q, want Burglary", crimes[0].Type)
	}
}

func TestNearHonorsMaxResults(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(types.StoreConfig{DataDir: dir, MaxResults: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	rows := make([]string, 0, 5)
	for i := 1; i <= 5; i++ {
		rows = append(rows, incidentRow(i, "Theft", -122.6646, 45.5357))
	}
	path := writeCSV(t, dir, rows...)
	if _, err := s.LoadCSV(context.Background(), path, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	crimes, err := s.Near(context.Background(), 45.5357, -122.6646, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if len(crimes) != 2 {
		t.Errorf("Near returned %d incidents, want cap of 2", len(crimes))
	}
}

func TestTypeCounts(t *testing.T) {
	s, dir := testStore(t)
	path := writeCSV(t, dir,
		incidentRow(1, "Theft", -122.66, 45.53),
		incidentRow(2, "Theft", -122.67, 45.54),
		incidentRow(3, "Burglary", -122.68, 45.55),
	)
	if _, err := s.LoadCSV(context.Background(), path, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	counts, err := s.TypeCounts(context.Background())
	if err != nil {
		t.Fatalf("TypeCounts: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("TypeCounts returned %d types, want 2", len(counts))
	}
	if counts[0].Type != "Theft" || counts[0].Count != 2 {
		t.Errorf("counts[0] = %+v, want Theft x2", counts[0])
	}
}
