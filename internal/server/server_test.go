// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abrookins/radar/internal/radar"
	"github.com/abrookins/radar/pkg/types"
)

var (
	testLat = 45.53435699129174
	testLng = -122.66469510763777
)

func testServer() *httptest.Server {
	finder := radar.NewFinderFromCrimes([]types.Crime{
		{ID: 1, Date: "05/27/2011", Time: "08:35:00", Type: "Burglary", Lon: testLng + 0.001, Lat: testLat},
		{ID: 2, Date: "05/27/2011", Time: "09:00:00", Type: "Theft", Lon: testLng + 0.001, Lat: testLat},
		{ID: 3, Date: "05/28/2011", Time: "10:00:00", Type: "Robbery", Lon: -122.5, Lat: 45.4},
	})
	return httptest.NewServer(New(finder).Router())
}

func TestNearEndpoint(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp, err := http.Get(fmt.Sprintf("%s/crimes/near/%v/%v", ts.URL, testLat, testLng))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}

	var body struct {
		Count  int `json:"count"`
		Crimes []struct {
			ID   int64  `json:"id"`
			Type string `json:"type"`
		} `json:"crimes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Count != 2 {
		t.Errorf("count = %d, want 2 (distant incident excluded)", body.Count)
	}
	if len(body.Crimes) != 2 {
		t.Fatalf("crimes = %d, want 2", len(body.Crimes))
	}
}

func TestNearEndpointEmptyResult(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	// Downtown Salem, nowhere near the fixtures.
	resp, err := http.Get(ts.URL + "/crimes/near/44.9429/-123.0351")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		Count  int               `json:"count"`
		Crimes []json.RawMessage `json:"crimes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Count != 0 {
		t.Errorf("count = %d, want 0", body.Count)
	}
	if body.Crimes == nil {
		t.Error("crimes should encode as an empty array, not null")
	}
}

func TestNearEndpointRejectsNonNumericPath(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/crimes/near/not-a-lat/also-not")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for a non-numeric path", resp.StatusCode)
	}
}

func TestNearGeoJSONEndpoint(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp, err := http.Get(fmt.Sprintf("%s/crimes/near/%v/%v/geojson", ts.URL, testLat, testLng))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("content type = %q, want application/geo+json", ct)
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		t.Fatalf("decoding GeoJSON: %v", err)
	}
	if fc.Type != "FeatureCollection" {
		t.Errorf("type = %q, want FeatureCollection", fc.Type)
	}
	if len(fc.Features) != 1 {
		t.Errorf("features = %d, want 1 location", len(fc.Features))
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["crimes"] != 3 {
		t.Errorf("crimes = %d, want 3", body["crimes"])
	}
	if body["locations"] != 2 {
		t.Errorf("locations = %d, want 2", body["locations"])
	}
}
