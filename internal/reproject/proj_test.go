// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reproject

import "testing"

// newProjOrSkip builds the production transformer, skipping the test when
// the PROJ C library is not installed on the host.
func newProjOrSkip(t *testing.T, src, dst int) *ProjTransformer {
	t.Helper()
	tr, err := NewProjTransformer(src, dst)
	if err != nil {
		t.Skipf("PROJ unavailable: %v", err)
	}
	t.Cleanup(tr.Close)
	return tr
}

func TestProjTransformerRoundTrip(t *testing.T) {
	tr := newProjOrSkip(t, EPSGOregonNorth, EPSGWGS84)

	// A State Plane position in inner Portland, in international feet.
	pos, err := tr.Transform(7647525.0, 683678.0)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if pos.Lon > -122.0 || pos.Lon < -123.0 {
		t.Errorf("longitude = %v, want approximately -122.x", pos.Lon)
	}
	if pos.Lat < 45.0 || pos.Lat > 46.0 {
		t.Errorf("latitude = %v, want approximately 45.x", pos.Lat)
	}
}

func TestNewProjTransformerUnknownSource(t *testing.T) {
	if _, err := NewProjTransformer(99999, EPSGWGS84); err == nil {
		t.Fatal("expected error for unknown source EPSG code")
	}
}

func TestNewProjTransformerUnsupportedDestination(t *testing.T) {
	if _, err := NewProjTransformer(EPSGOregonNorth, EPSGOregonNorth); err == nil {
		t.Fatal("expected error for non-WGS84 destination")
	}
}
