// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reproject

import (
	"fmt"
	"strings"

	proj "github.com/pebbe/proj/v5"
)

// EPSG codes for the coordinate reference systems this tool works with.
const (
	// EPSGOregonNorth is NAD83 / Oregon North, a Lambert conformal conic
	// State Plane zone measured in international feet.
	EPSGOregonNorth = 2269

	// EPSGOregonNorthHARN is the NAD83(HARN) realization of the same zone.
	EPSGOregonNorthHARN = 2913

	// EPSGWGS84 is geographic longitude/latitude on the WGS84 datum.
	EPSGWGS84 = 4326
)

// projDefinitions maps supported projected-system EPSG codes to proj-string
// definitions. Both Oregon North realizations share the same graticule, and
// the NAD83/WGS84 datum shift is zero at this dataset's precision, so the
// inverse projection alone yields WGS84-compatible coordinates.
var projDefinitions = map[int]string{
	EPSGOregonNorth: "+proj=lcc +lat_1=46 +lat_2=44.33333333333334 " +
		"+lat_0=43.66666666666666 +lon_0=-120.5 +x_0=2500000.0001424 +y_0=0 " +
		"+ellps=GRS80 +units=ft",
	EPSGOregonNorthHARN: "+proj=lcc +lat_1=46 +lat_2=44.33333333333334 " +
		"+lat_0=43.66666666666666 +lon_0=-120.5 +x_0=2500000.0001424 +y_0=0 " +
		"+ellps=GRS80 +units=ft",
}

// ProjTransformer reprojects planar coordinates to geodetic positions
// through the PROJ cartographic projections library.
type ProjTransformer struct {
	ctx *proj.Context
	pj  *proj.PJ
}

// NewProjTransformer builds a transformation between two systems identified
// by EPSG code. Only geographic WGS84 output is supported; the source must
// be one of the projected systems in projDefinitions.
func NewProjTransformer(srcEPSG, dstEPSG int) (*ProjTransformer, error) {
	if dstEPSG != EPSGWGS84 {
		return nil, fmt.Errorf("unsupported destination EPSG:%d (only EPSG:%d)", dstEPSG, EPSGWGS84)
	}
	def, ok := projDefinitions[srcEPSG]
	if !ok {
		return nil, fmt.Errorf("no projection definition for source EPSG:%d", srcEPSG)
	}

	// Inverse projection yields radians; the final step converts to degrees.
	definition := strings.Join([]string{
		"+proj=pipeline",
		"+step +inv " + def,
		"+step +proj=unitconvert +xy_in=rad +xy_out=deg",
	}, " ")

	ctx := proj.NewContext()
	pj, err := ctx.Create(definition)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("creating transformation EPSG:%d -> EPSG:%d: %w", srcEPSG, dstEPSG, err)
	}

	return &ProjTransformer{ctx: ctx, pj: pj}, nil
}

// Transform converts a projected (x, y) pair to a WGS84 position.
func (t *ProjTransformer) Transform(x, y float64) (Position, error) {
	lon, lat, _, _, err := t.pj.Trans(proj.Fwd, x, y, 0, 0)
	if err != nil {
		return Position{}, fmt.Errorf("transforming (%v, %v): %w", x, y, err)
	}
	return Position{Lat: lat, Lon: lon}, nil
}

// Close releases the underlying PROJ objects.
func (t *ProjTransformer) Close() {
	t.pj.Close()
	t.ctx.Close()
}
