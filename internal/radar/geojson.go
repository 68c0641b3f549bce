// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package radar

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ToFeatureCollection renders a location slice as a GeoJSON
// FeatureCollection: one point feature per location, with the incident
// list and count in the feature properties.
func ToFeatureCollection(locs []*Location) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(locs))}
	for _, loc := range locs {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{loc.Lon, loc.Lat}),
			Properties: map[string]interface{}{
				"count":  len(loc.Crimes),
				"crimes": loc.Crimes,
			},
		})
	}
	return fc
}
