// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package radar answers "which crimes happened near this point" queries
// over a converted (WGS84) incident dataset held in memory.
//
// Incidents are grouped by coordinate into locations, and the locations
// are indexed in an r-tree. A query searches a fixed window around the
// point and filters the hits by great-circle distance.
package radar

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/abrookins/radar/pkg/types"
)

const (
	// searchWindowDeg approximates half a mile in degrees at Portland's
	// latitude; it bounds the r-tree search before distance filtering.
	searchWindowDeg = 0.01

	// RadiusMiles is the search radius FindNear honors.
	RadiusMiles = 0.5

	earthRadiusMiles = 3959.0

	// pointTolerance inflates a location's point into a minimal r-tree
	// rectangle.
	pointTolerance = 1e-7
)

// Location is a unique coordinate and the incidents recorded at it.
type Location struct {
	Lon    float64        `json:"lon"`
	Lat    float64        `json:"lat"`
	Crimes []*types.Crime `json:"crimes"`
}

// Bounds implements rtreego.Spatial.
func (l *Location) Bounds() rtreego.Rect {
	return rtreego.Point{l.Lon, l.Lat}.ToRect(pointTolerance)
}

// Finder indexes crime locations for nearby lookups.
type Finder struct {
	tree       *rtreego.Rtree
	locations  map[string]*Location
	crimeCount int
}

// NewFinder loads a converted incident CSV into a Finder. Rows that fail
// to parse are ignored, matching the historical loader's filtering.
func NewFinder(path string) (*Finder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var crimes []types.Crime
	for i := 0; ; i++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", i, err)
		}
		if i == 0 {
			continue
		}
		crime, err := types.CrimeFromRow(row)
		if err != nil {
			continue
		}
		crimes = append(crimes, crime)
	}

	return NewFinderFromCrimes(crimes), nil
}

// NewFinderFromCrimes builds a Finder over an incident slice.
func NewFinderFromCrimes(crimes []types.Crime) *Finder {
	finder := &Finder{locations: make(map[string]*Location)}

	for i := range crimes {
		crime := crimes[i]
		k := coordKey(crime.Lon, crime.Lat)
		loc, ok := finder.locations[k]
		if !ok {
			loc = &Location{Lon: crime.Lon, Lat: crime.Lat}
			finder.locations[k] = loc
		}
		loc.Crimes = append(loc.Crimes, &crime)
		finder.crimeCount++
	}

	spatials := make([]rtreego.Spatial, 0, len(finder.locations))
	for _, loc := range finder.locations {
		spatials = append(spatials, loc)
	}
	finder.tree = rtreego.NewTree(2, 25, 50, spatials...)
	return finder
}

// FindNear returns the locations within RadiusMiles of (lat, lng), closest
// first. The r-tree is searched with a square window, then hits beyond the
// radius are filtered out, so a window corner never leaks into the result.
func (f *Finder) FindNear(lat, lng float64) []*Location {
	window, err := rtreego.NewRect(
		rtreego.Point{lng - searchWindowDeg, lat - searchWindowDeg},
		[]float64{2 * searchWindowDeg, 2 * searchWindowDeg})
	if err != nil {
		// Only reachable with a non-positive window size.
		return nil
	}

	hits := f.tree.SearchIntersect(window)

	nearby := make([]*Location, 0, len(hits))
	for _, hit := range hits {
		loc := hit.(*Location)
		if greatCircleMiles(lat, lng, loc.Lat, loc.Lon) <= RadiusMiles {
			nearby = append(nearby, loc)
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		di := greatCircleMiles(lat, lng, nearby[i].Lat, nearby[i].Lon)
		dj := greatCircleMiles(lat, lng, nearby[j].Lat, nearby[j].Lon)
		if di != dj {
			return di < dj
		}
		return coordKey(nearby[i].Lon, nearby[i].Lat) < coordKey(nearby[j].Lon, nearby[j].Lat)
	})
	return nearby
}

// Locations returns the number of unique coordinates indexed.
func (f *Finder) Locations() int {
	return len(f.locations)
}

// Crimes returns the total number of incidents indexed.
func (f *Finder) Crimes() int {
	return f.crimeCount
}

// AllCrimes returns every incident across a location slice, in location
// order.
func AllCrimes(locs []*Location) []*types.Crime {
	var crimes []*types.Crime
	for _, loc := range locs {
		crimes = append(crimes, loc.Crimes...)
	}
	return crimes
}

func coordKey(lon, lat float64) string {
	return fmt.Sprintf("%v,%v", lon, lat)
}

// greatCircleMiles is the haversine distance between two WGS84 points.
func greatCircleMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	rLat1 := lat1 * (math.Pi / 180.0)
	rLat2 := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(rLat1)*math.Cos(rLat2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}
