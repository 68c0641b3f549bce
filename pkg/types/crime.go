// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared records and configuration structs used
// across the radar pipeline stages.
package types

import (
	"fmt"
	"strconv"
)

// Column indexes of the Portland Police Bureau incident CSV export. The
// format is positional: there is no schema beyond these offsets, and the
// coordinate columns keep their original headers ("X Coordinate",
// "Y Coordinate") after conversion even though they then hold longitude
// and latitude.
const (
	ColID           = 0
	ColDate         = 1
	ColTime         = 2
	ColType         = 3
	ColAddress      = 4
	ColNeighborhood = 5
	ColPrecinct     = 6
	ColDistrict     = 7
	ColX            = 8
	ColY            = 9

	// MinColumns is the smallest row the pipeline accepts.
	MinColumns = 10
)

// Crime is one incident from a converted (WGS84) dataset.
type Crime struct {
	ID           int64   `json:"id"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Type         string  `json:"type"`
	Address      string  `json:"address,omitempty"`
	Neighborhood string  `json:"neighborhood,omitempty"`
	Precinct     string  `json:"precinct,omitempty"`
	District     string  `json:"district,omitempty"`
	Lon          float64 `json:"lon"`
	Lat          float64 `json:"lat"`
}

func (c Crime) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", c.ID, c.Date, c.Time, c.Type)
}

// CrimeFromRow parses one converted CSV data row into a Crime. The row must
// have at least MinColumns fields, an integer ID, and float coordinates.
func CrimeFromRow(row []string) (Crime, error) {
	if len(row) < MinColumns {
		return Crime{}, fmt.Errorf("row has %d fields, want at least %d", len(row), MinColumns)
	}

	id, err := strconv.ParseInt(row[ColID], 10, 64)
	if err != nil {
		return Crime{}, fmt.Errorf("parsing ID %q: %w", row[ColID], err)
	}
	lon, err := strconv.ParseFloat(row[ColX], 64)
	if err != nil {
		return Crime{}, fmt.Errorf("parsing longitude %q: %w", row[ColX], err)
	}
	lat, err := strconv.ParseFloat(row[ColY], 64)
	if err != nil {
		return Crime{}, fmt.Errorf("parsing latitude %q: %w", row[ColY], err)
	}

	return Crime{
		ID:           id,
		Date:         row[ColDate],
		Time:         row[ColTime],
		Type:         row[ColType],
		Address:      row[ColAddress],
		Neighborhood: row[ColNeighborhood],
		Precinct:     row[ColPrecinct],
		District:     row[ColDistrict],
		Lon:          lon,
		Lat:          lat,
	}, nil
}
