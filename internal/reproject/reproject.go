// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reproject converts the projected State Plane coordinates in a
// crime incident CSV to WGS84 longitude and latitude.
//
// The conversion is a single streaming pass: the header row is copied
// verbatim, each data row has its coordinate columns (fields 8 and 9 in
// the standard export) reprojected through an injected Transformer, and
// rows whose coordinates are missing or cannot be transformed are dropped.
package reproject

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/abrookins/radar/pkg/types"
)

// Position is a geodetic coordinate in the destination system.
type Position struct {
	Lat float64
	Lon float64
}

// Transformer converts a projected planar coordinate pair into a geodetic
// position. The production implementation binds the PROJ library; tests
// substitute fakes.
type Transformer interface {
	Transform(x, y float64) (Position, error)
}

// Result holds the outcome of one conversion pass.
type Result struct {
	// Written is the number of data rows written to the output file.
	Written int

	// Dropped counts rows with a missing or zero coordinate. These are
	// dropped without being reported: an empty coordinate field parses as
	// zero, and a zero pair means the source had no location for the
	// incident. A legitimately zero coordinate is indistinguishable from
	// a missing one here, matching the historical importer.
	Dropped int

	// Skipped counts rows dropped because a coordinate field would not
	// parse, the row was too short, or the transformation failed. This is
	// the count reported to the user.
	Skipped int
}

// Total returns the number of data rows processed.
func (r Result) Total() int {
	return r.Written + r.Dropped + r.Skipped
}

// OutputSuffix is appended to the input filename when no output path is
// supplied: crime.csv becomes crime_wgs84.csv.
const OutputSuffix = "_wgs84.csv"

// OutputPath derives the default output path for inPath. The ".csv" suffix
// is stripped before OutputSuffix is appended, so the derived path never
// collides with the input file or an unrelated sibling.
func OutputPath(inPath string) string {
	return strings.TrimSuffix(inPath, ".csv") + OutputSuffix
}

// Convert streams rows from inPath to outPath, reprojecting the coordinate
// columns of every data row through t. The columns come from cfg; a config
// with both indexes unset means the standard export layout, fields 8 and 9.
// The header row passes through unmodified. Rows with a zero or empty
// coordinate are silently dropped; rows that fail parsing or transformation
// are dropped and counted in Result.Skipped. Processing continues after any
// per-row failure.
func Convert(t Transformer, cfg types.ConvertConfig, inPath, outPath string) (Result, error) {
	colX, colY := coordinateColumns(cfg)
	minFields := colX + 1
	if colY >= colX {
		minFields = colY + 1
	}

	in, err := os.Open(inPath)
	if err != nil {
		return Result{}, fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return Result{}, fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	writer := csv.NewWriter(out)

	var res Result
	for i := 0; ; i++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("reading row %d: %w", i, err)
		}

		// Row 0 is the header, written as-is regardless of content.
		if i == 0 {
			if err := writer.Write(row); err != nil {
				return res, fmt.Errorf("writing header: %w", err)
			}
			continue
		}

		if len(row) < minFields {
			res.Skipped++
			continue
		}

		x, errX := parseCoordinate(row[colX])
		y, errY := parseCoordinate(row[colY])
		if errX != nil || errY != nil {
			res.Skipped++
			continue
		}
		if x == 0 || y == 0 {
			res.Dropped++
			continue
		}

		pos, err := t.Transform(x, y)
		if err != nil {
			res.Skipped++
			continue
		}

		// The X column holds longitude after conversion; the Y column
		// holds latitude.
		row[colX] = formatCoordinate(pos.Lon)
		row[colY] = formatCoordinate(pos.Lat)

		if err := writer.Write(row); err != nil {
			return res, fmt.Errorf("writing row %d: %w", i, err)
		}
		res.Written++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return res, fmt.Errorf("flushing output: %w", err)
	}
	if err := out.Close(); err != nil {
		return res, fmt.Errorf("closing output: %w", err)
	}
	return res, nil
}

// coordinateColumns returns the configured coordinate column indexes, or
// the standard export layout when the config leaves both unset.
func coordinateColumns(cfg types.ConvertConfig) (x, y int) {
	if cfg.XColumn == 0 && cfg.YColumn == 0 {
		return types.ColX, types.ColY
	}
	return cfg.XColumn, cfg.YColumn
}

// parseCoordinate parses a raw coordinate field. An empty field is the
// numeric value zero, as in the historical importer.
func parseCoordinate(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
