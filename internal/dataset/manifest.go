// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/abrookins/radar/pkg/types"
)

// ManifestFile is the manifest filename inside the data directory.
const ManifestFile = "datasets.yaml"

// defaultSourceEPSG is NAD83 / Oregon North, the system the Portland
// Police Bureau export uses.
const defaultSourceEPSG = 2269

// Manifest describes the datasets the data directory may contain. It lets
// alternate exports (for example an NAD83(HARN) file) declare their source
// system without command-line flags.
type Manifest struct {
	Datasets []Dataset `yaml:"datasets"`
}

// Dataset is one manifest entry.
type Dataset struct {
	// Name is a short human label for the dataset.
	Name string `yaml:"name"`

	// File is the dataset filename inside the data directory.
	File string `yaml:"file"`

	// SourceEPSG is the EPSG code of the projected system the file uses.
	SourceEPSG int `yaml:"source_epsg"`

	// XColumn and YColumn are the zero-based indexes of the coordinate
	// columns. Entries that omit both use the standard export layout,
	// columns 8 and 9.
	XColumn int `yaml:"x_column"`
	YColumn int `yaml:"y_column"`
}

// DefaultDataset describes a file with no manifest entry: the standard
// Portland export in NAD83 / Oregon North.
func DefaultDataset(file string) Dataset {
	return Dataset{
		Name:       "portland-crime",
		File:       filepath.Base(file),
		SourceEPSG: defaultSourceEPSG,
		XColumn:    types.ColX,
		YColumn:    types.ColY,
	}
}

// LoadManifest reads the manifest from dir. A missing manifest is not an
// error; it yields an empty Manifest so lookups fall through to defaults.
func LoadManifest(dir string) (Manifest, error) {
	if dir == "" {
		dir = DefaultDir
	}
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, nil
		}
		return Manifest{}, fmt.Errorf("reading %s: %w", ManifestFile, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing %s: %w", ManifestFile, err)
	}
	return m, nil
}

// Lookup finds the manifest entry whose File matches the base name of path.
// When no entry matches it returns DefaultDataset(path) and false.
func (m Manifest) Lookup(path string) (Dataset, bool) {
	base := filepath.Base(path)
	for _, d := range m.Datasets {
		if d.File == base {
			if d.SourceEPSG == 0 {
				d.SourceEPSG = defaultSourceEPSG
			}
			if d.XColumn == 0 && d.YColumn == 0 {
				d.XColumn = types.ColX
				d.YColumn = types.ColY
			}
			return d, true
		}
	}
	return DefaultDataset(path), false
}
