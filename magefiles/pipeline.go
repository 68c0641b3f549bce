//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// radarBin runs the built CLI with the given arguments.
func radarBin(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Fetch downloads the raw incident dataset into data/.
func Fetch() error {
	mg.Deps(Build)
	return radarBin("fetch")
}

// Convert reprojects the raw dataset to WGS84.
func Convert() error {
	mg.Deps(Build)
	return radarBin("convert", "crime_incident_data.csv")
}

// Load ingests the converted dataset into the SQLite store.
func Load() error {
	mg.Deps(Build)
	return radarBin("load", "crime_incident_data_wgs84.csv")
}

// Pipeline runs fetch, convert, and load in order.
func Pipeline() error {
	mg.SerialDeps(Fetch, Convert, Load)
	fmt.Println("Pipeline complete.")
	return nil
}
