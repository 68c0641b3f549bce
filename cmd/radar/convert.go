package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abrookins/radar/internal/dataset"
	"github.com/abrookins/radar/internal/reproject"
	"github.com/abrookins/radar/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input-file> [output-file]",
	Short: "Reproject a crime CSV from State Plane to WGS84",
	Long: `Convert reads a crime incident CSV whose coordinate columns hold NAD83
Oregon North State Plane values (international feet) and writes a copy with
those columns replaced by WGS84 longitude and latitude.

The input path is resolved against the data directory. When no output file
is given, the output name is the input name with "_wgs84.csv" in place of
".csv" (crime.csv becomes crime_wgs84.csv). Rows without coordinates are
dropped; rows whose coordinates cannot be transformed are dropped and
counted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Int("source-epsg", 0, "EPSG code of the input projection (default: manifest entry or 2269)")
	convertCmd.Flags().Int("target-epsg", reproject.EPSGWGS84, "EPSG code of the output system")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	dir := dataDir(cmd)
	inPath := dataset.Resolve(dir, args[0])

	outPath := reproject.OutputPath(inPath)
	if len(args) == 2 {
		outPath = dataset.Resolve(dir, args[1])
	}

	manifest, err := dataset.LoadManifest(dir)
	if err != nil {
		return err
	}
	ds, _ := manifest.Lookup(inPath)

	cfg := types.ConvertConfig{
		SourceEPSG: ds.SourceEPSG,
		DataDir:    dir,
		XColumn:    ds.XColumn,
		YColumn:    ds.YColumn,
	}
	if epsg, _ := cmd.Flags().GetInt("source-epsg"); epsg != 0 {
		cfg.SourceEPSG = epsg
	}
	cfg.TargetEPSG, _ = cmd.Flags().GetInt("target-epsg")

	transformer, err := reproject.NewProjTransformer(cfg.SourceEPSG, cfg.TargetEPSG)
	if err != nil {
		return err
	}
	defer transformer.Close()

	res, err := reproject.Convert(transformer, cfg, inPath, outPath)
	if err != nil {
		return err
	}

	fmt.Println("Import complete.")
	if res.Skipped > 0 {
		fmt.Printf("%d records skipped due to missing or invalid coordinates.\n", res.Skipped)
	}
	return nil
}
