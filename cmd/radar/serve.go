package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abrookins/radar/internal/dataset"
	"github.com/abrookins/radar/internal/radar"
	"github.com/abrookins/radar/internal/server"
	"github.com/abrookins/radar/pkg/types"
)

const defaultPort = 8081

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve nearby-crime lookups over HTTP",
	Long: `Serve loads a converted incident CSV into an in-memory spatial index and
answers HTTP queries:

  GET /crimes/near/{lat}/{lng}          incidents within half a mile, JSON
  GET /crimes/near/{lat}/{lng}/geojson  the same locations as GeoJSON
  GET /healthz                          index size`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "port number (default 8081)")
	serveCmd.Flags().StringP("file", "f", "crime_incident_data_wgs84.csv", "converted data filename")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := types.ServerConfig{
		DataDir: dataDir(cmd),
	}
	cfg.Port, _ = cmd.Flags().GetInt("port")
	if cfg.Port == 0 {
		cfg.Port = viper.GetInt("port")
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	cfg.File, _ = cmd.Flags().GetString("file")

	path := dataset.Resolve(cfg.DataDir, cfg.File)

	finder, err := radar.NewFinder(path)
	if err != nil {
		return fmt.Errorf("loading data file %s: %w", path, err)
	}

	srv := server.New(finder)

	fmt.Printf("Indexed %d incidents at %d locations.\n", finder.Crimes(), finder.Locations())
	fmt.Println("Running server on port", cfg.Port)
	return http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), srv.Router())
}
