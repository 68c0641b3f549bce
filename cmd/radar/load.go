package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abrookins/radar/internal/dataset"
	"github.com/abrookins/radar/internal/store"
	"github.com/abrookins/radar/pkg/types"
)

var loadCmd = &cobra.Command{
	Use:   "load <converted-csv>",
	Short: "Load a converted incident CSV into the local store",
	Long: `Load ingests a WGS84-converted incident CSV into the SQLite store in the
data directory. Incidents are keyed by record ID, so reloading a file
replaces its rows rather than duplicating them.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().String("db-file", store.DefaultDBFile, "database filename inside the data directory")

	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	dir := dataDir(cmd)
	dbFile, _ := cmd.Flags().GetString("db-file")

	s, err := store.Open(types.StoreConfig{DataDir: dir, DBFile: dbFile})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	path := dataset.Resolve(dir, args[0])

	if _, err := s.LoadCSV(ctx, path, os.Stdout); err != nil {
		return err
	}

	total, err := s.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("store now holds %d incidents\n", total)
	return nil
}
