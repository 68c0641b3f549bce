package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abrookins/radar/internal/store"
	"github.com/abrookins/radar/pkg/types"
)

// nearWindowDeg approximates half a mile in degrees at Portland's latitude.
const nearWindowDeg = 0.01

var nearCmd = &cobra.Command{
	Use:   "near <lat> <lng>",
	Short: "Query the local store for incidents near a point",
	Long: `Near lists incidents from the SQLite store within a coordinate window
around the given WGS84 point. Use --stats to print per-offense-type counts
for the whole store instead.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runNear,
}

func init() {
	nearCmd.Flags().String("db-file", store.DefaultDBFile, "database filename inside the data directory")
	nearCmd.Flags().Float64("window", nearWindowDeg, "half-width of the search window in degrees")
	nearCmd.Flags().Int("max-results", 0, "maximum incidents to return (default 100)")
	nearCmd.Flags().Bool("json", false, "output results as JSON")
	nearCmd.Flags().Bool("stats", false, "print incident counts per offense type")

	rootCmd.AddCommand(nearCmd)
}

func runNear(cmd *cobra.Command, args []string) error {
	dir := dataDir(cmd)
	dbFile, _ := cmd.Flags().GetString("db-file")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	s, err := store.Open(types.StoreConfig{DataDir: dir, DBFile: dbFile, MaxResults: maxResults})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		return printStats(ctx, s, cmd)
	}

	if len(args) != 2 {
		return fmt.Errorf("provide a latitude and longitude, or --stats")
	}
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("parsing latitude %q: %w", args[0], err)
	}
	lng, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("parsing longitude %q: %w", args[1], err)
	}

	window, _ := cmd.Flags().GetFloat64("window")
	crimes, err := s.Near(ctx, lat, lng, window)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(crimes)
	}

	for _, c := range crimes {
		fmt.Printf("%d  %s %s  %-30s %s\n", c.ID, c.Date, c.Time, c.Type, c.Address)
	}
	fmt.Printf("%d incidents within %.3f degrees of (%v, %v)\n", len(crimes), window, lat, lng)
	return nil
}

func printStats(ctx context.Context, s *store.Store, cmd *cobra.Command) error {
	counts, err := s.TypeCounts(ctx)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(counts)
	}

	for _, tc := range counts {
		fmt.Printf("%6d  %s\n", tc.Count, tc.Type)
	}
	return nil
}
