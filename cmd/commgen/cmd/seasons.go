package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/veec/commgen/internal/config"
	"github.com/veec/commgen/internal/util"
)

var seasonsOut string

var seasonsCmd = &cobra.Command{
	Use:   "seasons <season>...",
	Short: "Scrape the club poules of each season into the seasons file",
	Long: `Downloads the club planning page of every season given (2024/2025 ...)
and stores its poules with their team label in the seasons file. Seasons
already in the file are kept; a season that fails is stored with its error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSeasons,
}

func init() {
	seasonsCmd.Flags().StringVarP(&seasonsOut, "out", "o", "", "seasons file (default paths.seasons from config)")
	rootCmd.AddCommand(seasonsCmd)
}

func runSeasons(cmd *cobra.Command, args []string) error {
	cfg, seasons, err := loadConfig()
	if err != nil {
		return err
	}
	out := seasonsOut
	if out == "" {
		out = cfg.Paths.Seasons
	}
	if seasons == nil {
		seasons = config.Seasons{}
	}

	built := newClient(cfg).BuildSeasons(context.Background(), args)
	keys := make([]string, 0, len(built))
	for k, s := range built {
		seasons[k] = s
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if err := util.EnsureParentDir(out); err != nil {
		return err
	}
	if err := seasons.Save(out); err != nil {
		return err
	}
	for _, k := range keys {
		if e := built[k].Error; e != "" {
			fmt.Printf("  %s  error: %s\n", k, e)
			continue
		}
		fmt.Printf("  %s  %d poules\n", k, len(built[k].Poules))
	}
	fmt.Printf("saved %s\n", out)
	return nil
}
