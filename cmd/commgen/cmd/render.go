package cmd

import (
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/veec/commgen/internal/api"
	imagepkg "github.com/veec/commgen/internal/image"
	"github.com/veec/commgen/internal/matches"
	"github.com/veec/commgen/internal/util"
)

var (
	renderCSV        string
	renderSeason     string
	renderFormat     string
	renderMode       string
	renderTitle      string
	renderCategories []string
	renderFrom       string
	renderTo         string
	renderOut        string
	renderCaption    bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a planning or results image",
	Long: `Loads the match export of a season (downloaded from the federation,
or read from a local CSV with --csv), keeps the matches selected by
--categories, --from and --to, and writes the composed image.

The output format follows the file extension (png or jpg).`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderCSV, "csv", "", "read matches from a local export instead of downloading them")
	renderCmd.Flags().StringVarP(&renderSeason, "saison", "s", "", "season, e.g. 2025/2026 (default from config)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "pub", "output format (pub, story)")
	renderCmd.Flags().StringVarP(&renderMode, "mode", "m", "planning", "planning or results")
	renderCmd.Flags().StringVarP(&renderTitle, "title", "t", "", "image title")
	renderCmd.Flags().StringSliceVar(&renderCategories, "categories", nil, "category codes to keep (default all)")
	renderCmd.Flags().StringVar(&renderFrom, "from", "", "first day, YYYY-MM-DD")
	renderCmd.Flags().StringVar(&renderTo, "to", "", "last day, YYYY-MM-DD")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "commgen.png", "output file")
	renderCmd.Flags().BoolVar(&renderCaption, "caption", false, "also print the caption text")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, seasons, err := loadConfig()
	if err != nil {
		return err
	}
	filter, err := matches.NewFilterSpec(renderCategories, renderFrom, renderTo)
	if err != nil {
		return err
	}
	season := renderSeason
	if season == "" {
		season = cfg.Club.Saison
	}

	srv, err := api.New(cfg, seasons)
	if err != nil {
		return err
	}

	var recs []matches.MatchRecord
	if renderCSV != "" {
		logVerbose("reading %s", renderCSV)
		recs, err = matches.LoadCSVFile(renderCSV)
	} else {
		logVerbose("downloading season %s for club %s", season, cfg.Club.ID)
		recs, err = srv.Matches.FetchMatches(context.Background(), season)
	}
	if err != nil {
		return err
	}

	mode := imagepkg.ParseMode(renderMode)
	engine := srv.Engine(season)
	out, err := engine.Compose(context.Background(), recs, filter, renderTitle, renderFormat, mode)
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}
	if err := util.EnsureParentDir(renderOut); err != nil {
		return err
	}
	if err := imaging.Save(out, renderOut); err != nil {
		return fmt.Errorf("write %s: %w", renderOut, err)
	}

	ms := engine.Matches(recs, filter)
	fmt.Printf("%s: %d matches, %s/%s\n", renderOut, len(ms), renderFormat, mode.Name())
	if renderCaption {
		_, results := mode.(imagepkg.Results)
		fmt.Println()
		fmt.Println(matches.ExportCaption(renderTitle, ms, results))
	}
	return nil
}
