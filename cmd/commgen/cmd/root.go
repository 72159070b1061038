package cmd

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/veec/commgen/internal/config"
	"github.com/veec/commgen/internal/ffvb"
	imagepkg "github.com/veec/commgen/internal/image"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "commgen",
	Short: "Match communication images for a volleyball club",
	Long: `commgen turns the federation match export of a club into ready-to-post
images: the weekend planning (date, venue, home or away) or the results
(outcome, set scores), in publication or story format.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		imagepkg.SetDebugLogging(verbose)
		ffvb.SetDebugLogging(verbose)
	},
}

func Execute() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "commgen:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $COMMGEN_CONFIG or config.yaml)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"commgen %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[commgen] "+format+"\n", args...)
	}
}

func loadConfig() (config.Config, config.Seasons, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("COMMGEN_CONFIG")
	}
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	seasons, err := config.LoadSeasons(cfg.Paths.Seasons)
	if err != nil {
		return cfg, nil, err
	}
	logVerbose("config %s, %d seasons from %s", path, len(seasons), cfg.Paths.Seasons)
	return cfg, seasons, nil
}

func newClient(cfg config.Config) *ffvb.Client {
	return &ffvb.Client{
		CSVURL:        cfg.FFVB.CSVURL,
		AddressPDFURL: cfg.FFVB.AddressPDFURL,
		PlanningURL:   cfg.FFVB.PlanningURL,
		ClubID:        cfg.Club.ID,
	}
}
