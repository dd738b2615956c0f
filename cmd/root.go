package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/intelligrit/osrs-drops/internal/config"
	"github.com/intelligrit/osrs-drops/internal/scraper"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "osrs-drops",
	Short: "Look up monster drop tables on the Old School RuneScape wiki",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if !cmd.Flags().Changed("data-dir") {
			dataDir = cfg.Data.Dir
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "Directory for the drop table cache")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func Execute() error {
	return rootCmd.Execute()
}

func newClient() *scraper.Client {
	return scraper.NewClient(scraper.Options{
		Origin:    cfg.Wiki.BaseURL,
		UserAgent: cfg.Wiki.UserAgent,
		Timeout:   cfg.Wiki.Timeout(),
		Retries:   cfg.Wiki.Retries,
		RateLimit: cfg.Scrape.RateLimit,
		Logger:    slog.Default(),
	})
}

func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
