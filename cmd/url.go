package cmd

import (
	"fmt"

	"github.com/intelligrit/osrs-drops/internal/scraper"
	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url <monster>",
	Short: "Print the wiki page and drops section links for a monster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if scraper.SanitizeName(args[0]) == "" {
			return scraper.ErrNoName
		}
		fmt.Println(scraper.WikiURL(cfg.Wiki.BaseURL, args[0]))
		fmt.Println(scraper.DropsURL(cfg.Wiki.BaseURL, args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(urlCmd)
}
