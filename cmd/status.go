package cmd

import (
	"fmt"
	"sort"

	"github.com/intelligrit/osrs-drops/internal/store"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is in the drop table cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		fmt.Printf("Cache Status\n")
		fmt.Printf("============\n")
		fmt.Printf("Monsters cached: %d\n", s.MonsterCount())
		fmt.Printf("Drop entries:    %d\n", s.EntryCount())

		byType := s.EntryCountByType()
		if len(byType) > 0 {
			fmt.Printf("\nPer-Table Breakdown\n")
			fmt.Printf("-------------------\n")

			var types []string
			for t := range byType {
				types = append(types, t)
			}
			sort.Strings(types)

			for _, t := range types {
				fmt.Printf("  %-22s %5d\n", t, byType[t])
			}
		}

		if verbose {
			monsters, err := s.Monsters()
			if err != nil {
				return fmt.Errorf("listing monsters: %w", err)
			}
			fmt.Printf("\nMonsters\n")
			fmt.Printf("--------\n")
			for _, m := range monsters {
				fmt.Printf("  %-28s tables: %2d  entries: %3d  scraped: %s\n",
					m.Page, m.TableCount, m.EntryCount, m.ScrapedAt)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
