package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/intelligrit/osrs-drops/internal/model"
	"github.com/intelligrit/osrs-drops/internal/store"
	"github.com/spf13/cobra"
)

var (
	dropsJSON bool
	dropsSave bool
)

var dropsCmd = &cobra.Command{
	Use:   "drops <monster> [monster...]",
	Short: "Fetch and print a monster's drop tables",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var s *store.Store
		if dropsSave {
			var err error
			s, err = store.New(dataDir)
			if err != nil {
				return err
			}
			defer s.Close()
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		return runDrops(ctx, os.Stdout, newClient(), s, args, dropsJSON)
	},
}

type monsterFetcher interface {
	WikiURL(name string) string
	FetchMonster(ctx context.Context, name string) (*model.MonsterDrops, error)
}

// runDrops fetches each monster in turn. With asJSON set, the monsters fetched
// before an interrupt are still written out.
func runDrops(ctx context.Context, w io.Writer, client monsterFetcher, s *store.Store, names []string, asJSON bool) error {
	results := []*model.MonsterDrops{}
loop:
	for i, name := range names {
		select {
		case <-ctx.Done():
			fmt.Fprintf(os.Stderr, "\nInterrupted after %d/%d monsters\n", i, len(names))
			break loop
		default:
		}

		logVerbose("  [%d/%d] %s", i+1, len(names), client.WikiURL(name))

		md, err := client.FetchMonster(ctx, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  WARNING: failed to fetch %q: %v\n", name, err)
			continue
		}

		if s != nil {
			if err := s.WriteDrops(md); err != nil {
				return fmt.Errorf("saving drops: %w", err)
			}
		}

		if asJSON {
			results = append(results, md)
			continue
		}
		printDrops(w, md)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	return nil
}

func printDrops(w io.Writer, md *model.MonsterDrops) {
	fmt.Fprintf(w, "%s (%s)\n", strings.ReplaceAll(md.Page, "_", " "), md.DropsURL)
	if md.Tables.Len() == 0 {
		fmt.Fprintln(w, "  No drop tables found.")
		return
	}

	for typ, entries := range md.Tables.All() {
		fmt.Fprintf(w, "\n  %s\n", typ)
		for _, e := range entries {
			fmt.Fprintf(w, "    %-32s x%-7d %-14s %s\n", e.Name, e.Quantity, e.RarityText, priceText(e.Price))
		}
	}
	fmt.Fprintln(w)
}

func priceText(a model.Amount) string {
	if !a.Known {
		return "?"
	}
	return fmt.Sprintf("%d gp", a.Value)
}

func init() {
	dropsCmd.Flags().BoolVar(&dropsJSON, "json", false, "Print results as JSON")
	dropsCmd.Flags().BoolVar(&dropsSave, "save", false, "Cache results in the data directory")
	rootCmd.AddCommand(dropsCmd)
}
