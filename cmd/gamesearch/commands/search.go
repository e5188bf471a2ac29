package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/cliffyan/go-game-search-mcp/internal/engine"
)

var searchJSON bool

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:     "search <provider> <query...>",
	Short:   "Searches one store and prints every result.",
	Example: "  gamesearch search steam half life",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		query := strings.Join(args[1:], " ")

		d, ok := manager.Lookup(key)
		if !ok {
			return fmt.Errorf("unknown provider %q, see `gamesearch providers`", key)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()

		games, err := manager.Search(ctx, d.Key, query)
		if err != nil {
			return err
		}

		if searchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(games)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle(fmt.Sprintf("%s: %s", d.Name, query))
		t.AppendHeader(table.Row{"#", "Title", "Price", "Platforms", "Released", "ID", "URL"})
		for i, g := range games {
			t.AppendRow(table.Row{i + 1, g.Title, g.Price, platformList(g.Platforms), g.ReleaseDate, g.ID, g.URL})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}

func platformList(platforms []engine.Platform) string {
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
