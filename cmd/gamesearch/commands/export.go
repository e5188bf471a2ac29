package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cliffyan/go-game-search-mcp/internal/engine"
	"github.com/cliffyan/go-game-search-mcp/internal/export"
	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

var exportDir string

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "output directory (default from config export.dir)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <provider> <query...>",
	Short: "Saves a store's search page, without scripts and styles, as an HTML file.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := exportDir
		if dir == "" {
			dir = cfg.Export.Dir
		}

		fetcher := engine.NewHTTPFetcher(engine.HTTPOptions{
			ProxyURL:  cfg.ProxyURL(),
			UserAgent: cfg.Search.UserAgent,
		})
		path, err := export.New(provider.Default(), fetcher, dir).
			Export(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}

		fmt.Println(path)
		return nil
	},
}
