package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(providersCmd)
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Lists the stores that can be searched.",
	Run: func(cmd *cobra.Command, args []string) {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Key", "Name", "Data", "Search page"})
		for _, d := range manager.Providers() {
			t.AppendRow(table.Row{d.Key, d.Name, d.DataType, d.SearchPageURL("")})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
