package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cleanhtml/pkg/cleanhtml"
	"github.com/jmylchreest/cleanhtml/pkg/fetcher"
)

var quotesCmd = &cobra.Command{
	Use:   "quotes [file|-]",
	Short: "Replace typographic quotes with ASCII quotes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		initLogger()

		out, _ := cmd.Flags().GetString("output")
		src := sourceFromArgs(args)
		src.IsURL = false

		input, err := readInput(context.Background(), src, 0, fetcher.StaticConfig{})
		if err != nil {
			return err
		}
		return writeOutput(out, cleanhtml.ChangeQuotes(input))
	},
}

func init() {
	rootCmd.AddCommand(quotesCmd)
	quotesCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
}
