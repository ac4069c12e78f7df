package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cleanhtml/pkg/autop"
	"github.com/jmylchreest/cleanhtml/pkg/fetcher"
)

var autopCmd = &cobra.Command{
	Use:   "autop [file|-]",
	Short: "Convert plain text into paragraph markup",
	Long: `Wrap blank-line separated blocks of text in <p> elements.

Single newlines become <br /> unless --no-br is set. Existing block
markup is left alone and <pre> contents are never changed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAutop,
}

func init() {
	rootCmd.AddCommand(autopCmd)
	autopCmd.Flags().Bool("no-br", false, "do not convert single newlines to <br />")
	autopCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
}

func runAutop(cmd *cobra.Command, args []string) error {
	initLogger()

	noBR, _ := cmd.Flags().GetBool("no-br")
	out, _ := cmd.Flags().GetString("output")

	src := sourceFromArgs(args)
	src.IsURL = false
	input, err := readInput(context.Background(), src, 0, fetcher.StaticConfig{})
	if err != nil {
		return err
	}

	result, err := autop.New(autop.WithLineBreaks(!noBR)).Clean(input)
	if err != nil {
		return err
	}
	return writeOutput(out, result)
}
