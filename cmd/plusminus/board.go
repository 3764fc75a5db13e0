package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/plusminus/internal/levelgen"
)

var flagScheme string

var boardCmd = &cobra.Command{
	Use:   "board <level-id>",
	Short: "Print the tiles of a level",
	Long: `Generates the board of a level identifier and prints its tile values.
Boards are derived from the identifier alone, so the output is the same
on every machine.

Examples:
  plusminus board 6x6_nr1
  plusminus board 4x4_nr2 --scheme plain`,
	Args: cobra.ExactArgs(1),
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().StringVar(&flagScheme, "scheme", "", "Generator scheme: stratified or plain (default from config)")
}

func runBoard(_ *cobra.Command, args []string) error {
	levelID := args[0]
	size, _, err := levelgen.ParseLevelID(levelID)
	if err != nil {
		return err
	}

	opts := cfg.Puzzle.GenOptions(size)
	if flagScheme != "" {
		if opts.Scheme, err = levelgen.ParseScheme(flagScheme); err != nil {
			return err
		}
	}

	values, err := levelgen.Generate(levelID, opts)
	if err != nil {
		return err
	}

	fmt.Printf("%s  (%s, values %d..%d)\n\n", levelID, opts.Scheme, opts.MinValue, opts.MaxValue)
	for _, row := range values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%3d", v)
		}
		fmt.Println(" " + strings.Join(cells, ""))
	}
	return nil
}
