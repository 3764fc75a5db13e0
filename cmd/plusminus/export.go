package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/plusminus/internal/export"
	"github.com/vovakirdan/plusminus/internal/storage"
)

var flagVerify bool

var exportCmd = &cobra.Command{
	Use:   "export <out.parquet>",
	Short: "Export recorded games to Parquet",
	Long: `Write every recorded game, including its full move path, to a
zstd-compressed Parquet file.

Examples:
  plusminus export games.parquet
  plusminus export games.parquet --verify`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&flagVerify, "verify", false, "Read the file back and check the row count")
}

func runExport(_ *cobra.Command, args []string) error {
	outPath := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	games, err := store.AllGames()
	if err != nil {
		return err
	}
	if err := export.WriteGames(outPath, games); err != nil {
		return err
	}
	logger.Info("exported games", "path", outPath, "games", len(games))

	if flagVerify {
		rows, err := export.ReadRows(outPath)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		if len(rows) != len(games) {
			return fmt.Errorf("verify: wrote %d games, read back %d", len(games), len(rows))
		}
	}

	fmt.Printf("Exported %d games to %s\n", len(games), outPath)
	return nil
}
