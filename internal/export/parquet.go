// Package export writes stored playthroughs to Parquet files for offline
// analysis.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/vovakirdan/plusminus/internal/storage"
)

// SchemaVersion is stored in the file metadata under "schema".
const SchemaVersion = "plusminus_game_v1"

// GameRow is one playthrough. The path is stored column-wise: step i
// visited (PathRow[i], PathCol[i]) and collected PathVal[i].
type GameRow struct {
	GameID      string `parquet:"game_id"`
	LevelID     string `parquet:"level_id,dict"`
	GridSize    int32  `parquet:"grid_size"`
	LevelNumber int32  `parquet:"level_number"`
	Player      string `parquet:"player,dict"`
	Score       int32  `parquet:"score"`
	Moves       int32  `parquet:"moves"`
	Sign        int32  `parquet:"sign"`
	Finished    bool   `parquet:"finished"`

	PathRow []int32 `parquet:"path_row"`
	PathCol []int32 `parquet:"path_col"`
	PathVal []int32 `parquet:"path_val"`

	CreatedAtMs int64 `parquet:"created_at_ms"`
}

// RowFromRecord converts a stored playthrough.
func RowFromRecord(g storage.GameRecord) GameRow {
	row := GameRow{
		GameID:      g.ID,
		LevelID:     g.LevelID,
		GridSize:    int32(g.GridSize),
		LevelNumber: int32(g.LevelNumber),
		Player:      g.Player,
		Score:       int32(g.Score),
		Moves:       int32(g.Moves),
		Sign:        int32(g.Sign),
		Finished:    g.Finished,
		PathRow:     make([]int32, 0, len(g.Path)),
		PathCol:     make([]int32, 0, len(g.Path)),
		PathVal:     make([]int32, 0, len(g.Path)),
	}
	if !g.CreatedAt.IsZero() {
		row.CreatedAtMs = g.CreatedAt.UnixMilli()
	}
	for _, m := range g.Path {
		row.PathRow = append(row.PathRow, int32(m.Row))
		row.PathCol = append(row.PathCol, int32(m.Col))
		row.PathVal = append(row.PathVal, int32(m.Value))
	}
	return row
}

// CreatedAt returns the row's creation time, zero when unknown.
func (r GameRow) CreatedAt() time.Time {
	if r.CreatedAtMs == 0 {
		return time.Time{}
	}
	return time.UnixMilli(r.CreatedAtMs).UTC()
}

// WriteGames writes games to outPath, replacing any existing file.
func WriteGames(outPath string, games []storage.GameRecord) error {
	rows := make([]GameRow, 0, len(games))
	for _, g := range games {
		rows = append(rows, RowFromRecord(g))
	}
	return WriteRows(outPath, rows)
}

// WriteRows writes rows to outPath through a temporary file.
func WriteRows(outPath string, rows []GameRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("export: create output dir: %w", err)
	}

	// Write to a temp file and rename atomically.
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("export: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("export: rename parquet: %w", err)
	}
	return nil
}

// ReadRows reads every row of a file written by WriteRows.
func ReadRows(path string) ([]GameRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("export: open parquet: %w", err)
	}
	if v, ok := pf.Lookup("schema"); ok && v != SchemaVersion {
		return nil, fmt.Errorf("export: unsupported schema %q", v)
	}

	reader := parquet.NewGenericReader[GameRow](pf)
	defer reader.Close()

	rows := make([]GameRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("export: read parquet: %w", err)
	}
	return rows[:n], nil
}
