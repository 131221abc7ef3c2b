package rawdata

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/soccer-analysis/internal/league"
	"github.com/parquet-go/parquet-go"
)

// ErrMissingColumns is returned when a dataset lacks one of its expected columns.
var ErrMissingColumns = errors.New("dataset is missing expected columns")

const readBatchSize = 1024

// ParquetSource reads datasets laid out as
//
//	<dir>/teams_<league>.parquet
//	<dir>/events_<league>.parquet
//	<dir>/players.parquet
type ParquetSource struct {
	dir string
}

var _ Source = (*ParquetSource)(nil)

// NewParquetSource creates a Source rooted at dir.
func NewParquetSource(dir string) *ParquetSource {
	return &ParquetSource{dir: dir}
}

func TeamsPath(dir string, l league.League) string {
	return filepath.Join(dir, fmt.Sprintf("teams_%s.parquet", l))
}

func EventsPath(dir string, l league.League) string {
	return filepath.Join(dir, fmt.Sprintf("events_%s.parquet", l))
}

func PlayersPath(dir string) string {
	return filepath.Join(dir, "players.parquet")
}

func (s *ParquetSource) Teams(l league.League) ([]TeamRow, error) {
	return readRows[TeamRow](TeamsPath(s.dir, l), teamColumns)
}

func (s *ParquetSource) Events(l league.League) ([]EventRow, error) {
	return readRows[EventRow](EventsPath(s.dir, l), eventColumns)
}

func (s *ParquetSource) Players() ([]PlayerRow, error) {
	return readRows[PlayerRow](PlayersPath(s.dir), playerColumns)
}

func readRows[T any](path string, required []string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat dataset %s: %w", path, err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet footer of %s: %w", path, err)
	}
	if err := checkColumns(pf.Schema(), required); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	reader := parquet.NewGenericReader[T](f)
	defer reader.Close()

	rows := make([]T, 0, reader.NumRows())
	buf := make([]T, readBatchSize)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
		}
	}
	log.Debug("Read dataset", "path", path, "rows", len(rows))
	return rows, nil
}

func checkColumns(schema *parquet.Schema, required []string) error {
	var missing []string
	for _, col := range required {
		if _, ok := schema.Lookup(col); !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// WriteTeams stores rows at the path ParquetSource reads the league's teams from.
func WriteTeams(dir string, l league.League, rows []TeamRow) error {
	return writeRows(TeamsPath(dir, l), rows)
}

// WriteEvents stores rows at the path ParquetSource reads the league's events from.
func WriteEvents(dir string, l league.League, rows []EventRow) error {
	return writeRows(EventsPath(dir, l), rows)
}

// WritePlayers stores the global roster.
func WritePlayers(dir string, rows []PlayerRow) error {
	return writeRows(PlayersPath(dir), rows)
}

func writeRows[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", path, err)
	}
	return nil
}
