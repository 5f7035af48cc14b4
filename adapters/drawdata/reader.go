// Package drawdata reads lottery draw files. It handles both the original
// two-column CSV layout (date, dash-joined numbers) and XLSX workbooks with
// the same two columns.
package drawdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golotto/domain/draw"
	"golotto/internal"
	"golotto/internal/config"
	"golotto/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DateLayout is the draw-date format used by the data files (MM/DD/YY)
const DateLayout = "01/02/06"

// Reader implements ports.DrawSource over the configured data files
type Reader struct {
	data  config.DataConfig
	strat config.StrategyConfig
	log   *internal.Logger
}

// NewReader creates a draw file reader
func NewReader(data config.DataConfig, strat config.StrategyConfig, log *internal.Logger) *Reader {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Reader{data: data, strat: strat, log: log}
}

// LoadHistorical loads and validates the historical draw file. The file is
// required; a missing or malformed file is an error.
func (r *Reader) LoadHistorical(ctx context.Context) ([]draw.Draw, error) {
	draws, err := r.loadFile(r.data.HistoricalPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load historical draws from %s", r.data.HistoricalPath)
	}
	if len(draws) == 0 {
		return nil, errors.DataError(fmt.Sprintf("historical draw file %s is empty", r.data.HistoricalPath))
	}
	r.log.Info("loaded %d historical draws from %s", len(draws), r.data.HistoricalPath)
	return draws, nil
}

// LoadUpcoming loads upcoming draws when a path is configured. A missing
// file is a note, not an error.
func (r *Reader) LoadUpcoming(ctx context.Context) ([]draw.Draw, error) {
	path := strings.TrimSpace(r.data.UpcomingPath)
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		r.log.Info("upcoming draws file not found: %s", path)
		return nil, nil
	}
	draws, err := r.loadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load upcoming draws from %s", path)
	}
	return draws, nil
}

// LoadLatest loads the most recent confirmed draw when a path is configured.
// Missing or empty files yield nil.
func (r *Reader) LoadLatest(ctx context.Context) (*draw.Draw, error) {
	path := strings.TrimSpace(r.data.LatestPath)
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		r.log.Info("latest draw file not found: %s", path)
		return nil, nil
	}
	draws, err := r.loadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load latest draw from %s", path)
	}
	if len(draws) == 0 {
		return nil, nil
	}
	latest := draws[len(draws)-1]
	return &latest, nil
}

func (r *Reader) loadFile(path string) ([]draw.Draw, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readExcelRows(path)
	default:
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}

	draws := make([]draw.Draw, 0, len(rows))
	for i, row := range rows {
		d, err := parseRow(row, i)
		if err != nil {
			return nil, err
		}
		if err := d.Validate(r.strat.NumberPool, r.strat.NumbersToSelect); err != nil {
			return nil, err
		}
		draws = append(draws, d)
	}
	return draws, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetRows(f.GetSheetName(0))
}

// parseRow parses one "date, n-n-n-n-n-n" row into a Draw
func parseRow(row []string, index int) (draw.Draw, error) {
	if len(row) < 2 {
		return draw.Draw{}, errors.MalformedDraw(fmt.Sprintf(
			"row %d has %d columns, want date and numbers", index+1, len(row)))
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(row[0]))
	if err != nil {
		return draw.Draw{}, errors.MalformedDraw(fmt.Sprintf(
			"row %d has unparseable date %q", index+1, row[0]))
	}

	parts := strings.Split(strings.TrimSpace(row[1]), "-")
	numbers := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return draw.Draw{}, errors.MalformedDraw(fmt.Sprintf(
				"row %d has non-numeric entry %q", index+1, p))
		}
		numbers = append(numbers, n)
	}

	return draw.Draw{Index: index, Date: date, Numbers: numbers}, nil
}
