package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"screenline/domain/dataset"
	"screenline/internal"
)

// DataReader loads member/event datasets from Excel or CSV files into the
// domain dataset representation. Cells that are empty or fail to parse as a
// number become NaN, the missing-value encoding downstream.
type DataReader struct {
	log *internal.Logger
}

// NewDataReader creates a data reader that handles both Excel and CSV files
func NewDataReader(logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{log: logger}
}

// Load reads the file at path and returns the dataset.
func (r *DataReader) Load(ctx context.Context, path string) (*dataset.Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", path)
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = r.readCSVRows(path)
	case ".xlsx":
		rows, err = r.readExcelRows(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 1 {
		return nil, fmt.Errorf("input file must have at least a header row")
	}

	return r.processRows(rows)
}

// readCSVRows reads raw string rows from a CSV file
func (r *DataReader) readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.log.Debug("[DataReader] CSV file read in %.2fms (%d rows)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// readExcelRows reads raw string rows from Sheet1 of an Excel file
func (r *DataReader) readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	readStart := time.Now()
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	r.log.Debug("[DataReader] Sheet1 read in %.2fms (%d rows)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// processRows converts raw string rows into the columnar dataset
func (r *DataReader) processRows(rows [][]string) (*dataset.Dataset, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := rows[1:]
	ds := dataset.New(len(dataRows))

	for colIdx, header := range headers {
		col := make(dataset.Column, len(dataRows))
		for rowIdx, row := range dataRows {
			col[rowIdx] = parseCell(row, colIdx)
		}
		ds.AddColumn(header, col)
	}

	r.log.Info("[DataReader] file processed (%d columns, %d rows)", len(headers), len(dataRows))

	return ds, nil
}

// parseCell converts one raw cell to a float64, NaN when absent or not
// numeric.
func parseCell(row []string, colIdx int) float64 {
	if colIdx >= len(row) {
		return math.NaN()
	}
	cell := strings.TrimSpace(row[colIdx])
	if cell == "" {
		return math.NaN()
	}
	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}
