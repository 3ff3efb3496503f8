package source

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"tablelens/domain/table"
)

// FileReader loads CSV and XLSX files into table snapshots
type FileReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewFileReader creates a reader that handles both Excel and CSV files
func NewFileReader(filePath string) *FileReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &FileReader{filePath: filePath, fileType: fileType}
}

// Read loads the file into a snapshot named after the file's base name
func (r *FileReader) Read() (*table.Table, error) {
	log.Printf("[FileReader] reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var header []string
	var records [][]string
	var err error
	switch r.fileType {
	case "csv":
		header, records, err = r.readCSV()
	case "xlsx":
		header, records, err = r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("no header row in %s", r.filePath)
	}

	rows := make([][]table.Value, 0, len(records))
	for _, record := range records {
		row := make([]table.Value, len(header))
		for j := range header {
			if j < len(record) {
				row[j] = table.TextValue(record[j])
			} else {
				row[j] = table.NullValue()
			}
		}
		rows = append(rows, row)
	}

	name := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	log.Printf("[FileReader] loaded %d rows, %d columns from %s", len(rows), len(header), name)
	return table.New(name, header, rows), nil
}

func (r *FileReader) readCSV() ([]string, [][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty CSV file: %s", r.filePath)
	}
	return all[0], all[1:], nil
}

func (r *FileReader) readExcel() ([]string, [][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets in Excel file: %s", r.filePath)
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty sheet in Excel file: %s", r.filePath)
	}
	return all[0], all[1:], nil
}
