package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Columns is the header of the tabular import/export format, in order.
var Columns = []string{"id", "timestamp", "type", "asset", "amount", "currency", "price", "venue", "note"}

// rawSheet is the preferred sheet name in a spreadsheet.
const rawSheet = "raw"

// LoadError reports a source line that could not be turned into a row.
type LoadError struct {
	Line   int               // 1-based, the header is line 1
	Fields map[string]string // the non empty cells of the line
	Err    error
}

func (e LoadError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e LoadError) Unwrap() error { return e.Err }

// LoadResult holds the rows read from a source and the lines rejected on
// the way. Rejected lines do not stop the load.
type LoadResult struct {
	Rows   []Row
	Errors []LoadError
}

// Load reads candidate rows from a .csv, .xlsx or .xlsm file. Every line is
// passed through Parse; lines without a type or an asset are skipped.
func Load(path string) (*LoadResult, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", path, err)
		}
		defer f.Close()
		return LoadCSV(f)
	case ".xlsx", ".xlsm":
		return LoadSheet(path)
	default:
		return nil, fmt.Errorf("unsupported file format %q for %q", ext, path)
	}
}

// LoadCSV reads candidate rows from CSV data with a header line.
func LoadCSV(r io.Reader) (*LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read CSV: %w", err)
	}
	return loadTable(records, nil), nil
}

// LoadSheet reads candidate rows from a spreadsheet. The sheet named "raw"
// is used when present, the active sheet otherwise.
func LoadSheet(path string) (*LoadResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open spreadsheet %q: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for _, name := range f.GetSheetList() {
		if strings.EqualFold(name, rawSheet) {
			sheet = name
			break
		}
	}
	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q of %q: %w", sheet, path, err)
	}
	return loadTable(records, excelTimestamp), nil
}

// excelTimestamp turns a spreadsheet date serial number into a timestamp
// text. Other values are returned unchanged.
func excelTimestamp(cell string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return cell
	}
	ts, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return cell
	}
	return ts.Round(time.Second).Format(fingerprintFormat)
}

// loadTable turns records, whose first line is a header, into rows. The
// optional fixTimestamp rewrites timestamp cells before parsing.
func loadTable(records [][]string, fixTimestamp func(string) string) *LoadResult {
	result := &LoadResult{}
	if len(records) == 0 {
		return result
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for i, record := range records[1:] {
		fields := make(map[string]string)
		for j, cell := range record {
			if j < len(header) && header[j] != "" && strings.TrimSpace(cell) != "" {
				fields[header[j]] = strings.TrimSpace(cell)
			}
		}
		if fields["type"] == "" || fields["asset"] == "" {
			continue
		}
		if fixTimestamp != nil && fields["timestamp"] != "" {
			fields["timestamp"] = fixTimestamp(fields["timestamp"])
		}

		row, err := Parse(Candidate{
			ID:        blank(fields["id"]),
			Timestamp: fields["timestamp"],
			Type:      fields["type"],
			Asset:     fields["asset"],
			Amount:    fields["amount"],
			Currency:  fields["currency"],
			Price:     blank(fields["price"]),
			Venue:     fields["venue"],
			Note:      blank(fields["note"]),
		})
		if err != nil {
			result.Errors = append(result.Errors, LoadError{Line: i + 2, Fields: fields, Err: err})
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}

// blank maps the placeholders spreadsheets export for empty cells to "".
func blank(s string) string {
	switch strings.ToLower(s) {
	case "nan", "none", "null":
		return ""
	}
	return s
}
