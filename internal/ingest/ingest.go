// =============================================================================
// Back Order Report Generator - Input Ingestion Module
// =============================================================================
//
// This module reads a raw back-order export into memory. Supported formats,
// sniffed by file extension:
//
//   .csv / .txt  - delimited text; the delimiter is auto-detected from the
//                  header line among comma, tab and semicolon
//   .xlsx / .xls - spreadsheet workbook; first sheet, first row = headers
//
// The header row is mandatory. Each data row becomes a RawRecord: a mapping
// of header name to trimmed cell value, tagged with its 1-based source row
// number so validation issues can point back at the file. Fully empty rows
// are skipped. A file with headers and zero data rows is a valid, empty
// dataset - only a genuinely unreadable file is an error.
//
// =============================================================================

package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// ERRORS
// =============================================================================

// UnreadableInputError indicates the input file is missing, in an unsupported
// format, or corrupt. It is terminal for the run: nothing useful can be
// produced from an unreadable file.
type UnreadableInputError struct {
	// Path is the input file that could not be read.
	Path string

	// Reason describes why the file is unreadable.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *UnreadableInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unreadable input %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("unreadable input %s: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *UnreadableInputError) Unwrap() error {
	return e.Err
}

// =============================================================================
// DATA STRUCTURES
// =============================================================================

// RawRecord is one input row: an ordered mapping of header name to the raw
// (whitespace-trimmed) cell value. RawRecords are ephemeral; they exist only
// between ingestion and normalization.
type RawRecord struct {
	// Number is the 1-based row number in the source file, headers included.
	Number int

	// Values maps header name to cell value.
	Values map[string]string
}

// Dataset is a fully loaded input file.
type Dataset struct {
	// SourceFile is the path the data was read from.
	SourceFile string

	// Headers are the cleaned column headers, in file order.
	Headers []string

	// Rows are the data rows, in file order, empty rows excluded.
	Rows []RawRecord
}

// =============================================================================
// READING
// =============================================================================

// Read loads an input file into a Dataset. The format is sniffed from the
// file extension; unsupported extensions and unparsable files return an
// UnreadableInputError.
func Read(path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &UnreadableInputError{Path: path, Reason: "file not found", Err: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return readDelimited(path)
	case ".xlsx", ".xls":
		return readWorkbook(path)
	default:
		return nil, &UnreadableInputError{
			Path:   path,
			Reason: fmt.Sprintf("unsupported file format %q", filepath.Ext(path)),
		}
	}
}

// readDelimited reads a CSV or delimited text file.
func readDelimited(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &UnreadableInputError{Path: path, Reason: "failed to open file", Err: err}
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	// Sniff the delimiter from the header line, then rewind by re-reading
	// through a fresh CSV reader over the same buffered stream.
	headerLine, err := reader.ReadString('\n')
	if err != nil && headerLine == "" {
		return nil, &UnreadableInputError{Path: path, Reason: "file is empty", Err: err}
	}
	delimiter := sniffDelimiter(headerLine)

	if _, err := file.Seek(0, 0); err != nil {
		return nil, &UnreadableInputError{Path: path, Reason: "failed to rewind file", Err: err}
	}
	reader.Reset(file)

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	// Inconsistent column counts and loose quoting are common in these
	// exports; tolerate both and let row validation sort the data out.
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, &UnreadableInputError{Path: path, Reason: "failed to parse delimited text", Err: err}
	}
	if len(allRows) == 0 {
		return nil, &UnreadableInputError{Path: path, Reason: "file has no header row"}
	}

	return buildDataset(path, allRows), nil
}

// readWorkbook reads the first sheet of an XLSX/XLS workbook.
func readWorkbook(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &UnreadableInputError{Path: path, Reason: "failed to open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &UnreadableInputError{Path: path, Reason: "workbook has no sheets"}
	}

	allRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &UnreadableInputError{Path: path, Reason: "failed to read first sheet", Err: err}
	}
	if len(allRows) == 0 {
		return nil, &UnreadableInputError{Path: path, Reason: "workbook has no header row"}
	}

	return buildDataset(path, allRows), nil
}

// buildDataset converts raw row slices into a Dataset. Row 1 is the header
// row; every following non-empty row becomes a RawRecord.
func buildDataset(path string, allRows [][]string) *Dataset {
	headers := cleanHeaders(allRows[0])

	rows := make([]RawRecord, 0, len(allRows)-1)
	for i := 1; i < len(allRows); i++ {
		if isRowEmpty(allRows[i]) {
			continue
		}

		values := make(map[string]string, len(headers))
		for col, header := range headers {
			if col < len(allRows[i]) {
				values[header] = strings.TrimSpace(allRows[i][col])
			} else {
				values[header] = ""
			}
		}

		rows = append(rows, RawRecord{Number: i + 1, Values: values})
	}

	return &Dataset{
		SourceFile: path,
		Headers:    headers,
		Rows:       rows,
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// sniffDelimiter picks the delimiter with the most occurrences in the header
// line among comma, tab and semicolon. Comma wins ties.
func sniffDelimiter(headerLine string) rune {
	best := ','
	bestCount := strings.Count(headerLine, ",")

	if n := strings.Count(headerLine, "\t"); n > bestCount {
		best, bestCount = '\t', n
	}
	if n := strings.Count(headerLine, ";"); n > bestCount {
		best = ';'
	}

	return best
}

// cleanHeaders trims header values and names any empty header Column_N so
// every column stays addressable downstream.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// isRowEmpty checks whether a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
