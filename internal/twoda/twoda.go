package twoda

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"tlkify/internal/dataset"
	"tlkify/internal/services"
)

// FormatHeader is the literal version tag every 2DA file starts with,
// followed by a blank line.
const FormatHeader = "2DA V2.0"

// Missing is the sentinel a 2DA cell carries when it has no value.
const Missing = "****"

// Read parses a 2DA file into a dataset table. When validateIndex is set,
// row ids that are not in ascending order cause the table to be renumbered
// with a warning; passthrough tables skip the check. Malformed rows abort
// with a parse error.
func Read(path string, validateIndex bool, logger *slog.Logger) (*dataset.Table, error) {
	if !strings.EqualFold(filepath.Ext(path), ".2da") {
		return nil, services.Wrap(services.ErrNotFound, "twoda", "read",
			fmt.Sprintf("invalid 2DA file path: %s", path), nil)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "twoda", "read", fmt.Sprintf("open %s", path), err)
	}
	defer file.Close()

	base := filepath.Base(path)
	scanner := bufio.NewScanner(transform.NewReader(file, charmap.ISO8859_1.NewDecoder()))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// Skip the two-line format header.
	for i := 0; i < 2; i++ {
		if !scanner.Scan() {
			return nil, parseError(base, "missing format header", scanner.Err())
		}
	}
	if !scanner.Scan() {
		return nil, parseError(base, "missing column header", scanner.Err())
	}
	columns := splitFields(scanner.Text())
	if len(columns) == 0 {
		return nil, parseError(base, "empty column header", nil)
	}

	type rawRow struct {
		id    int
		idOK  bool
		cells []string
	}
	var rows []rawRow
	line := 3
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := splitFields(text)
		if len(fields) != len(columns)+1 {
			return nil, parseError(base,
				fmt.Sprintf("line %d: expected %d fields, found %d", line, len(columns)+1, len(fields)), nil)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil && !validateIndex {
			// Passthrough rows keep their ids verbatim, so they must parse.
			return nil, parseError(base,
				fmt.Sprintf("line %d: row id %q is not an integer", line, fields[0]), nil)
		}
		rows = append(rows, rawRow{id: id, idOK: err == nil, cells: fields[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, parseError(base, "read", err)
	}

	if validateIndex {
		monotonic := true
		prev := -1
		for _, row := range rows {
			if !row.idOK || row.id <= prev {
				monotonic = false
				break
			}
			prev = row.id
		}
		if !monotonic {
			if logger != nil {
				logger.Warn("row indices not in ascending order; reindexing", "file", base)
			}
			for i := range rows {
				rows[i].id = i
			}
		}
	}

	table := dataset.New(columns...)
	for _, row := range rows {
		table.EnsureRow(row.id)
		for i, col := range columns {
			table.Set(row.id, col, row.cells[i])
		}
	}
	return table, nil
}

// Write serializes the table as a 2DA file: the fixed two-line header, the
// column header row, then one row per item with values quoted when they
// contain whitespace. Missing cells are written as the **** sentinel.
func Write(table *dataset.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(transform.NewWriter(file, charmap.ISO8859_1.NewEncoder()))
	columns := table.Columns()

	fmt.Fprintf(writer, "%s\n\n", FormatHeader)
	fields := make([]string, 0, len(columns)+1)
	for _, col := range columns {
		fields = append(fields, quoteField(col))
	}
	fmt.Fprintln(writer, strings.Join(fields, " "))

	for _, id := range table.RowIDs() {
		fields = fields[:0]
		fields = append(fields, strconv.Itoa(id))
		for _, col := range columns {
			value, ok := table.Get(id, col)
			if !ok {
				value = Missing
			}
			fields = append(fields, quoteField(value))
		}
		fmt.Fprintln(writer, strings.Join(fields, " "))
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

func parseError(file, message string, err error) error {
	return services.Wrap(services.ErrParse, "twoda", "read", file+": "+message, err)
}

// splitFields splits a 2DA line on whitespace, honoring double-quoted fields
// that may contain spaces. Quotes are stripped from the result.
func splitFields(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	inField := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			inField = true
		case (r == ' ' || r == '\t' || r == '\r') && !inQuotes:
			if inField {
				fields = append(fields, current.String())
				current.Reset()
				inField = false
			}
		default:
			current.WriteRune(r)
			inField = true
		}
	}
	if inField {
		fields = append(fields, current.String())
	}
	return fields
}

func quoteField(value string) string {
	if value == "" || strings.ContainsAny(value, " \t") {
		return `"` + value + `"`
	}
	return value
}
