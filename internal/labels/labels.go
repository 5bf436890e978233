package labels

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"tlkify/internal/dataset"
	"tlkify/internal/services"
)

// Read loads an override label file into a dataset table indexed by the
// required id field. Duplicate ids keep the last record and warn unless
// silenced. A missing file or a non-JSON path yields an empty table so the
// category passes through untouched.
func Read(path string, silentWarnings bool, logger *slog.Logger) (*dataset.Table, error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return dataset.New(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dataset.New(), nil
		}
		return nil, services.Wrap(services.ErrNotFound, "labels", "read", fmt.Sprintf("open %s", path), err)
	}

	// Override files arrive as UTF-8 with or without a byte order mark.
	decoded, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "labels", "read", fmt.Sprintf("decode %s", path), err)
	}

	var records []map[string]any
	if err := json.Unmarshal(decoded, &records); err != nil {
		return nil, services.Wrap(services.ErrParse, "labels", "read", fmt.Sprintf("decode %s", path), err)
	}

	base := filepath.Base(path)
	table := dataset.New()
	var duplicates []int
	for _, record := range records {
		idValue, ok := record["id"]
		if !ok {
			return nil, services.Wrap(services.ErrValidation, "labels", "read",
				fmt.Sprintf("missing id field in %s", base), nil)
		}
		id, err := asRowID(idValue)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "labels", "read",
				fmt.Sprintf("%s: %v", base, err), nil)
		}

		if table.HasRow(id) {
			duplicates = append(duplicates, id)
			table.Drop(id) // keep the last occurrence wholesale
		}
		table.EnsureRow(id)
		for _, field := range sortedFields(record) {
			if field == "id" {
				continue
			}
			value, ok := asCell(record[field])
			if !ok {
				continue
			}
			table.Set(id, field, value)
		}
	}

	if len(duplicates) > 0 && !silentWarnings && logger != nil {
		sort.Ints(duplicates)
		logger.Warn("duplicate entries for 2DA rows; keeping last occurrence",
			"file", base, "rows", fmt.Sprint(duplicates))
	}
	return table, nil
}

func asRowID(value any) (int, error) {
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("non-integer id %v", v)
		}
		return int(v), nil
	case string:
		id, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("non-integer id %q", v)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("unsupported id value %v", value)
	}
}

func asCell(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return fmt.Sprint(v), true
	}
}

func sortedFields(record map[string]any) []string {
	fields := make([]string, 0, len(record))
	for field := range record {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
