package testsupport

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteTwoDA writes a well-formed 2DA file. Rows list the id first, then one
// value per column; values containing spaces are quoted.
func WriteTwoDA(t testing.TB, path string, columns []string, rows [][]string) {
	t.Helper()

	var b strings.Builder
	b.WriteString("2DA V2.0\n\n")
	b.WriteString(strings.Join(columns, " "))
	b.WriteByte('\n')
	for _, row := range rows {
		fields := make([]string, len(row))
		for i, field := range row {
			if field == "" || strings.ContainsAny(field, " \t") {
				fields[i] = `"` + field + `"`
			} else {
				fields[i] = field
			}
		}
		b.WriteString(strings.Join(fields, " "))
		b.WriteByte('\n')
	}
	writeFile(t, path, []byte(b.String()))
}

// WriteLabels writes a JSON label file from row objects.
func WriteLabels(t testing.TB, path string, rows []map[string]any) {
	t.Helper()

	data, err := json.Marshal(rows)
	if err != nil {
		t.Fatalf("marshal labels for %s: %v", path, err)
	}
	writeFile(t, path, data)
}

func writeFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// CaptureLogger returns a logger whose output accumulates in the returned
// buffer, for asserting on emitted warnings.
func CaptureLogger(t testing.TB) (*slog.Logger, *bytes.Buffer) {
	t.Helper()

	buf := new(bytes.Buffer)
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), buf
}
