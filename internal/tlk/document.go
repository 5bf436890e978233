package tlk

import (
	"encoding/json"
	"fmt"
	"os"

	"tlkify/internal/services"
)

// Load reads a serialized string-table document from disk and hydrates a
// table from it. The document must contain exactly the language and entries
// fields; anything else is a contract violation.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "tlk", "load", fmt.Sprintf("read %s", path), err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, services.Wrap(services.ErrValidation, "tlk", "load", fmt.Sprintf("decode %s", path), err)
	}
	if len(raw) != 2 {
		return nil, services.Wrap(services.ErrValidation, "tlk", "load",
			fmt.Sprintf("%s: expected exactly language and entries fields, found %d fields", path, len(raw)), nil)
	}
	if _, ok := raw["language"]; !ok {
		return nil, services.Wrap(services.ErrValidation, "tlk", "load", path+": missing language field", nil)
	}
	if _, ok := raw["entries"]; !ok {
		return nil, services.Wrap(services.ErrValidation, "tlk", "load", path+": missing entries field", nil)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, services.Wrap(services.ErrValidation, "tlk", "load", fmt.Sprintf("decode %s", path), err)
	}
	return FromDocument(doc), nil
}

// Save writes the table's document to path.
func (t *Table) Save(path string) error {
	data, err := json.Marshal(t.Document())
	if err != nil {
		return fmt.Errorf("encode string table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write string table: %w", err)
	}
	return nil
}
