package tlk_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tlkify/internal/services"
	"tlkify/internal/tlk"
)

func TestAddIsIdempotent(t *testing.T) {
	table := tlk.New(0)
	first := table.Add("Greeting")
	second := table.Add("Greeting")
	if first != second {
		t.Fatalf("expected identical ids for identical text, got %d and %d", first, second)
	}
	if table.Len() != 1 {
		t.Fatalf("expected a single entry, got %d", table.Len())
	}
	if first != tlk.Offset {
		t.Fatalf("expected first id to be the offset, got %d", first)
	}
}

func TestAddAllocatesSequentially(t *testing.T) {
	table := tlk.New(0)
	for i, text := range []string{"a", "b", "c"} {
		if got := table.Add(text); got != tlk.Offset+i {
			t.Fatalf("entry %d: got %d want %d", i, got, tlk.Offset+i)
		}
	}
}

func TestAddIDBackfillsBlanks(t *testing.T) {
	table := tlk.New(0)
	id, err := table.AddID(5, "x")
	if err != nil {
		t.Fatalf("AddID returned error: %v", err)
	}
	if id != tlk.Offset+5 {
		t.Fatalf("unexpected offset id: %d", id)
	}

	blanks := table.Blanks()
	want := []int{0, 1, 2, 3, 4}
	if len(blanks) != len(want) {
		t.Fatalf("unexpected blanks: %v", blanks)
	}
	for i := range want {
		if blanks[i] != want[i] {
			t.Fatalf("blanks[%d]: got %d want %d", i, blanks[i], want[i])
		}
	}

	// Blanks are consumed smallest first before new ids are minted.
	if got := table.Add("y"); got != tlk.Offset {
		t.Fatalf("expected blank 0 to be reused, got %d", got-tlk.Offset)
	}
	if got := table.Add("z"); got != tlk.Offset+1 {
		t.Fatalf("expected blank 1 to be reused, got %d", got-tlk.Offset)
	}
}

func TestAddIDRejectsNonIncreasingIDs(t *testing.T) {
	table := tlk.New(0)
	if _, err := table.AddID(3, "a"); err != nil {
		t.Fatalf("AddID(3) returned error: %v", err)
	}
	if _, err := table.AddID(2, "b"); err == nil {
		t.Fatal("expected error for id below current maximum")
	} else if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := table.AddID(3, "c"); err == nil {
		t.Fatal("expected error for id equal to current maximum")
	}

	if _, err := table.AddID(7, "d"); err != nil {
		t.Fatalf("AddID(7) returned error: %v", err)
	}
	blanks := table.Blanks()
	want := []int{0, 1, 2, 4, 5, 6}
	if len(blanks) != len(want) {
		t.Fatalf("unexpected blanks: %v", blanks)
	}
	for i := range want {
		if blanks[i] != want[i] {
			t.Fatalf("blanks[%d]: got %d want %d", i, blanks[i], want[i])
		}
	}
}

func TestDocumentSortsEntries(t *testing.T) {
	table := tlk.New(2)
	if _, err := table.AddID(2, "B"); err != nil {
		t.Fatal(err)
	}
	table.Add("A") // reuses blank 0

	doc := table.Document()
	if doc.Language != 2 {
		t.Fatalf("unexpected language: %d", doc.Language)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("unexpected entry count: %d", len(doc.Entries))
	}
	if doc.Entries[0].ID != 0 || doc.Entries[0].Text != "A" {
		t.Fatalf("unexpected first entry: %+v", doc.Entries[0])
	}
	if doc.Entries[1].ID != 2 || doc.Entries[1].Text != "B" {
		t.Fatalf("unexpected second entry: %+v", doc.Entries[1])
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	table := tlk.New(0)
	if _, err := table.AddID(0, "A"); err != nil {
		t.Fatal(err)
	}
	if _, err := table.AddID(2, "B"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "reference.json")
	if err := table.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := tlk.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("unexpected entry count after round trip: %d", loaded.Len())
	}
	blanks := loaded.Blanks()
	if len(blanks) != 1 || blanks[0] != 1 {
		t.Fatalf("unexpected blanks after round trip: %v", blanks)
	}
	// The rebuilt cache must keep deduplicating.
	if got := loaded.Add("A"); got != tlk.Offset {
		t.Fatalf("expected cached id for existing text, got %d", got-tlk.Offset)
	}
	// The rebuilt blank must be reused before fresh allocation.
	if got := loaded.Add("C"); got != tlk.Offset+1 {
		t.Fatalf("expected blank 1 to be reused, got %d", got-tlk.Offset)
	}
}

func TestLoadRejectsMalformedDocuments(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"missing_entries.json": `{"language": 0}`,
		"extra_field.json":     `{"language": 0, "entries": [], "extra": 1}`,
		"wrong_fields.json":    `{"lang": 0, "rows": []}`,
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		if err := writeFile(t, path, body); err != nil {
			t.Fatal(err)
		}
		if _, err := tlk.Load(path); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func writeFile(t *testing.T, path, body string) error {
	t.Helper()
	return os.WriteFile(path, []byte(body), 0o644)
}
