package tlk

import (
	"fmt"
	"sort"

	"tlkify/internal/services"
)

// Offset differentiates custom string-table entries from the standard range
// that ships with the base game. Every id handed back to a 2DA cell carries
// this offset.
const Offset = 16777216

// Entry is a single (id, text) pair in the string table.
type Entry struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Document is the transport structure consumed and produced by the external
// nwn_tlk converter.
type Document struct {
	Language int     `json:"language"`
	Entries  []Entry `json:"entries"`
}

// Table is a growable, deduplicated set of string-table entries. Ids below
// the current maximum that are not occupied by an entry are tracked as blanks
// and handed out again by Add, smallest first.
type Table struct {
	language int
	entries  []Entry
	existing map[string]int // text -> offset id
	blanks   []int          // ascending
	max      int            // highest allocated id, -1 when empty
}

// New returns an empty table for the given language.
func New(language int) *Table {
	return &Table{
		language: language,
		existing: make(map[string]int),
		max:      -1,
	}
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Language returns the language id carried into the serialized document.
func (t *Table) Language() int {
	return t.language
}

func (t *Table) insert(id int, text string) {
	t.existing[text] = id + Offset
	t.entries = append(t.entries, Entry{ID: id, Text: text})
	if id > t.max {
		t.max = id
	}
}

// Add stores text and returns its offset id. Adding the same text twice
// returns the same id both times. New text takes the smallest blank id if
// one is available, otherwise the next id after the densely allocated range.
func (t *Table) Add(text string) int {
	if id, ok := t.existing[text]; ok {
		return id
	}

	var id int
	if len(t.blanks) > 0 {
		id = t.blanks[0]
		t.blanks = t.blanks[1:]
	} else {
		id = len(t.entries)
	}
	t.insert(id, text)
	return t.existing[text]
}

// AddID reserves a specific id for text. The id must exceed the current
// maximum; the skipped range becomes blanks available to future Add calls.
// Returns the offset id.
func (t *Table) AddID(id int, text string) (int, error) {
	if id <= t.max {
		return 0, services.Wrap(services.ErrValidation, "tlk", "add_id",
			fmt.Sprintf("id %d must exceed the current maximum of %d", id, t.max), nil)
	}

	// Blanks are all below the old maximum, so appending the gap keeps the
	// slice sorted.
	for blank := t.max + 1; blank < id; blank++ {
		t.blanks = append(t.blanks, blank)
	}
	t.insert(id, text)
	return t.existing[text], nil
}

// Blanks returns the reusable ids in ascending order.
func (t *Table) Blanks() []int {
	out := make([]int, len(t.blanks))
	copy(out, t.blanks)
	return out
}

// Document sorts the entries by id and returns the transport structure for
// the external converter.
func (t *Table) Document() Document {
	sort.Slice(t.entries, func(i, j int) bool { return t.entries[i].ID < t.entries[j].ID })
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	return Document{Language: t.language, Entries: entries}
}

// FromDocument hydrates a table from a previously serialized document. The
// text cache and the blanks set are rebuilt from the entries.
func FromDocument(doc Document) *Table {
	t := New(doc.Language)
	allocated := make(map[int]struct{}, len(doc.Entries))
	for _, entry := range doc.Entries {
		t.insert(entry.ID, entry.Text)
		allocated[entry.ID] = struct{}{}
	}
	for id := 0; id < t.max; id++ {
		if _, ok := allocated[id]; !ok {
			t.blanks = append(t.blanks, id)
		}
	}
	return t
}
