package pipeline

import (
	"path/filepath"
	"strconv"
	"testing"

	"tlkify/internal/testsupport"
	"tlkify/internal/tlk"
)

func offsetID(n int) string {
	return strconv.Itoa(tlk.Offset + n)
}

func TestMergeCategoryResolvesOverrides(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTwoDA(t, filepath.Join(dir, "feats.2da"),
		[]string{"FEAT", "DESCRIPTION"},
		[][]string{
			{"0", "****", "****"},
			{"1", "****", "****"},
		})
	testsupport.WriteLabels(t, filepath.Join(dir, "feats.json"),
		[]map[string]any{
			{"id": 0, "FEAT": "Cleave", "DESCRIPTION": "Swing wide."},
			{"id": 1, "FEAT": "Dodge"},
		})

	logger, _ := testsupport.CaptureLogger(t)
	table := tlk.New(0)
	merger := NewMerger(table, dir, dir, 0, logger)

	merged, err := merger.MergeCategory("feats")
	if err != nil {
		t.Fatalf("MergeCategory failed: %v", err)
	}

	// Column-major resolution in label column order (sorted field names):
	// DESCRIPTION first, then FEAT over ascending rows.
	if got, _ := merged.Get(0, "DESCRIPTION"); got != offsetID(0) {
		t.Errorf("row 0 DESCRIPTION = %q, want %q", got, offsetID(0))
	}
	if got, _ := merged.Get(0, "FEAT"); got != offsetID(1) {
		t.Errorf("row 0 FEAT = %q, want %q", got, offsetID(1))
	}
	if got, _ := merged.Get(1, "FEAT"); got != offsetID(2) {
		t.Errorf("row 1 FEAT = %q, want %q", got, offsetID(2))
	}
	if _, ok := merged.Get(1, "DESCRIPTION"); ok {
		t.Error("row 1 DESCRIPTION should stay missing")
	}
	if table.Len() != 3 {
		t.Fatalf("table has %d entries, want 3", table.Len())
	}
}

func TestMergeCategoryDeduplicatesText(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTwoDA(t, filepath.Join(dir, "feats.2da"),
		[]string{"FEAT"},
		[][]string{{"0", "****"}, {"1", "****"}})
	testsupport.WriteLabels(t, filepath.Join(dir, "feats.json"),
		[]map[string]any{
			{"id": 0, "FEAT": "Cleave"},
			{"id": 1, "FEAT": "Cleave"},
		})

	logger, _ := testsupport.CaptureLogger(t)
	table := tlk.New(0)
	merged, err := NewMerger(table, dir, dir, 0, logger).MergeCategory("feats")
	if err != nil {
		t.Fatalf("MergeCategory failed: %v", err)
	}

	first, _ := merged.Get(0, "FEAT")
	second, _ := merged.Get(1, "FEAT")
	if first != second {
		t.Fatalf("identical text got distinct ids %q and %q", first, second)
	}
	if table.Len() != 1 {
		t.Fatalf("table has %d entries, want 1", table.Len())
	}
}

func TestMergeCategoryWithoutLabelsIsPassthrough(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTwoDA(t, filepath.Join(dir, "portraits.2da"),
		[]string{"BaseResRef", "Race"},
		[][]string{{"0", "po_elf_f", "1"}})

	logger, _ := testsupport.CaptureLogger(t)
	table := tlk.New(0)
	merged, err := NewMerger(table, dir, dir, 0, logger).MergeCategory("portraits")
	if err != nil {
		t.Fatalf("MergeCategory failed: %v", err)
	}

	if got, _ := merged.Get(0, "BaseResRef"); got != "po_elf_f" {
		t.Errorf("cell rewritten to %q", got)
	}
	if table.Len() != 0 {
		t.Fatalf("passthrough table allocated %d entries", table.Len())
	}
}

func TestMergeCategoryIgnoresUnknownColumns(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTwoDA(t, filepath.Join(dir, "feats.2da"),
		[]string{"FEAT"},
		[][]string{{"0", "****"}})
	testsupport.WriteLabels(t, filepath.Join(dir, "feats.json"),
		[]map[string]any{{"id": 0, "FEAT": "Cleave", "Nonsense": "dropped"}})

	logger, _ := testsupport.CaptureLogger(t)
	table := tlk.New(0)
	merged, err := NewMerger(table, dir, dir, 0, logger).MergeCategory("feats")
	if err != nil {
		t.Fatalf("MergeCategory failed: %v", err)
	}

	if merged.HasColumn("Nonsense") {
		t.Fatal("override column leaked into the category table")
	}
	if table.Len() != 1 {
		t.Fatalf("table has %d entries, want 1", table.Len())
	}
}

func TestMergeSpellsUsesStaticIDs(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTwoDA(t, filepath.Join(dir, "spells.2da"),
		[]string{"Name", "SpellDesc", "IconResRef"},
		[][]string{
			{"0", "****", "****", "****"},
			{"2", "****", "****", "****"},
		})
	testsupport.WriteLabels(t, filepath.Join(dir, "spells.json"),
		[]map[string]any{
			{"id": 0, "Name": "Fireball", "SpellDesc": "Boom.", "IconResRef": "is_fire"},
			{"id": 2, "Name": "Ice Storm"},
		})

	logger, _ := testsupport.CaptureLogger(t)
	table := tlk.New(0)
	merged, err := NewMerger(table, dir, dir, 5000, logger).MergeCategory("spells")
	if err != nil {
		t.Fatalf("MergeCategory failed: %v", err)
	}

	// id = offset + column + len(columns)*row for the static columns.
	if got, _ := merged.Get(0, "Name"); got != offsetID(5000) {
		t.Errorf("row 0 Name = %q, want %q", got, offsetID(5000))
	}
	if got, _ := merged.Get(0, "SpellDesc"); got != offsetID(5001) {
		t.Errorf("row 0 SpellDesc = %q, want %q", got, offsetID(5001))
	}
	if got, _ := merged.Get(2, "Name"); got != offsetID(5004) {
		t.Errorf("row 2 Name = %q, want %q", got, offsetID(5004))
	}
	// Non-static columns use the general allocator.
	if got, _ := merged.Get(0, "IconResRef"); got != offsetID(0) {
		t.Errorf("row 0 IconResRef = %q, want %q", got, offsetID(0))
	}
}

func TestMergeSpellsWithoutOffsetFallsBack(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTwoDA(t, filepath.Join(dir, "spells.2da"),
		[]string{"Name", "SpellDesc"},
		[][]string{{"0", "****", "****"}})
	testsupport.WriteLabels(t, filepath.Join(dir, "spells.json"),
		[]map[string]any{{"id": 0, "Name": "Fireball", "SpellDesc": "Boom."}})

	logger, _ := testsupport.CaptureLogger(t)
	table := tlk.New(0)
	merged, err := NewMerger(table, dir, dir, 0, logger).MergeCategory("spells")
	if err != nil {
		t.Fatalf("MergeCategory failed: %v", err)
	}

	if got, _ := merged.Get(0, "Name"); got != offsetID(0) {
		t.Errorf("row 0 Name = %q, want %q", got, offsetID(0))
	}
	if got, _ := merged.Get(0, "SpellDesc"); got != offsetID(1) {
		t.Errorf("row 0 SpellDesc = %q, want %q", got, offsetID(1))
	}
	if len(table.Blanks()) != 0 {
		t.Fatalf("fallback allocation left blanks %v", table.Blanks())
	}
}

func TestMergeSpellsIgnoresOverrideOnlyRows(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTwoDA(t, filepath.Join(dir, "spells.2da"),
		[]string{"Name", "SpellDesc"},
		[][]string{{"0", "****", "****"}})
	testsupport.WriteLabels(t, filepath.Join(dir, "spells.json"),
		[]map[string]any{
			{"id": 0, "Name": "Fireball"},
			{"id": 9, "Name": "Phantom Blade"},
		})

	logger, _ := testsupport.CaptureLogger(t)
	table := tlk.New(0)
	merged, err := NewMerger(table, dir, dir, 5000, logger).MergeCategory("spells")
	if err != nil {
		t.Fatalf("MergeCategory failed: %v", err)
	}

	if merged.HasRow(9) {
		t.Fatal("label row without a 2DA row materialized in the category table")
	}
	if merged.NumRows() != 1 {
		t.Fatalf("row count = %d, want 1", merged.NumRows())
	}
	// The static id is still reserved for the orphan label.
	if id := table.Add("Phantom Blade"); id != tlk.Offset+5018 {
		t.Fatalf("orphan label id = %d, want %d", id, tlk.Offset+5018)
	}
}

func TestMergeSpellsStaticReservationLeavesBlanks(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTwoDA(t, filepath.Join(dir, "spells.2da"),
		[]string{"Name", "SpellDesc"},
		[][]string{{"0", "****", "****"}})
	testsupport.WriteLabels(t, filepath.Join(dir, "spells.json"),
		[]map[string]any{{"id": 0, "Name": "Fireball"}})

	logger, _ := testsupport.CaptureLogger(t)
	table := tlk.New(0)
	if _, err := NewMerger(table, dir, dir, 10, logger).MergeCategory("spells"); err != nil {
		t.Fatalf("MergeCategory failed: %v", err)
	}

	// Reserving id 10 leaves 0..9 reusable for later additions.
	if got := len(table.Blanks()); got != 10 {
		t.Fatalf("blanks = %d, want 10", got)
	}
	if id := table.Add("Later text"); id != tlk.Offset {
		t.Fatalf("blank reuse gave %d, want %d", id, tlk.Offset)
	}
}
