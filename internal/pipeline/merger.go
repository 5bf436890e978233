package pipeline

import (
	"log/slog"
	"path/filepath"
	"strconv"

	"tlkify/internal/dataset"
	"tlkify/internal/labels"
	"tlkify/internal/staticid"
	"tlkify/internal/tlk"
	"tlkify/internal/twoda"
)

// spellStaticColumns are the spells.2da columns that receive deterministic
// ids instead of allocator-assigned ones.
var spellStaticColumns = []string{"Name", "SpellDesc"}

// Merger reconciles per-category 2DA tables with their override labels,
// funneling every resolved piece of text through the shared string table.
type Merger struct {
	table       *tlk.Table
	tablesDir   string
	labelsDir   string
	spellOffset int
	logger      *slog.Logger
}

// NewMerger constructs a merger over the given string table and input
// directories. spellOffset is the base id for the static spell name and
// description columns; zero or negative disables static assignment.
func NewMerger(table *tlk.Table, tablesDir, labelsDir string, spellOffset int, logger *slog.Logger) *Merger {
	return &Merger{
		table:       table,
		tablesDir:   tablesDir,
		labelsDir:   labelsDir,
		spellOffset: spellOffset,
		logger:      logger,
	}
}

// MergeCategory loads the category table and its override labels, applies
// the category's derivation rule, resolves override text into string-table
// references, and returns the updated category table.
func (m *Merger) MergeCategory(name string) (*dataset.Table, error) {
	category, err := twoda.Read(filepath.Join(m.tablesDir, name+".2da"), true, m.logger)
	if err != nil {
		return nil, err
	}
	override, err := labels.Read(filepath.Join(m.labelsDir, name+".json"), false, m.logger)
	if err != nil {
		return nil, err
	}

	if derive, ok := rules[name]; ok {
		override, err = derive(m, category, override)
		if err != nil {
			return nil, err
		}
	}

	override = override.Restrict(category)
	if override.IsEmpty() {
		return category, nil
	}

	if name == "spells" {
		return m.mergeSpells(category, override)
	}

	m.resolve(override, nil)
	category.Overlay(override)
	return category, nil
}

// resolve replaces every present override cell with its offset id, column by
// column with rows ascending so allocation order is deterministic. Columns
// named in skip are left untouched. Missing cells never reach the allocator.
func (m *Merger) resolve(override *dataset.Table, skip map[string]bool) {
	for _, col := range override.Columns() {
		if skip[col] {
			continue
		}
		for _, id := range override.RowIDs() {
			if text, ok := override.Get(id, col); ok {
				override.Set(id, col, strconv.Itoa(m.table.Add(text)))
			}
		}
	}
}

// mergeSpells handles the spells category: regular columns follow the
// general rule while the designated name and description columns receive
// deterministic ids reserved through the string table.
func (m *Merger) mergeSpells(category, override *dataset.Table) (*dataset.Table, error) {
	assigner := staticid.Assigner{Offset: m.spellOffset, Columns: spellStaticColumns}
	if !assigner.Enabled() {
		m.resolve(override, nil)
		category.Overlay(override)
		return category, nil
	}

	static := make(map[string]bool, len(assigner.Columns))
	for _, col := range assigner.Columns {
		static[col] = true
	}
	m.resolve(override, static)
	category.Overlay(override)

	// Row-major over ascending ids keeps the reservations strictly
	// increasing, as AddID requires. Ids without a category row still get
	// their reservation, but never materialize as new rows.
	for _, id := range override.RowIDs() {
		for i, col := range assigner.Columns {
			text, ok := override.Get(id, col)
			if !ok {
				continue
			}
			offsetID, err := m.table.AddID(assigner.ID(id, i), text)
			if err != nil {
				return nil, err
			}
			if category.HasRow(id) {
				category.Set(id, col, strconv.Itoa(offsetID))
			}
		}
	}
	return category, nil
}
