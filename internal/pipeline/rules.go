package pipeline

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"tlkify/internal/dataset"
	"tlkify/internal/labels"
	"tlkify/internal/morph"
	"tlkify/internal/services"
	"tlkify/internal/twoda"
)

// deriveFunc fills missing override columns from existing ones before the
// generic resolve step. The returned table replaces the override table.
type deriveFunc func(m *Merger, category, override *dataset.Table) (*dataset.Table, error)

// rules is the closed set of categories with derivation behaviour. Every
// other category goes straight to the generic resolve/overlay path.
var rules = map[string]deriveFunc{
	"classes":     deriveClasses,
	"racialtypes": deriveRacialTypes,
	"iprp_spells": deriveItemPropertySpells,
	"iprp_feats":  deriveItemPropertyFeats,
}

func deriveClasses(m *Merger, _, override *dataset.Table) (*dataset.Table, error) {
	if !override.HasColumn("Name") {
		m.logger.Warn("unable to add derived labels; missing Name column", "category", "classes")
		return override, nil
	}
	override.EnsureColumn("Plural")
	override.EnsureColumn("Lower")
	for _, id := range override.RowIDs() {
		name, ok := override.Get(id, "Name")
		if !ok {
			// Lower is recomputed from Name wholesale; stale values go.
			override.Clear(id, "Lower")
			continue
		}
		if _, has := override.Get(id, "Plural"); !has {
			override.Set(id, "Plural", morph.Pluralize(name))
		}
		override.Set(id, "Lower", strings.ToLower(name))
	}
	return override, nil
}

func deriveRacialTypes(m *Merger, _, override *dataset.Table) (*dataset.Table, error) {
	if !override.HasColumn("Name") {
		m.logger.Warn("unable to add derived labels; missing Name column", "category", "racialtypes")
		return override, nil
	}
	override.EnsureColumn("NamePlural")
	override.EnsureColumn("ConverName")
	override.EnsureColumn("ConverNameLower")
	for _, id := range override.RowIDs() {
		name, hasName := override.Get(id, "Name")
		if hasName {
			if _, has := override.Get(id, "NamePlural"); !has {
				override.Set(id, "NamePlural", morph.Pluralize(name))
			}
			if _, has := override.Get(id, "ConverName"); !has {
				override.Set(id, "ConverName", morph.Adjective(name))
			}
		}
		if _, has := override.Get(id, "ConverNameLower"); !has {
			if conver, ok := override.Get(id, "ConverName"); ok {
				override.Set(id, "ConverNameLower", strings.ToLower(conver))
			} else if hasName {
				override.Set(id, "ConverNameLower", strings.ToLower(name))
			}
		}
	}
	return override, nil
}

// deriveItemPropertySpells generates item-property names from the spells
// category: only rows referencing a true spell (no feat link, user type 1)
// survive, and missing names become "<spell name> (<caster level>)".
func deriveItemPropertySpells(m *Merger, category, override *dataset.Table) (*dataset.Table, error) {
	spellLabels, err := labels.Read(filepath.Join(m.labelsDir, "spells.json"), true, m.logger)
	if err != nil {
		return nil, err
	}
	spells, err := twoda.Read(filepath.Join(m.tablesDir, "spells.2da"), true, m.logger)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			m.logger.Warn("spells.2da not found; iprp_spells may be missing labels")
			return override, nil
		}
		return nil, err
	}

	// Join the spell labels with spells.2da and keep true spells only.
	names := make(map[int]string)
	labelsHaveName := spellLabels.HasColumn("Name")
	for _, id := range spellLabels.RowIDs() {
		feat, ok := spells.Get(id, "FeatID")
		if !ok || feat != twoda.Missing {
			continue
		}
		if userType, ok := spells.Get(id, "UserType"); !ok || userType != "1" {
			continue
		}
		var name string
		var present bool
		if labelsHaveName {
			name, present = spellLabels.Get(id, "Name")
		} else {
			name, present = spells.Get(id, "Name")
		}
		if present {
			names[id] = name
		}
	}

	override.EnsureColumn("Name")
	original := override.Columns()
	override = override.Reindex(category.RowIDs())

	for _, id := range override.RowIDs() {
		key := joinKey(category, id, "SpellIndex")
		if key == -1 {
			override.Drop(id)
			continue
		}
		if _, has := override.Get(id, "Name"); !has {
			if name, ok := names[key]; ok {
				caster, _ := category.Get(id, "CasterLvl")
				override.Set(id, "Name", name+" ("+caster+")")
			}
		}
		// Unresolved placeholders never make it into the string table.
		if name, has := override.Get(id, "Name"); !has || strings.Contains(name, twoda.Missing) {
			override.Drop(id)
		}
	}
	return override.Select(original), nil
}

// deriveItemPropertyFeats fills missing item-property names from the feat
// label lookup keyed by each row's feat reference.
func deriveItemPropertyFeats(m *Merger, category, override *dataset.Table) (*dataset.Table, error) {
	featLabels, err := labels.Read(filepath.Join(m.labelsDir, "feat.json"), true, m.logger)
	if err != nil {
		return nil, err
	}
	if !featLabels.HasColumn("FEAT") {
		m.logger.Warn("feat.json missing FEAT labels; iprp_feats may be missing labels")
		return override, nil
	}

	override.EnsureColumn("Name")
	original := override.Columns()
	override = override.Reindex(category.RowIDs())

	for _, id := range override.RowIDs() {
		key := joinKey(category, id, "FeatIndex")
		if key == -1 {
			override.Drop(id)
			continue
		}
		if _, has := override.Get(id, "Name"); !has {
			if name, ok := featLabels.Get(key, "FEAT"); ok {
				override.Set(id, "Name", name)
			}
		}
	}
	return override.Select(original), nil
}

// joinKey reads an integer cross-reference cell, mapping the missing
// sentinel and anything unparsable to the non-matching key -1.
func joinKey(category *dataset.Table, id int, column string) int {
	value, ok := category.Get(id, column)
	if !ok || value == twoda.Missing {
		return -1
	}
	key, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}
	return key
}
