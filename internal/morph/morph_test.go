package morph_test

import (
	"testing"

	"tlkify/internal/morph"
)

func TestPluralize(t *testing.T) {
	cases := map[string]string{
		"Witch":  "Witches",
		"Wish":   "Wishes",
		"Wife":   "Wives",
		"Elf":    "Elves",
		"Class":  "Classes",
		"Fox":    "Foxes",
		"Hero":   "Heroes",
		"Dwarf":  "Dwarves",
		"City":   "Cities",
		"Boy":    "Boys",
		"Wizard": "Wizards",
	}
	for input, want := range cases {
		if got := morph.Pluralize(input); got != want {
			t.Errorf("Pluralize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestAdjective(t *testing.T) {
	if got := morph.Adjective("Elf"); got != "Elven" {
		t.Errorf("Adjective(Elf) = %q, want Elven", got)
	}
	if got := morph.Adjective("Human"); got != "Human" {
		t.Errorf("Adjective(Human) = %q, want Human", got)
	}
}
