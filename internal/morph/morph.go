// Package morph derives plural and adjective label forms from a base noun.
//
// The rules are heuristic English morphology, not a complete inflection
// engine. Their exact priority order is load-bearing: generated tables must
// match labels produced by earlier builds.
package morph

import "strings"

// Pluralize returns a basic plural form of the given noun.
func Pluralize(text string) string {
	if len(text) >= 2 {
		switch text[len(text)-2:] {
		case "ch", "is", "sh":
			return text + "es" // Witch -> Witches
		case "fe":
			return text[:len(text)-2] + "ves" // Wife -> Wives
		case "lf":
			return text[:len(text)-1] + "ves" // Elf -> Elves
		}
	}
	if len(text) >= 1 {
		switch text[len(text)-1] {
		case 's', 'x', 'z', 'o':
			return text + "es" // Class -> Classes
		case 'f':
			return text[:len(text)-1] + "ves" // Dwarf -> Dwarves
		case 'y':
			if len(text) >= 2 && !strings.ContainsRune("aeiou", rune(text[len(text)-2])) {
				return text[:len(text)-1] + "ies" // City -> Cities
			}
		}
	}
	return text + "s"
}

// Adjective returns a basic adjective form of the given noun.
func Adjective(text string) string {
	if strings.HasSuffix(text, "f") {
		return text[:len(text)-1] + "ven" // Elf -> Elven
	}
	return text
}
