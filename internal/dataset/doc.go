// Package dataset provides the integer-row-indexed, column-named table type
// shared by the 2DA and override-label adapters.
//
// Cells live in row-keyed maps and a missing value is an absent key, which
// keeps column restriction, reindexing, and overlays free of the positional
// alignment hazards a general tabular library would introduce.
package dataset
