// Package pipeline merges override label tables into category tables, one
// category at a time, resolving free text into string-table references.
//
// The flow per category is derive -> restrict -> resolve -> overlay:
// category-specific rules fill missing override columns (plural and
// adjective forms, cross-table item-property names), the override is
// restricted to columns the category actually carries, each present cell is
// swapped for an offset id, and the resolved cells overwrite the category
// table. The spells category routes its name and description columns
// through deterministic static ids instead of the allocator.
package pipeline
