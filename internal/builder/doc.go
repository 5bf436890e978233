// Package builder orchestrates a full localization build: seed the string
// table, merge override labels into every category table, serialize the
// table through the external TLK converter, pack the 2DA set into a HAK
// archive, and fan the artifacts out to the configured output directories.
//
// Builds are single-instance per primary output directory, guarded by a
// file lock. All intermediate files live in a scoped temp directory that is
// removed on every exit path, so failed builds never leave partial output.
package builder
