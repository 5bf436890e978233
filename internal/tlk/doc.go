// Package tlk implements the in-memory string table: deduplicated id
// allocation, explicit id reservation with gap backfill, and the JSON
// document the external nwn_tlk converter consumes.
//
// Blank ids are reused smallest-first so repeated builds over the same input
// produce identical tables.
package tlk
