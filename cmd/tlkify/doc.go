// Command tlkify merges override labels into game data tables, allocates
// string-table ids for every piece of text, and packs the results into TLK
// and HAK artifacts via the external nwn_tlk and nwn_erf converters.
package main
