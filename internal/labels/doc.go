// Package labels loads override label files: JSON arrays of records with a
// required integer id and arbitrary named text fields, in UTF-8 with or
// without a byte order mark.
package labels
