// Package twoda reads and writes 2DA category tables. Files are ISO-8859-1
// text with a fixed two-line format header, a row of column names, and
// space-separated rows whose first field is the row id.
package twoda
