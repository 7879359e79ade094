// Package catalog loads a course catalog from a comma-delimited text file
// and answers listing and lookup queries against it.
//
// This package has no UI dependencies. The interactive shell, the CLI
// subcommands and the web browser all share it.
//
// # File Format
//
// One record per line, fields separated by commas:
//
//	identifier,title[,prereq1,prereq2,...]
//
// Fields are trimmed and empty fields are dropped before the line is
// interpreted. A line with fewer than two remaining fields is skipped
// without error. Identifiers and prerequisites are uppercased; titles keep
// their case. Commas cannot be escaped, so a comma inside a title splits it.
//
// # Errors
//
// [Load] fails with an [*OpenError] when the file cannot be opened or read
// and with an [*EmptyError] when it was read but yielded no records. Use
// errors.Is with [ErrOpen] and [ErrEmpty] to tell them apart. A lookup miss
// is not an error: [Catalog.Lookup] reports it with a false second result.
//
// [MapError] turns any of these into a coded [UserMessage] for display.
package catalog
