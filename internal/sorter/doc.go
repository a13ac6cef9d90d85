// Package sorter drives a sort run: it enumerates candidate files, resolves
// each one's destination from its metadata, places it safely (no silent
// overwrites), and tracks which directories received which files so the
// archiving pass can compress them afterwards.
package sorter
