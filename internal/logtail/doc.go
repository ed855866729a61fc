// Package logtail reads the tail of the storefront log file for the in-app
// activity view.
//
// Read keeps a ring buffer of maxLines entries so only one pass over the file
// is needed regardless of its size. Parse understands the key=value lines
// written by slog.TextHandler and extracts level and message so the UI can
// colour them; any other line is passed through untouched.
package logtail
