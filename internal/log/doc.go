// Package log provides logging for sotdarc, built on top of the standard
// slog package.
//
// Log attributes frequently carry raw lines quoted from report documents.
// Those lines can contain embedded newlines and Markdown table rows
// hundreds of characters wide, which wreck line-oriented log output. The
// CleanHandler flattens multi-line string attributes and truncates
// oversized ones before they reach the underlying handler.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("row rejected",
//	    "line", rawLine, // flattened and truncated as needed
//	    "path", path,
//	)
package log
