package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// MaxAttrLen is the longest string attribute value the CleanHandler will
// pass through unmodified. Report table rows routinely exceed terminal
// width; anything longer than this is truncated with an ellipsis.
const MaxAttrLen = 256

// CleanHandler wraps an slog.Handler to keep log lines one line long.
// It flattens embedded newlines in string attributes and truncates
// oversized values before passing records to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites can log raw document lines without pre-cleaning them
type CleanHandler struct {
	// handler is the underlying slog handler that receives cleaned records.
	handler slog.Handler
}

// NewCleanHandler creates a new CleanHandler wrapping the given handler.
// If handler is nil, the returned CleanHandler will use slog.Default().Handler().
func NewCleanHandler(handler slog.Handler) *CleanHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &CleanHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *CleanHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle cleans the record's attributes and passes it to the underlying handler.
func (h *CleanHandler) Handle(ctx context.Context, r slog.Record) error {
	cleaned := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		cleaned.AddAttrs(h.cleanAttr(a))
		return true
	})

	return h.handler.Handle(ctx, cleaned)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are cleaned before being added.
func (h *CleanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cleanedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		cleanedAttrs[i] = h.cleanAttr(a)
	}
	return &CleanHandler{handler: h.handler.WithAttrs(cleanedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *CleanHandler) WithGroup(name string) slog.Handler {
	return &CleanHandler{handler: h.handler.WithGroup(name)}
}

// cleanAttr cleans a single attribute, recursively handling groups.
func (h *CleanHandler) cleanAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		cleanedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			cleanedAttrs[i] = h.cleanAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(cleanedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		if cleaned, changed := cleanString(a.Value.String()); changed {
			return slog.String(a.Key, cleaned)
		}
	}

	return a
}

// cleanString flattens newlines and truncates oversized values.
// The second return value reports whether the string was modified.
func cleanString(s string) (string, bool) {
	changed := false

	if strings.ContainsAny(s, "\r\n") {
		s = strings.Join(strings.Fields(s), " ")
		changed = true
	}

	if len(s) > MaxAttrLen {
		s = s[:MaxAttrLen-3] + "..."
		changed = true
	}

	return s, changed
}

// NewLogger creates a new slog.Logger with clean handling and text output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewCleanHandler(textHandler))
}

// NewJSONLogger creates a new slog.Logger with clean handling that outputs
// JSON format. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewCleanHandler(jsonHandler))
}
