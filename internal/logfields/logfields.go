package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID       = "run_id"
	KeyLocale      = "locale"
	KeyChapter     = "chapter"
	KeySource      = "source"
	KeyDestination = "destination"
	KeyPath        = "path"
	KeyFile        = "file"
	KeyCount       = "count"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Locale(l string) slog.Attr       { return slog.String(KeyLocale, l) }
func Chapter(c string) slog.Attr      { return slog.String(KeyChapter, c) }
func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func Destination(p string) slog.Attr  { return slog.String(KeyDestination, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(name string) slog.Attr      { return slog.String(KeyFile, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
