package logging

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// tsLayout is RFC3339 with millisecond precision. Frame timings are
// logged in the same unit.
const tsLayout = "2006-01-02T15:04:05.000Z07:00"

// newJSONHandler writes one object per record, tagged with the app name.
// Durations such as the per-job "duration" attribute are emitted as
// "<key>_ms" floats so log pipelines can aggregate them.
func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: replaceJSONAttr,
	}
	return slog.NewJSONHandler(w, &opts).WithAttrs([]slog.Attr{slog.String("app", "assetforge")})
}

func replaceJSONAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 {
		switch attr.Key {
		case slog.TimeKey:
			if attr.Value.Kind() == slog.KindTime {
				return slog.String("ts", attr.Value.Time().UTC().Format(tsLayout))
			}
			return attr
		case slog.LevelKey:
			return slog.String(slog.LevelKey, strings.ToLower(attr.Value.String()))
		case slog.SourceKey:
			if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
				return slog.String("caller", fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
			}
			return attr
		}
	}
	if attr.Value.Kind() == slog.KindDuration {
		ms := float64(attr.Value.Duration().Microseconds()) / 1000
		return slog.Float64(attr.Key+"_ms", ms)
	}
	return attr
}
