package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Config selects the handler and the attributes stamped on every record.
// Zero values fall back to info-level text output.
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// ParseLevel accepts slog level names case-insensitively, plus "warning".
// Unknown input yields info.
func ParseLevel(s string) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, levelWarningAlias) {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (c Config) newHandler(opts *slog.HandlerOptions, w io.Writer) slog.Handler {
	if strings.EqualFold(c.Format, FormatJSON) {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// attrs skips empty values so tests and tools can leave fields unset.
func (c Config) attrs() []slog.Attr {
	var out []slog.Attr
	for _, kv := range [...][2]string{
		{AttrKeyService, c.ServiceName},
		{AttrKeyVersion, c.Version},
		{AttrKeyEnvironment, c.Environment},
	} {
		if kv[1] != "" {
			out = append(out, slog.String(kv[0], kv[1]))
		}
	}
	return out
}
