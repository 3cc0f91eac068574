package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	jwtPattern    = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)
	bearerPattern = regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`)
)

// DefaultRedactOptions lists the field names, prefixes and value patterns
// that are never written to logs.
func DefaultRedactOptions() []masq.Option {
	fields := []string{
		"password", "secret", "token", "apiKey", "apikey", "api_key",
		"accessToken", "access_token", "refresh_token", "credentials",
		"authorization", "auth", "cookie", "set-cookie", "session",
		"privateKey", "private_key",
	}

	opts := make([]masq.Option, 0, len(fields)+4)
	for _, f := range fields {
		opts = append(opts, masq.WithFieldName(f))
	}

	return append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(bearerPattern),
	)
}

// NewReplaceAttr returns a slog ReplaceAttr that redacts the defaults plus opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
