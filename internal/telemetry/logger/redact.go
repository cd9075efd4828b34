package logger

import (
	"log/slog"
	"strings"
)

// redactedValue replaces secrets in log output.
const redactedValue = "***REDACTED***"

// Key fragments whose string values never reach a handler. "target"
// is included because connection targets embed credentials.
var secretKeyFragments = []string{
	"password",
	"secret",
	"credential",
	"auth",
	"target",
}

// IsSensitiveKey reports whether a key name suggests secret content.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, frag := range secretKeyFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// redactSensitive rewrites a secret-bearing attribute, descending
// into groups.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		if IsSensitiveKey(a.Key) && a.Value.String() != "" {
			return slog.String(a.Key, redactedValue)
		}
	case slog.KindGroup:
		members := a.Value.Group()
		clean := make([]slog.Attr, len(members))
		for i, m := range members {
			clean[i] = redactSensitive(m)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clean...)}
	}
	return a
}

// RedactArgs masks credential positions of a command for logging.
// AUTH and HELLO carry secrets as arguments; everything else passes
// through unchanged. The input slice is not modified.
func RedactArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	out := make([]string, len(args))
	copy(out, args)

	switch strings.ToUpper(out[0]) {
	case "AUTH":
		// AUTH password | AUTH username password
		for i := 1; i < len(out); i++ {
			out[i] = redactedValue
		}
	case "HELLO":
		// HELLO proto [AUTH username password]
		for i := 1; i < len(out); i++ {
			if strings.ToUpper(out[i]) == "AUTH" && i+2 < len(out) {
				out[i+2] = redactedValue
			}
		}
	case "CONFIG":
		// CONFIG SET requirepass <secret>
		if len(out) >= 4 && strings.ToUpper(out[1]) == "SET" && IsSensitiveKey(out[2]) {
			out[3] = redactedValue
		}
	}
	return out
}
