package profile

import (
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// NormalizeUsername derives a username candidate from a display name:
// lowercase, trimmed, stripped of everything outside letters, digits,
// underscores and spaces, with whitespace runs collapsed to one underscore.
// Re-applying it to its own output is a no-op.
func NormalizeUsername(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var kept strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			kept.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			kept.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(kept.String()), "_")
}
