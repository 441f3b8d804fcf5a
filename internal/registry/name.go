package registry

import (
	"strings"

	"github.com/firefly-engineering/portman/internal/errors"
)

// MaxNameLength is the longest allowed project name, the DNS label limit.
const MaxNameLength = 63

func isSlugChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-'
}

// NormalizeName converts an arbitrary string, usually a directory basename,
// into a valid project name.
func NormalizeName(raw string) string {
	var sb strings.Builder
	lastDash := true // drops leading dashes
	for _, c := range strings.ToLower(raw) {
		if !isSlugChar(c) {
			c = '-'
		}
		if c == '-' {
			if lastDash {
				continue
			}
			lastDash = true
		} else {
			lastDash = false
		}
		sb.WriteRune(c)
	}

	name := sb.String()
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	return strings.TrimRight(name, "-")
}

// ValidateName checks a project name against the slug grammar. The returned
// error carries the specific reason the name was rejected.
func ValidateName(name string) error {
	if reason := nameProblem(name); reason != "" {
		return errors.InvalidProjectName(name, reason)
	}
	return nil
}

func nameProblem(name string) string {
	switch {
	case name == "":
		return "must not be empty"
	case len(name) > MaxNameLength:
		return "must not contain more than 63 characters"
	case strings.HasPrefix(name, "-"):
		return "must not start with a dash"
	case strings.HasSuffix(name, "-"):
		return "must not end with a dash"
	case strings.Contains(name, "--"):
		return "must not contain consecutive dashes"
	}
	for _, c := range name {
		if !isSlugChar(c) {
			return "must only contain the characters a-z, 0-9, and -"
		}
	}
	return ""
}
