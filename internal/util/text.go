package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// DedupKey builds the cross-source identity key: lowercase first and last
// name joined with "_", remaining spaces turned into underscores. Accented
// characters are deliberately not folded, so "Héléne" and "Helene" yield
// distinct keys; that matches the observed upstream behaviour even though
// two sources could spell the same person both ways. An entity with no
// name components degenerates to "_".
func DedupKey(firstName, lastName string) string {
	key := strings.ToLower(firstName) + "_" + strings.ToLower(lastName)
	return strings.ReplaceAll(key, " ", "_")
}

// NormalizeFullName produces the lookup key used by the asset registry:
// lowercased "first last" with runs of whitespace collapsed to one space.
func NormalizeFullName(firstName, lastName string) string {
	full := strings.TrimSpace(firstName + " " + lastName)
	full = reSpaces.ReplaceAllString(full, " ")
	return strings.ToLower(full)
}

// FullName joins the name components the way every source does: trimmed
// concatenation, tolerating either side being empty.
func FullName(firstName, lastName string) string {
	return strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
