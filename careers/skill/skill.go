// Package skill holds the canonical comparison form of skill names and the
// proficiency levels a profile can declare.
package skill

import (
	"regexp"
	"sort"
	"strings"
)

var (
	parenthetical = regexp.MustCompile(`\(.*?\)`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Normalize lower-cases s, drops parenthetical qualifiers and collapses
// whitespace. It is idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = parenthetical.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeValue is Normalize for untyped values decoded from model output.
// Anything that is not a string normalizes to "".
func NormalizeValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return Normalize(s)
}

// Query builds the embedding query for a skill set: normalized names, sorted,
// joined with ", ". Blank names are dropped.
func Query(names []string) string {
	normalized := make([]string, 0, len(names))
	for _, n := range names {
		if v := Normalize(n); v != "" {
			normalized = append(normalized, v)
		}
	}
	sort.Strings(normalized)
	return strings.Join(normalized, ", ")
}

// Set is a set of normalized skill names
type Set map[string]struct{}

func NewSet(names ...string) Set {
	s := make(Set, len(names))
	s.Add(names...)
	return s
}

func (s Set) Add(names ...string) {
	for _, n := range names {
		if v := Normalize(n); v != "" {
			s[v] = struct{}{}
		}
	}
}

func (s Set) Has(name string) bool {
	_, ok := s[Normalize(name)]
	return ok
}

// Dedupe keeps the first spelling of each normalized name, in order
func Dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := Normalize(n)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}
