package utils

import "strings"

// Common aliases folded onto canonical catalog tags
var tagAliases = map[string]string{
	"videogames":  "gaming",
	"video games": "gaming",
	"gamer":       "gaming",
	"sketching":   "drawing",
	"art":         "drawing",
	"baking":      "cooking",
	"espresso":    "coffee",
	"barista":     "coffee",
	"books":       "reading",
	"literature":  "reading",
	"trip":        "travel",
	"sustainable": "eco",
	"green":       "eco",
	"minimalist":  "minimal",
	"hygge":       "cozy",
}

// NormalizeTag lowercases, trims and folds known aliases onto their
// canonical tag
func NormalizeTag(tag string) string {
	t := strings.ToLower(strings.TrimSpace(tag))
	if canonical, ok := tagAliases[t]; ok {
		return canonical
	}
	return t
}

// NormalizeTags normalizes and deduplicates a tag list, preserving the order
// of first appearance
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := NormalizeTag(tag)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// UnionTags merges additional tag sets into base. Tags already present are
// never removed or replaced, so sets only grow.
func UnionTags(base []string, more ...[]string) []string {
	out := NormalizeTags(base)
	seen := make(map[string]bool, len(out))
	for _, t := range out {
		seen[t] = true
	}
	for _, set := range more {
		for _, tag := range set {
			t := NormalizeTag(tag)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// HasOverlap reports whether any normalized tag of a appears in b
func HasOverlap(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]bool, len(b))
	for _, t := range b {
		set[NormalizeTag(t)] = true
	}
	for _, t := range a {
		if set[NormalizeTag(t)] {
			return true
		}
	}
	return false
}
