// Package dedupe removes near-duplicate insights by normalized key,
// keeping the first occurrence.
package dedupe

import (
	"strings"

	"github.com/casefort/LitIntel/internal/domain/evidence"
	"github.com/casefort/LitIntel/internal/domain/insight"
)

// NormalizeKey trims, lowercases, and collapses internal whitespace so
// that cosmetic variants of the same label compare equal.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// ByKey returns items with duplicates removed, keyed by keyFn after
// normalization.  First occurrence wins and relative order is preserved,
// so applying ByKey twice is a no-op.
func ByKey[T any](items []T, keyFn func(T) string) []T {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		key := NormalizeKey(keyFn(item))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// Strings deduplicates a plain string list by its own content.
func Strings(items []string) []string {
	return ByKey(items, func(s string) string { return s })
}

// MissingEvidence deduplicates missing-evidence items by category plus
// label; requirements in different categories may legitimately share a label.
func MissingEvidence(items []evidence.MissingItem) []evidence.MissingItem {
	return ByKey(items, func(m evidence.MissingItem) string {
		return string(m.Requirement.Category) + " " + m.Label()
	})
}

// MissingRefs deduplicates snapshot missing-evidence entries by category
// plus label.
func MissingRefs(items []insight.MissingEvidenceRef) []insight.MissingEvidenceRef {
	return ByKey(items, func(r insight.MissingEvidenceRef) string {
		return r.Category + " " + r.Label
	})
}

// ChecklistItems deduplicates checklist requirements by label.
func ChecklistItems(items []evidence.Requirement) []evidence.Requirement {
	return ByKey(items, func(r evidence.Requirement) string { return r.Label })
}

// KeyIssues deduplicates snapshot key issues by type plus label.
func KeyIssues(items []insight.KeyIssue) []insight.KeyIssue {
	return ByKey(items, func(k insight.KeyIssue) string { return k.Type + " " + k.Label })
}
