// Package evidence defines the evidence-requirement checklist and the
// missing-evidence detection shared by several signal detectors.
package evidence

import (
	"context"
	"sort"
	"strings"

	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// Category classifies which limb of the case an evidence item supports.
// The order of the constants is the canonical sort order.
type Category string

const (
	CategoryLiability Category = "liability"
	CategoryCausation Category = "causation"
	CategoryQuantum   Category = "quantum"
	CategoryProcedure Category = "procedure"
	CategoryHousing   Category = "housing"
)

// order maps categories onto their canonical sort position.
func (c Category) order() int {
	switch c {
	case CategoryLiability:
		return 0
	case CategoryCausation:
		return 1
	case CategoryQuantum:
		return 2
	case CategoryProcedure:
		return 3
	case CategoryHousing:
		return 4
	default:
		return 5
	}
}

// Requirement is one checklist entry: a label, its classification, and the
// text patterns whose presence in the case file satisfies it.
type Requirement struct {
	ID       common.ID       `json:"id"`
	Label    string          `json:"label"`
	Category Category        `json:"category"`
	Priority common.Severity `json:"priority"`

	// Patterns are lowercase substrings; any one match in the case text or
	// document names marks the requirement as present.
	Patterns []string `json:"patterns"`

	// Administrative marks procedural housekeeping items (client ID,
	// retainer, CFA) that must not weaken a claimant's substantive position.
	Administrative bool `json:"administrative"`
}

// MissingItem is a requirement found absent from a case.
type MissingItem struct {
	Requirement Requirement `json:"requirement"`
	CaseID      common.ID   `json:"case_id"`
}

// Label is a convenience accessor used by dedup keys.
func (m MissingItem) Label() string { return m.Requirement.Label }

// ChecklistProvider returns the ordered evidence requirements for a
// practice area.  The default provider serves the compiled-in checklists;
// deployments may substitute a store-backed provider.
type ChecklistProvider interface {
	Checklist(ctx context.Context, area litigation.PracticeArea) ([]Requirement, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// Missing-evidence detection
// ─────────────────────────────────────────────────────────────────────────────

// FindMissing scans the case file for each requirement's patterns and
// returns the requirements with no match, sorted per SortMissing.
func FindMissing(file *litigation.CaseFile, requirements []Requirement) []MissingItem {
	text := strings.ToLower(file.AllText())

	missing := make([]MissingItem, 0)
	for _, req := range requirements {
		if !requirementPresent(text, req) {
			missing = append(missing, MissingItem{Requirement: req, CaseID: file.Case.ID})
		}
	}
	SortMissing(missing)
	return missing
}

func requirementPresent(lowerText string, req Requirement) bool {
	for _, p := range req.Patterns {
		if p == "" {
			continue
		}
		if strings.Contains(lowerText, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// SortMissing orders items by priority (critical first), then by category
// (liability, causation, quantum, procedure, housing).  Items of equal
// priority and category keep their original relative order.
func SortMissing(items []MissingItem) {
	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := items[i].Requirement.Priority.Rank(), items[j].Requirement.Priority.Rank()
		if pi != pj {
			return pi > pj
		}
		return items[i].Requirement.Category.order() < items[j].Requirement.Category.order()
	})
}

// CountSubstantive returns how many missing items are non-administrative.
func CountSubstantive(items []MissingItem) int {
	n := 0
	for _, m := range items {
		if !m.Requirement.Administrative {
			n++
		}
	}
	return n
}

// CountCritical returns how many missing items carry critical priority,
// optionally excluding administrative items (the claimant downgrade rule).
func CountCritical(items []MissingItem, excludeAdministrative bool) int {
	n := 0
	for _, m := range items {
		if m.Requirement.Priority != common.SeverityCritical {
			continue
		}
		if excludeAdministrative && m.Requirement.Administrative {
			continue
		}
		n++
	}
	return n
}
