// Package rules holds the data-driven lexicon tables the classifiers and
// scorers match against.  Patterns live in data, not code, so the engine
// can be retuned or retargeted to a new practice area without a rebuild.
package rules

import (
	"sort"
	"strings"

	apperrors "github.com/casefort/LitIntel/pkg/errors"
)

// Pattern is one lexicon entry: a lowercase substring to match, the weight
// a hit contributes, and optional confirming terms that must appear within
// the caller's context window around the hit.
type Pattern struct {
	Match   string   `mapstructure:"match" json:"match"`
	Weight  int      `mapstructure:"weight" json:"weight"`
	Context []string `mapstructure:"context" json:"context,omitempty"`
}

// HarmTerm is one serious-harm indicator with its point value.  Terms
// sharing a Group are near-duplicates (e.g. "sepsis"/"septic"): the first
// match in a group scores full points, later matches in the same group
// score only the group's Correction value.
type HarmTerm struct {
	Term       string `mapstructure:"term" json:"term"`
	Points     int    `mapstructure:"points" json:"points"`
	Group      string `mapstructure:"group" json:"group,omitempty"`
	Correction int    `mapstructure:"correction" json:"correction,omitempty"`
}

// Substitution is one sanitizer rewrite rule.
type Substitution struct {
	From string `mapstructure:"from" json:"from"`
	To   string `mapstructure:"to" json:"to"`
}

// RoleRules holds the two role-indicating lexicons.
type RoleRules struct {
	Claimant  []Pattern `mapstructure:"claimant" json:"claimant"`
	Defendant []Pattern `mapstructure:"defendant" json:"defendant"`
}

// MeritsRules holds the five substantive-merit lexicons.
type MeritsRules struct {
	GuidelineBreach    []Pattern  `mapstructure:"guideline_breach" json:"guideline_breach"`
	DelayCausation     []Pattern  `mapstructure:"delay_causation" json:"delay_causation"`
	ExpertConfirmation []Pattern  `mapstructure:"expert_confirmation" json:"expert_confirmation"`
	Harm               []HarmTerm `mapstructure:"harm" json:"harm"`
	Psychological      []Pattern  `mapstructure:"psychological" json:"psychological"`
}

// Table is the full rule set consumed by the analysis packages.
type Table struct {
	Role     RoleRules      `mapstructure:"role" json:"role"`
	Merits   MeritsRules    `mapstructure:"merits" json:"merits"`
	Sanitize []Substitution `mapstructure:"sanitize" json:"sanitize"`
}

// Normalize lowercases every pattern and orders the sanitizer rules most
// specific (longest source phrase) first, so broad rules can never clobber
// a narrower one.  Called after loading and by Default.
func (t *Table) Normalize() {
	lowerPatterns(t.Role.Claimant)
	lowerPatterns(t.Role.Defendant)
	lowerPatterns(t.Merits.GuidelineBreach)
	lowerPatterns(t.Merits.DelayCausation)
	lowerPatterns(t.Merits.ExpertConfirmation)
	lowerPatterns(t.Merits.Psychological)
	for i := range t.Merits.Harm {
		t.Merits.Harm[i].Term = strings.ToLower(t.Merits.Harm[i].Term)
	}
	sort.SliceStable(t.Sanitize, func(i, j int) bool {
		return len(t.Sanitize[i].From) > len(t.Sanitize[j].From)
	})
}

// Validate checks the table is usable: every lexicon non-empty, every
// pattern non-blank with positive weight, every substitution with a
// non-blank source that does not reappear in any substitution target
// (the property that makes sanitization idempotent).
func (t *Table) Validate() error {
	if err := validatePatterns("role.claimant", t.Role.Claimant); err != nil {
		return err
	}
	if err := validatePatterns("role.defendant", t.Role.Defendant); err != nil {
		return err
	}
	for name, ps := range map[string][]Pattern{
		"merits.guideline_breach":    t.Merits.GuidelineBreach,
		"merits.delay_causation":     t.Merits.DelayCausation,
		"merits.expert_confirmation": t.Merits.ExpertConfirmation,
		"merits.psychological":       t.Merits.Psychological,
	} {
		if err := validatePatterns(name, ps); err != nil {
			return err
		}
	}
	if len(t.Merits.Harm) == 0 {
		return apperrors.New(apperrors.ErrCodeRuleTableInvalid, "merits.harm lexicon is empty")
	}
	for _, h := range t.Merits.Harm {
		if strings.TrimSpace(h.Term) == "" || h.Points <= 0 {
			return apperrors.New(apperrors.ErrCodeRuleTableInvalid, "merits.harm entry has blank term or non-positive points").
				WithDetail("term: " + h.Term)
		}
	}
	for _, s := range t.Sanitize {
		if strings.TrimSpace(s.From) == "" {
			return apperrors.New(apperrors.ErrCodeRuleTableInvalid, "sanitize rule has blank source phrase")
		}
		for _, other := range t.Sanitize {
			if strings.Contains(strings.ToLower(other.To), strings.ToLower(s.From)) {
				return apperrors.New(apperrors.ErrCodeRuleTableInvalid, "sanitize target reintroduces a source phrase").
					WithDetail(s.From + " -> " + other.To)
			}
		}
	}
	return nil
}

func validatePatterns(name string, ps []Pattern) error {
	if len(ps) == 0 {
		return apperrors.New(apperrors.ErrCodeRuleTableInvalid, "lexicon is empty").
			WithDetail(name)
	}
	for _, p := range ps {
		if strings.TrimSpace(p.Match) == "" || p.Weight <= 0 {
			return apperrors.New(apperrors.ErrCodeRuleTableInvalid, "pattern has blank match or non-positive weight").
				WithDetail(name + ": " + p.Match)
		}
	}
	return nil
}

func lowerPatterns(ps []Pattern) {
	for i := range ps {
		ps[i].Match = strings.ToLower(ps[i].Match)
		for j := range ps[i].Context {
			ps[i].Context[j] = strings.ToLower(ps[i].Context[j])
		}
	}
}
