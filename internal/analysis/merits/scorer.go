// Package merits scores substantive clinical-negligence strength signals
// from case text: guideline breaches, delay causation, expert confirmation,
// serious harm, and psychological injury.
package merits

import (
	"fmt"
	"strings"

	"github.com/casefort/LitIntel/internal/analysis/rules"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
)

// Scorer computes the five-part substantive merits profile.
type Scorer struct {
	rules  *rules.Provider
	radius int
}

// NewScorer builds a Scorer.  radius is the character window around a
// lexicon hit that must contain a confirming term for the contextual
// sub-scores (breach, delay, expert).
func NewScorer(provider *rules.Provider, radius int) *Scorer {
	return &Scorer{rules: provider, radius: radius}
}

// Score scans the case file and returns the merits profile.  A nil or
// empty file yields a zero profile, never an error: absence of evidence is
// a valid (weak) result.
func (s *Scorer) Score(file *litigation.CaseFile) *insight.MeritsScore {
	out := &insight.MeritsScore{}
	if file == nil {
		return out
	}
	lower := strings.ToLower(file.AllText())
	if lower == "" {
		return out
	}

	tbl := s.rules.Current()
	out.GuidelineBreach = s.scoreContextual(lower, tbl.Merits.GuidelineBreach)
	out.DelayCausation = s.scoreContextual(lower, tbl.Merits.DelayCausation)
	out.ExpertConfirmation = s.scoreContextual(lower, tbl.Merits.ExpertConfirmation)
	out.SeriousHarm = scoreHarm(lower, tbl.Merits.Harm)
	out.PsychologicalInjury = s.scoreContextual(lower, tbl.Merits.Psychological)

	out.TotalScore = out.GuidelineBreach.Score +
		out.DelayCausation.Score +
		out.ExpertConfirmation.Score +
		out.SeriousHarm.Score +
		out.PsychologicalInjury.Score
	return out
}

// scoreContextual counts each pattern at most once.  A pattern with
// context terms only scores when one of them appears within the window
// around some occurrence of the match; a bare mention never scores.
func (s *Scorer) scoreContextual(lower string, patterns []rules.Pattern) insight.MeritsComponent {
	comp := insight.MeritsComponent{}
	for _, p := range patterns {
		term, ok := confirmHit(lower, p, s.radius)
		if !ok {
			continue
		}
		comp.Score += p.Weight
		if term != "" {
			comp.Details = append(comp.Details, fmt.Sprintf("%q near %q", p.Match, term))
		} else {
			comp.Details = append(comp.Details, fmt.Sprintf("%q present", p.Match))
		}
	}
	comp.Detected = comp.Score > 0
	return comp
}

// confirmHit reports whether any occurrence of p.Match in lower has a
// confirming context term within radius characters, returning the term
// that confirmed it.  Patterns without context terms confirm on first
// occurrence.
func confirmHit(lower string, p rules.Pattern, radius int) (string, bool) {
	from := 0
	for {
		i := strings.Index(lower[from:], p.Match)
		if i < 0 {
			return "", false
		}
		i += from
		if len(p.Context) == 0 {
			return "", true
		}
		start := i - radius
		if start < 0 {
			start = 0
		}
		end := i + len(p.Match) + radius
		if end > len(lower) {
			end = len(lower)
		}
		window := lower[start:end]
		for _, term := range p.Context {
			if strings.Contains(window, term) {
				return term, true
			}
		}
		from = i + len(p.Match)
	}
}

// scoreHarm applies the per-term point table.  Terms sharing a group are
// near-duplicates: the first match in a group scores its full points,
// later matches in the same group score only their small correction value.
func scoreHarm(lower string, terms []rules.HarmTerm) insight.MeritsComponent {
	comp := insight.MeritsComponent{}
	seen := make(map[string]bool)
	for _, h := range terms {
		if !strings.Contains(lower, h.Term) {
			continue
		}
		if h.Group != "" && seen[h.Group] {
			comp.Score += h.Correction
			continue
		}
		if h.Group != "" {
			seen[h.Group] = true
		}
		comp.Score += h.Points
		comp.Details = append(comp.Details, h.Term)
	}
	comp.Detected = comp.Score > 0
	return comp
}
