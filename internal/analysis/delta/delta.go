// Package delta compares consecutive analysis snapshots of a case and
// produces the human-readable change report.
package delta

import (
	"fmt"

	"github.com/casefort/LitIntel/internal/analysis/dedupe"
	"github.com/casefort/LitIntel/internal/domain/insight"
)

// Compute diffs previous against current.  A nil previous snapshot
// short-circuits to a first-analysis report with no change sets.
func Compute(previous, current *insight.AnalysisSnapshot) *insight.AnalysisDelta {
	d := &insight.AnalysisDelta{CaseID: current.CaseID}

	if previous == nil {
		d.FirstAnalysis = true
		d.CurrentState = current.MomentumState
		d.Notes = []string{"First analysis of this case; no earlier snapshot to compare against."}
		return d
	}

	d.PreviousState = previous.MomentumState
	d.CurrentState = current.MomentumState
	d.ScoreChange = current.MomentumScore - previous.MomentumScore

	d.NewIssues, d.ResolvedIssues = diffIssues(previous.KeyIssues, current.KeyIssues)
	d.NewMissingEvidence, d.ResolvedMissingEvidence = diffMissing(previous.MissingEvidence, current.MissingEvidence)
	d.Notes = buildNotes(d)
	return d
}

func diffIssues(prev, curr []insight.KeyIssue) (added, removed []insight.KeyIssue) {
	prevKeys := issueKeySet(prev)
	currKeys := issueKeySet(curr)
	for _, i := range curr {
		if !prevKeys[issueKey(i)] {
			added = append(added, i)
		}
	}
	for _, i := range prev {
		if !currKeys[issueKey(i)] {
			removed = append(removed, i)
		}
	}
	return added, removed
}

func diffMissing(prev, curr []insight.MissingEvidenceRef) (added, removed []insight.MissingEvidenceRef) {
	prevSet := missingKeySet(prev)
	currSet := missingKeySet(curr)
	for _, r := range curr {
		if !prevSet[missingKey(r)] {
			added = append(added, r)
		}
	}
	for _, r := range prev {
		if !currSet[missingKey(r)] {
			removed = append(removed, r)
		}
	}
	return added, removed
}

func buildNotes(d *insight.AnalysisDelta) []string {
	var notes []string

	if d.PreviousState != d.CurrentState {
		notes = append(notes, fmt.Sprintf("Case momentum moved from %s to %s.", d.PreviousState, d.CurrentState))
	}
	for _, i := range d.NewIssues {
		notes = append(notes, fmt.Sprintf("New %s issue identified: %s.", i.Severity, i.Label))
	}
	for _, i := range d.ResolvedIssues {
		notes = append(notes, fmt.Sprintf("Previously flagged issue resolved: %s.", i.Label))
	}
	for _, r := range d.NewMissingEvidence {
		notes = append(notes, fmt.Sprintf("Evidence gap opened: %s (%s).", r.Label, r.Category))
	}
	for _, r := range d.ResolvedMissingEvidence {
		notes = append(notes, fmt.Sprintf("Evidence gap closed: %s (%s).", r.Label, r.Category))
	}
	if len(notes) == 0 {
		notes = append(notes, "No material change since the previous analysis.")
	}
	return notes
}

func issueKey(i insight.KeyIssue) string {
	return dedupe.NormalizeKey(i.Type + " " + i.Label)
}

func issueKeySet(issues []insight.KeyIssue) map[string]bool {
	set := make(map[string]bool, len(issues))
	for _, i := range issues {
		set[issueKey(i)] = true
	}
	return set
}

// missingKey includes the category so same-named requirements in different
// categories never collapse into one diff entry.
func missingKey(r insight.MissingEvidenceRef) string {
	return dedupe.NormalizeKey(r.Category + " " + r.Label)
}

func missingKeySet(items []insight.MissingEvidenceRef) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, r := range items {
		set[missingKey(r)] = true
	}
	return set
}
