// Package scenario derives the two forward-looking views: if-then
// procedural scenarios and the stage-by-stage judicial-expectation map.
package scenario

import (
	"fmt"
	"strings"

	"github.com/casefort/LitIntel/internal/analysis/detect"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// Outline converts the detector findings into if-then scenarios a
// solicitor can put to the client or the opponent.
func Outline(
	in *detect.Input,
	leverage []insight.LeveragePoint,
	compliance []insight.ComplianceIssue,
	pressure []insight.TimePressurePoint,
) []insight.ScenarioOutline {
	var out []insight.ScenarioOutline

	for _, p := range leverage {
		if p.Severity != common.SeverityCritical {
			continue
		}
		out = append(out, insight.ScenarioOutline{
			Condition:   fmt.Sprintf("the opponent does not remedy the %s position", strings.ToLower(strings.ReplaceAll(string(p.Type), "_", " "))),
			Consequence: "an application on that default is likely to succeed with costs",
			Basis:       p.Evidence,
			Severity:    p.Severity,
		})
	}

	for _, c := range compliance {
		out = append(out, insight.ScenarioOutline{
			Condition:   fmt.Sprintf("the %s failure remains unremedied", strings.ToLower(strings.ReplaceAll(string(c.Rule), "_", " "))),
			Consequence: fmt.Sprintf("a %s application becomes available", strings.ReplaceAll(string(c.SuggestedApplication), "_", " ")),
			Basis:       c.Evidence,
			Severity:    c.Severity,
		})
	}

	for _, p := range pressure {
		if p.Issue != insight.PressureIdealWindow {
			continue
		}
		out = append(out, insight.ScenarioOutline{
			Condition:   "escalation is sent within the current window",
			Consequence: "the delay record is at its most persuasive and a response deadline will bite",
			Basis:       p.Evidence,
			Severity:    p.Severity,
		})
	}
	return out
}

// MapJudicialExpectations returns what a court will expect to see at each
// stage of this case and whether the file currently meets it.
func MapJudicialExpectations(in *detect.Input) []insight.JudicialExpectation {
	if in.File == nil {
		return nil
	}
	var out []insight.JudicialExpectation

	preAction := false
	for i := range in.File.Letters {
		if in.File.Letters[i].IsPreAction() {
			preAction = true
			break
		}
	}
	out = append(out, insight.JudicialExpectation{
		Stage:       insight.StagePreAction,
		Expectation: "Protocol correspondence exchanged before issue",
		Met:         preAction,
		Severity:    severityForMet(preAction, common.SeverityHigh),
		Evidence:    letterEvidence(in, preAction),
	})

	if in.File.Case.Issued() {
		lower := strings.ToLower(in.File.AllText())

		hasParticulars := strings.Contains(lower, "particulars of claim")
		out = append(out, insight.JudicialExpectation{
			Stage:       insight.StageIssue,
			Expectation: "Particularised statements of case on file",
			Met:         hasParticulars,
			Severity:    severityForMet(hasParticulars, common.SeverityCritical),
			Evidence:    []string{fmt.Sprintf("issued %d days ago", in.File.Case.DaysSinceIssue(in.Now))},
		})

		hasDisclosure := strings.Contains(lower, "disclosure") || strings.Contains(lower, "list of documents")
		out = append(out, insight.JudicialExpectation{
			Stage:       insight.StageDisclosure,
			Expectation: "Disclosure exchanged within the directions timetable",
			Met:         hasDisclosure,
			Severity:    severityForMet(hasDisclosure, common.SeverityHigh),
		})
	}

	hasChronology := len(in.File.Timeline) > 0
	out = append(out, insight.JudicialExpectation{
		Stage:       insight.StageEvidence,
		Expectation: "A coherent chronology supported by contemporaneous records",
		Met:         hasChronology,
		Severity:    severityForMet(hasChronology, common.SeverityMedium),
	})

	out = append(out, insight.JudicialExpectation{
		Stage:       insight.StageTrial,
		Expectation: "Witness and expert evidence served in compliance with directions",
		Met:         len(in.File.Documents) > 0,
		Severity:    severityForMet(len(in.File.Documents) > 0, common.SeverityMedium),
	})
	return out
}

func severityForMet(met bool, whenUnmet common.Severity) common.Severity {
	if met {
		return common.SeverityLow
	}
	return whenUnmet
}

func letterEvidence(in *detect.Input, preAction bool) []string {
	if preAction {
		return []string{"pre-action protocol letter on file"}
	}
	return []string{fmt.Sprintf("%d letters on file, none pre-action", len(in.File.Letters))}
}
