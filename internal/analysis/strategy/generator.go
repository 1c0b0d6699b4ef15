// Package strategy ranks viable litigation routes from the detector
// outputs.  The generator is role-aware: claimants in clinical negligence
// get merits-led routes, everyone else gets procedurally-led ones.
package strategy

import (
	"fmt"
	"strings"

	"github.com/casefort/LitIntel/internal/analysis/detect"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// Generator produces ranked StrategyPath records.
type Generator struct {
	meritsStrong int
}

// NewGenerator builds a Generator.  meritsStrong is the substantive-merits
// total above which litigating to a liability judgment becomes a credible
// route.
func NewGenerator(meritsStrong int) *Generator {
	return &Generator{meritsStrong: meritsStrong}
}

// Generate returns the ranked routes.  The result is never empty: with no
// qualifying signals it contains exactly one standard-pathway route, and
// with two or more qualifying routes a synthesized hybrid is appended.
func (g *Generator) Generate(
	in *detect.Input,
	vulns []insight.Vulnerability,
	pressure []insight.TimePressurePoint,
) []insight.StrategyPath {
	var routes []insight.StrategyPath
	if in.ClaimantClinNeg() && in.Merits != nil {
		routes = g.claimantClinNegRoutes(in)
	} else {
		routes = g.proceduralRoutes(in, vulns, pressure)
	}

	if len(routes) >= 2 {
		routes = append(routes, hybridRoute(routes))
	}
	if len(routes) == 0 {
		routes = append(routes, standardPathway())
	}
	return routes
}

func (g *Generator) claimantClinNegRoutes(in *detect.Input) []insight.StrategyPath {
	m := in.Merits
	var routes []insight.StrategyPath

	if m.GuidelineBreach.Detected || m.ExpertConfirmation.Detected {
		routes = append(routes, insight.StrategyPath{
			Route:    "A",
			Title:    "Liability-admission pressure",
			Approach: "Put the breach and supportive expert position to the defendant and demand an admission of liability before proceedings",
			Pros: []string{
				"Avoids issue costs if the admission comes",
				"An admission narrows the case to quantum",
			},
			Cons:               []string{"Shows part of the expert hand early"},
			Timeframe:          "4-8 weeks",
			CostEstimate:       "low: correspondence and a conference with the expert",
			SuccessProbability: probabilityFromScore(m.TotalScore, g.meritsStrong),
			TargetAudience:     "defendant's solicitors and their insurer",
		})
	}

	if !in.File.Case.Issued() {
		routes = append(routes, insight.StrategyPath{
			Route:    "B",
			Title:    "Pre-action protocol pressure",
			Approach: "Serve a fully particularised letter of claim and hold the defendant to every protocol step and deadline",
			Pros: []string{
				"Builds a conduct record for later costs arguments",
				"Forces early disclosure of their records",
			},
			Cons:               []string{"Slower than issuing where limitation is tight"},
			Timeframe:          "3-6 months",
			CostEstimate:       "low-to-moderate protocol costs",
			SuccessProbability: insight.ProbabilityMedium,
			TargetAudience:     "defendant's claims handlers",
		})
	}

	if m.TotalScore >= g.meritsStrong {
		routes = append(routes, insight.StrategyPath{
			Route:    "C",
			Title:    "Litigate to liability judgment",
			Approach: "Issue and push to a liability-only trial on the strength of the breach and causation evidence",
			Pros: []string{
				"Strong merits convert best at trial",
				"Judgment on liability transforms settlement dynamics",
			},
			Cons:               []string{"Highest cost and longest timeframe", "Trial risk is never zero"},
			Timeframe:          "12-18 months",
			CostEstimate:       "substantial: issue, directions, experts, trial",
			SuccessProbability: insight.ProbabilityHigh,
			TargetAudience:     "the court; the defendant's litigation team",
		})
	}

	if m.SeriousHarm.Detected && (m.GuidelineBreach.Detected || m.DelayCausation.Detected) {
		routes = append(routes, insight.StrategyPath{
			Route:    "D",
			Title:    "Settlement leverage via breach",
			Approach: "Combine the breach findings with the injury severity into an early, well-evidenced settlement proposal",
			Pros: []string{
				"Monetises the merits without trial risk",
				"Severity of harm drives the settlement bracket up",
			},
			Cons:               []string{"Early settlement may undervalue long-term losses"},
			Timeframe:          "2-4 months",
			CostEstimate:       "low: negotiation on existing evidence",
			SuccessProbability: insight.ProbabilityMedium,
			TargetAudience:     "the defendant's insurer",
		})
	}
	return routes
}

func (g *Generator) proceduralRoutes(
	in *detect.Input,
	vulns []insight.Vulnerability,
	pressure []insight.TimePressurePoint,
) []insight.StrategyPath {
	var routes []insight.StrategyPath

	if v := worstVulnerability(vulns); v != nil {
		routes = append(routes, insight.StrategyPath{
			Route:    "A",
			Title:    "Procedural pressure",
			Approach: fmt.Sprintf("Lead with the opponent's %s failure and force them to remedy it under threat of an application", strings.ReplaceAll(string(v.Type), "_", " ")),
			Pros: []string{
				"Cheap to run from existing findings",
				"Costs consequences accrue even if they comply",
			},
			Cons:               []string{"Procedural wins rarely end the case alone"},
			Timeframe:          "4-8 weeks",
			CostEstimate:       "low: correspondence and possibly one application",
			SuccessProbability: probabilityFromSeverity(v.Severity),
			TargetAudience:     "opposing solicitors",
		})
	}

	if hasEvidentialWeakness(vulns) {
		routes = append(routes, insight.StrategyPath{
			Route:    "B",
			Title:    "Undermine their evidence",
			Approach: "Target the contradictions and record gaps in the opposing account through focused requests and cross-referencing",
			Pros: []string{
				"Each exposed inconsistency compounds",
				"Weak records collapse fastest under specific requests",
			},
			Cons:               []string{"Requires disciplined document work"},
			Timeframe:          "2-3 months",
			CostEstimate:       "moderate: document review and requests",
			SuccessProbability: insight.ProbabilityMedium,
			TargetAudience:     "opposing solicitors; the court at any contested hearing",
		})
	}

	if hasDelayPressure(pressure) {
		routes = append(routes, insight.StrategyPath{
			Route:    "C",
			Title:    "Settlement pressure via delay",
			Approach: "Use the opponent's accumulating delay record to push a settlement proposal they cannot cheaply refuse",
			Pros: []string{
				"Their delay is already on the record",
				"Settlement avoids further drift",
			},
			Cons:               []string{"Reads as weakness if mistimed"},
			Timeframe:          "4-6 weeks",
			CostEstimate:       "low: a single well-framed proposal",
			SuccessProbability: insight.ProbabilityMedium,
			TargetAudience:     "the opposing decision-maker",
		})
	}
	return routes
}

// hybridRoute synthesizes one combined route from the individual ones.
func hybridRoute(routes []insight.StrategyPath) insight.StrategyPath {
	titles := make([]string, 0, len(routes))
	for _, r := range routes {
		titles = append(titles, r.Title)
	}
	best := insight.ProbabilityLow
	for _, r := range routes {
		if probabilityRank(r.SuccessProbability) > probabilityRank(best) {
			best = r.SuccessProbability
		}
	}
	return insight.StrategyPath{
		Route:    "H",
		Title:    "Combined approach",
		Approach: fmt.Sprintf("Run %s in parallel, sequencing the cheaper steps first and holding the rest in reserve", strings.Join(titles, " and ")),
		Pros: []string{
			"Pressure from several directions at once",
			"Each route's record strengthens the others",
		},
		Cons:               []string{"Needs closer case management than a single track"},
		Timeframe:          "tracks the longest component route",
		CostEstimate:       "sum of the component routes, with shared preparation",
		SuccessProbability: best,
		TargetAudience:     "opposing solicitors and their principal",
		Hybrid:             true,
	}
}

// standardPathway is the guaranteed fallback when nothing qualifies.
func standardPathway() insight.StrategyPath {
	return insight.StrategyPath{
		Route:    "S",
		Title:    "Standard pathway",
		Approach: "Progress the matter through the ordinary protocol and directions steps while the evidence picture develops",
		Pros:     []string{"Keeps the case compliant and moving"},
		Cons:     []string{"No tactical edge until stronger signals emerge"},
		Timeframe:          "per the protocol and court timetable",
		CostEstimate:       "ordinary running costs",
		SuccessProbability: insight.ProbabilityMedium,
		TargetAudience:     "instructing client",
	}
}

func worstVulnerability(vulns []insight.Vulnerability) *insight.Vulnerability {
	var worst *insight.Vulnerability
	for i := range vulns {
		if worst == nil || vulns[i].Severity.Rank() > worst.Severity.Rank() {
			worst = &vulns[i]
		}
	}
	return worst
}

func hasEvidentialWeakness(vulns []insight.Vulnerability) bool {
	for _, v := range vulns {
		if v.Source == insight.SourceWeakSpot {
			return true
		}
	}
	return false
}

func hasDelayPressure(pressure []insight.TimePressurePoint) bool {
	for _, p := range pressure {
		switch p.Issue {
		case insight.PressureOpponentSilence, insight.PressureIdealWindow, insight.PressureElapsedDelay:
			return true
		}
	}
	return false
}

func probabilityFromScore(total, strong int) insight.ProbabilityBand {
	if total >= strong {
		return insight.ProbabilityHigh
	}
	return insight.ProbabilityMedium
}

func probabilityFromSeverity(sev common.Severity) insight.ProbabilityBand {
	if sev.Rank() >= common.SeverityHigh.Rank() {
		return insight.ProbabilityHigh
	}
	return insight.ProbabilityMedium
}

func probabilityRank(p insight.ProbabilityBand) int {
	switch p {
	case insight.ProbabilityHigh:
		return 3
	case insight.ProbabilityMedium:
		return 2
	case insight.ProbabilityLow:
		return 1
	}
	return 0
}
