// Package role infers which side of the dispute the instructing client is
// on.  The classifier is a leaf: it reads case text and the role lexicons
// and depends on no other analysis component.
package role

import (
	"context"
	"strings"

	"github.com/casefort/LitIntel/internal/analysis/rules"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// structuredWeight is the multiplier applied to lexicon hits found in
// extracted structured facts, which are more reliable than raw document
// names and timeline prose.
const structuredWeight = 2

// Classifier resolves the case role from lexicon hits over the case text.
type Classifier struct {
	rules  *rules.Provider
	repo   litigation.Repository
	margin int
	logger logging.Logger
}

// NewClassifier builds a Classifier.  margin is how far the defendant score
// must exceed the claimant score before the claimant default is abandoned.
func NewClassifier(provider *rules.Provider, repo litigation.Repository, margin int, logger logging.Logger) *Classifier {
	return &Classifier{
		rules:  provider,
		repo:   repo,
		margin: margin,
		logger: logger.Named("role"),
	}
}

// Classify loads the case file and resolves the role.  Any data-access
// failure degrades to the claimant default with Basis set to defaulted, so
// downstream consumers can tell a confident classification from an assumed
// one.
func (c *Classifier) Classify(ctx context.Context, caseID common.ID) insight.RoleResult {
	file, err := c.repo.GetCaseFile(ctx, caseID)
	if err != nil {
		c.logger.Warn("case data unavailable for role classification, defaulting to claimant",
			logging.String("case_id", string(caseID)),
			logging.Err(err))
		return insight.RoleResult{Role: litigation.RoleClaimant, Basis: insight.RoleBasisDefaulted}
	}
	return c.ClassifyFile(file)
}

// ClassifyFile scores the already-loaded case file.  An explicit role on
// the case record takes precedence over lexicon scoring.
func (c *Classifier) ClassifyFile(file *litigation.CaseFile) insight.RoleResult {
	if file == nil {
		return insight.RoleResult{Role: litigation.RoleClaimant, Basis: insight.RoleBasisDefaulted}
	}
	if r := file.Case.Role; r != nil && r.Valid() {
		return insight.RoleResult{Role: *r, Basis: insight.RoleBasisExplicit}
	}

	tbl := c.rules.Current()
	structured := strings.ToLower(file.StructuredText())
	unstructured := strings.ToLower(file.UnstructuredText())

	claimant := scoreLexicon(structured, tbl.Role.Claimant)*structuredWeight +
		scoreLexicon(unstructured, tbl.Role.Claimant)
	defendant := scoreLexicon(structured, tbl.Role.Defendant)*structuredWeight +
		scoreLexicon(unstructured, tbl.Role.Defendant)

	if claimant == 0 && defendant == 0 {
		return insight.RoleResult{Role: litigation.RoleClaimant, Basis: insight.RoleBasisDefaulted}
	}

	role := litigation.RoleClaimant
	if defendant > claimant+c.margin {
		role = litigation.RoleDefendant
	}
	return insight.RoleResult{
		Role:           role,
		Basis:          insight.RoleBasisScored,
		ClaimantScore:  claimant,
		DefendantScore: defendant,
	}
}

// scoreLexicon sums pattern weight times occurrence count over lowered text.
func scoreLexicon(lowerText string, patterns []rules.Pattern) int {
	if lowerText == "" {
		return 0
	}
	total := 0
	for _, p := range patterns {
		if n := strings.Count(lowerText, p.Match); n > 0 {
			total += n * p.Weight
		}
	}
	return total
}
