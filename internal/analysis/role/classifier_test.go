package role

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/analysis/rules"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
	"github.com/casefort/LitIntel/internal/testutil"
	"github.com/casefort/LitIntel/pkg/types/common"
)

func newClassifier(repo litigation.Repository) *Classifier {
	return NewClassifier(rules.NewProvider(nil), repo, 2, testutil.NewMockLogger())
}

func TestClassifyFileClaimantLanguage(t *testing.T) {
	file := testutil.NewCaseFile(litigation.PracticeClinicalNegligence,
		"Letter of claim served. Particulars of claim allege breach of duty and seek damages; expert confirms avoidability.")
	res := newClassifier(nil).ClassifyFile(file)

	assert.Equal(t, litigation.RoleClaimant, res.Role)
	assert.Equal(t, insight.RoleBasisScored, res.Basis)
	assert.Positive(t, res.ClaimantScore)
}

func TestClassifyFileDefendantNeedsMargin(t *testing.T) {
	c := newClassifier(nil)

	// Defendant ahead by exactly the margin: claimant default holds.
	narrow := testutil.NewCaseFile(litigation.PracticeHousingDisrepair,
		"The defence denies liability. Strike out application threatened. Letter of claim received.")
	narrowRes := c.ClassifyFile(narrow)
	if narrowRes.DefendantScore-narrowRes.ClaimantScore <= 2 {
		assert.Equal(t, litigation.RoleClaimant, narrowRes.Role)
	}

	// Defendant clearly ahead: classifier flips.
	wide := testutil.NewCaseFile(litigation.PracticeHousingDisrepair,
		strings.Repeat("defence denies liability; contributory negligence; put to strict proof; counterclaim served. ", 2))
	wideRes := c.ClassifyFile(wide)
	require.Greater(t, wideRes.DefendantScore, wideRes.ClaimantScore+2)
	assert.Equal(t, litigation.RoleDefendant, wideRes.Role)
	assert.Equal(t, insight.RoleBasisScored, wideRes.Basis)
}

func TestClassifyFileNoHitsDefaults(t *testing.T) {
	file := testutil.NewCaseFile(litigation.PracticeOtherLitigation, "quarterly invoice schedule")
	res := newClassifier(nil).ClassifyFile(file)
	assert.Equal(t, litigation.RoleClaimant, res.Role)
	assert.Equal(t, insight.RoleBasisDefaulted, res.Basis)
}

func TestClassifyFileExplicitRoleWins(t *testing.T) {
	file := testutil.WithRole(
		testutil.NewCaseFile(litigation.PracticeOtherLitigation, "letter of claim seeking damages"),
		litigation.RoleDefendant)
	res := newClassifier(nil).ClassifyFile(file)
	assert.Equal(t, litigation.RoleDefendant, res.Role)
	assert.Equal(t, insight.RoleBasisExplicit, res.Basis)
}

func TestClassifyFailsSoftOnDataAccess(t *testing.T) {
	repo := &testutil.InMemoryRepository{Err: apperrors.New(apperrors.ErrCodeCaseDataAccess, "store down")}
	logger := testutil.NewMockLogger()
	c := NewClassifier(rules.NewProvider(nil), repo, 2, logger)

	res := c.Classify(context.Background(), common.NewID())
	assert.Equal(t, litigation.RoleClaimant, res.Role)
	assert.Equal(t, insight.RoleBasisDefaulted, res.Basis)
	assert.NotEmpty(t, logger.GetMessages())
}
