// Package engine orchestrates a full case analysis: it resolves every
// external collaborator behind a fail-soft boundary, fans the five signal
// detectors out over the resulting snapshot, joins their outputs into the
// aggregate views, and persists the analysis snapshot for delta tracking.
//
// The engine never fails an analysis because a collaborator failed.  The
// only hard error is the case file itself being unavailable; everything
// else degrades to a safe default, is logged at Warn, and is named in
// Analysis.DegradedSignals.
package engine

import (
	"context"
	"sync"
	"time"

	analysisdelta "github.com/casefort/LitIntel/internal/analysis/delta"
	"github.com/casefort/LitIntel/internal/analysis/dedupe"
	"github.com/casefort/LitIntel/internal/analysis/detect"
	"github.com/casefort/LitIntel/internal/analysis/merits"
	"github.com/casefort/LitIntel/internal/analysis/meta"
	"github.com/casefort/LitIntel/internal/analysis/momentum"
	"github.com/casefort/LitIntel/internal/analysis/role"
	"github.com/casefort/LitIntel/internal/analysis/rules"
	"github.com/casefort/LitIntel/internal/analysis/sanitize"
	"github.com/casefort/LitIntel/internal/analysis/scenario"
	"github.com/casefort/LitIntel/internal/analysis/strategy"
	"github.com/casefort/LitIntel/internal/analysis/vulnerability"
	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/domain/evidence"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// Publisher delivers the completed analysis to the event bus.  Publish
// failures are absorbed by a fail-soft boundary like any collaborator.
type Publisher interface {
	AnalysisCompleted(ctx context.Context, analysis *insight.Analysis) error
}

// Dependencies carries everything an Engine needs.  Repository is the only
// mandatory collaborator; every other field has a working default or is
// optional.
type Dependencies struct {
	Repository     litigation.Repository
	Activity       litigation.OpponentActivityProvider // nil: no activity signal
	Contradictions litigation.ContradictionFinder      // nil: no contradiction signal
	Checklist      evidence.ChecklistProvider          // nil: compiled-in checklists
	Snapshots      insight.SnapshotRepository          // nil: no persistence, no delta
	Publisher      Publisher                           // nil: no events
	Rules          *rules.Provider                     // nil: compiled-in rule table
	Config         config.AnalysisConfig               // zero: config.DefaultAnalysis()
	Logger         logging.Logger                      // nil: nop
	Metrics        *prometheus.EngineMetrics           // nil: no metrics
}

// Result bundles one analysis run: the full analysis, the snapshot taken
// from it, and the delta against the previous snapshot.  Delta is nil when
// no snapshot repository is configured or its history was unreadable.
type Result struct {
	Analysis *insight.Analysis
	Snapshot *insight.AnalysisSnapshot
	Delta    *insight.AnalysisDelta
}

// Engine runs the analysis pipeline.  Safe for concurrent use.
type Engine struct {
	repo       litigation.Repository
	activity   litigation.OpponentActivityProvider
	contradict litigation.ContradictionFinder
	checklist  evidence.ChecklistProvider
	snapshots  insight.SnapshotRepository
	publisher  Publisher
	rules      *rules.Provider
	cfg        config.AnalysisConfig

	classifier *role.Classifier
	scorer     *merits.Scorer
	leverage   *detect.LeverageDetector
	weakSpots  *detect.WeakSpotDetector
	compliance *detect.ComplianceChecker
	pressure   *detect.TimePressureAnalyzer
	behavior   *detect.BehaviorPredictor
	strategies *strategy.Generator
	momentum   *momentum.Aggregator

	logger  logging.Logger
	metrics *prometheus.EngineMetrics

	// now is swappable for deterministic tests.
	now func() time.Time
}

// New constructs an Engine, applying defaults for unset dependencies.
func New(deps Dependencies) (*Engine, error) {
	if deps.Repository == nil {
		return nil, apperrors.InvalidParam("engine requires a case repository")
	}
	if deps.Checklist == nil {
		deps.Checklist = evidence.DefaultProvider{}
	}
	if deps.Rules == nil {
		deps.Rules = rules.NewProvider(nil)
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewNopLogger()
	}
	if (deps.Config == config.AnalysisConfig{}) {
		deps.Config = config.DefaultAnalysis()
	}
	if err := deps.Config.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "engine analysis config is invalid")
	}

	logger := deps.Logger.Named("engine")
	return &Engine{
		repo:       deps.Repository,
		activity:   deps.Activity,
		contradict: deps.Contradictions,
		checklist:  deps.Checklist,
		snapshots:  deps.Snapshots,
		publisher:  deps.Publisher,
		rules:      deps.Rules,
		cfg:        deps.Config,

		classifier: role.NewClassifier(deps.Rules, deps.Repository, deps.Config.DefendantMargin, logger),
		scorer:     merits.NewScorer(deps.Rules, deps.Config.MeritsContextRadius),
		leverage:   detect.NewLeverageDetector(deps.Config),
		weakSpots:  detect.NewWeakSpotDetector(deps.Config),
		compliance: detect.NewComplianceChecker(deps.Config),
		pressure:   detect.NewTimePressureAnalyzer(deps.Config),
		behavior:   detect.NewBehaviorPredictor(),
		strategies: strategy.NewGenerator(deps.Config.MeritsStrongThreshold),
		momentum:   momentum.NewAggregator(deps.Config),

		logger:  logger,
		metrics: deps.Metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Analyze runs the full pipeline for one case.  The returned error is
// non-nil only when the case file itself cannot be loaded.
func (e *Engine) Analyze(ctx context.Context, caseID common.ID) (*Result, error) {
	start := time.Now()

	file, err := e.repo.GetCaseFile(ctx, caseID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCaseDataAccess, "failed to load case file").
			WithDetail(string(caseID))
	}

	in, degraded := e.resolveInput(ctx, file)
	analysis := e.run(in)
	analysis.DegradedSignals = dedupe.Strings(degraded)

	meta.Annotate(analysis)
	sanitize.Analysis(analysis.Role.Role, e.rules.Current(), analysis)

	result := &Result{Analysis: analysis, Snapshot: snapshotOf(analysis)}
	e.trackHistory(ctx, result, &analysis.DegradedSignals)
	e.publish(ctx, analysis, &analysis.DegradedSignals)

	e.metrics.ObserveAnalysis(string(analysis.PracticeArea), string(analysis.Momentum.State), time.Since(start))
	e.logger.Info("analysis complete",
		logging.String("case_id", string(caseID)),
		logging.String("practice_area", string(analysis.PracticeArea)),
		logging.String("momentum", string(analysis.Momentum.State)),
		logging.Int("momentum_score", analysis.Momentum.Score),
		logging.Int("degraded_signals", len(analysis.DegradedSignals)),
		logging.Duration("elapsed", time.Since(start)))
	return result, nil
}

// Momentum runs the pipeline and returns only the momentum view.
func (e *Engine) Momentum(ctx context.Context, caseID common.ID) (insight.CaseMomentum, error) {
	result, err := e.Analyze(ctx, caseID)
	if err != nil {
		return insight.CaseMomentum{}, err
	}
	return result.Analysis.Momentum, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Input resolution — every collaborator call sits behind a fail-soft boundary
// ─────────────────────────────────────────────────────────────────────────────

// resolveInput gathers every external signal concurrently.  Role and merits
// are pure over the case file; activity, contradictions, and the checklist
// reach out and may degrade.
func (e *Engine) resolveInput(ctx context.Context, file *litigation.CaseFile) (*detect.Input, []string) {
	in := &detect.Input{File: file, Now: e.now()}

	var (
		mu       sync.Mutex
		degraded []string
		wg       sync.WaitGroup
	)
	degrade := func(signal string, err error) {
		e.logger.Warn("collaborator degraded to default signal",
			logging.String("signal", signal),
			logging.String("case_id", string(file.Case.ID)),
			logging.Err(err))
		e.metrics.RecordDegradedSignal(signal)
		mu.Lock()
		degraded = append(degraded, signal)
		mu.Unlock()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		in.Role = e.classifier.ClassifyFile(file)
	}()
	go func() {
		defer wg.Done()
		in.Merits = e.scorer.Score(file)
	}()

	if e.activity != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			activity, err := e.activity.OpponentActivity(ctx, file.Case.ID)
			if err != nil {
				degrade("opponent_activity", err)
				return
			}
			in.Activity = activity
		}()
	}
	if e.contradict != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := e.contradict.FindContradictions(ctx, file.Case.ID)
			if err != nil {
				degrade("contradictions", err)
				return
			}
			in.Contradictions = items
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		requirements, err := e.checklist.Checklist(ctx, file.Case.PracticeArea)
		if err != nil {
			degrade("evidence_checklist", err)
			return
		}
		in.Missing = dedupe.MissingEvidence(evidence.FindMissing(file, dedupe.ChecklistItems(requirements)))
	}()

	wg.Wait()
	return in, degraded
}

// ─────────────────────────────────────────────────────────────────────────────
// Detection and joins
// ─────────────────────────────────────────────────────────────────────────────

// run fans the detectors out over the input and joins their outputs.
// Detectors are pure, so the fan-out needs no synchronization beyond the
// wait.
func (e *Engine) run(in *detect.Input) *insight.Analysis {
	a := &insight.Analysis{
		CaseID:          in.File.Case.ID,
		PracticeArea:    in.File.Case.PracticeArea,
		Role:            in.Role,
		Merits:          in.Merits,
		MissingEvidence: in.Missing,
		GeneratedAt:     in.Now,
	}

	var wg sync.WaitGroup
	detector := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			fn()
			e.metrics.ObserveDetector(name, time.Since(start))
		}()
	}
	detector("leverage", func() { a.LeveragePoints = e.leverage.Detect(in) })
	detector("weak_spots", func() { a.WeakSpots = e.weakSpots.Detect(in) })
	detector("compliance", func() { a.ComplianceIssues = e.compliance.Check(in) })
	detector("time_pressure", func() { a.TimePressure = e.pressure.Analyze(in) })
	detector("behavior", func() { a.Behavior = e.behavior.Predict(in) })
	wg.Wait()

	a.Vulnerabilities = vulnerability.Aggregate(a.LeveragePoints, a.ComplianceIssues, a.WeakSpots)
	a.Strategies = e.strategies.Generate(in, a.Vulnerabilities, a.TimePressure)
	a.Scenarios = scenario.Outline(in, a.LeveragePoints, a.ComplianceIssues, a.TimePressure)
	a.Judicial = scenario.MapJudicialExpectations(in)
	a.Momentum = e.momentum.Aggregate(in, a.LeveragePoints)
	return a
}

// ─────────────────────────────────────────────────────────────────────────────
// Snapshot history, delta, events
// ─────────────────────────────────────────────────────────────────────────────

func (e *Engine) trackHistory(ctx context.Context, result *Result, degraded *[]string) {
	if e.snapshots == nil {
		return
	}
	caseID := result.Analysis.CaseID

	previous, err := e.snapshots.Latest(ctx, caseID)
	switch {
	case err == nil || apperrors.IsNotFound(err):
		if apperrors.IsNotFound(err) {
			previous = nil
		}
		result.Delta = analysisdelta.Compute(previous, result.Snapshot)
		e.metrics.RecordDelta(result.Delta.FirstAnalysis)
	default:
		// Unknown history: a delta would be misleading, so none is produced.
		e.warnDegraded("snapshot_history", caseID, err, degraded)
	}

	saveErr := e.snapshots.Save(ctx, result.Snapshot)
	e.metrics.RecordSnapshotWrite(saveErr)
	if saveErr != nil {
		e.warnDegraded("snapshot_write", caseID, saveErr, degraded)
	}
}

func (e *Engine) publish(ctx context.Context, analysis *insight.Analysis, degraded *[]string) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.AnalysisCompleted(ctx, analysis); err != nil {
		e.warnDegraded("event_publish", analysis.CaseID, err, degraded)
	}
}

func (e *Engine) warnDegraded(signal string, caseID common.ID, err error, degraded *[]string) {
	e.logger.Warn("collaborator degraded to default signal",
		logging.String("signal", signal),
		logging.String("case_id", string(caseID)),
		logging.Err(err))
	e.metrics.RecordDegradedSignal(signal)
	*degraded = append(*degraded, signal)
}

// snapshotOf reduces a full analysis to the compact form used for delta
// comparison between runs.
func snapshotOf(a *insight.Analysis) *insight.AnalysisSnapshot {
	var issues []insight.KeyIssue
	for _, p := range a.LeveragePoints {
		issues = append(issues, insight.KeyIssue{
			Type: "leverage", Label: string(p.Type), Severity: p.Severity,
		})
	}
	for _, c := range a.ComplianceIssues {
		issues = append(issues, insight.KeyIssue{
			Type: "compliance", Label: string(c.Rule), Severity: c.Severity,
		})
	}
	for _, w := range a.WeakSpots {
		issues = append(issues, insight.KeyIssue{
			Type: "weak_spot", Label: string(w.Type), Severity: w.Severity,
		})
	}

	missing := make([]insight.MissingEvidenceRef, 0, len(a.MissingEvidence))
	for _, m := range a.MissingEvidence {
		missing = append(missing, insight.MissingEvidenceRef{
			Category: string(m.Requirement.Category),
			Label:    m.Label(),
		})
	}

	return &insight.AnalysisSnapshot{
		ID:              common.NewID(),
		CaseID:          a.CaseID,
		MomentumState:   a.Momentum.State,
		MomentumScore:   a.Momentum.Score,
		KeyIssues:       dedupe.KeyIssues(issues),
		MissingEvidence: dedupe.MissingRefs(missing),
		TakenAt:         a.GeneratedAt,
	}
}
