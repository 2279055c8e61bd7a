// Package pipeline is the stage state machine: it advances a project through
// the analysis stages in order, gates every generation behind the credit
// ledger, and persists stage output with version-conditioned writes. Stage
// position is derived from slot emptiness, never stored.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venturly/venturly/internal/completion"
	"github.com/venturly/venturly/internal/domain/competitor"
	"github.com/venturly/venturly/internal/domain/credit"
	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/domain/market"
	"github.com/venturly/venturly/internal/domain/plan"
	"github.com/venturly/venturly/internal/domain/project"
	"github.com/venturly/venturly/internal/domain/stage"
	"github.com/venturly/venturly/internal/repository"
)

// Service orchestrates the analysis pipeline.
type Service struct {
	projects    ProjectRepository
	competitors CompetitorRepository
	gaps        GapRepository
	features    FeatureRepository
	steps       StepRepository
	charges     ChargeRepository
	ledger      CreditLedger
	generator   completion.Generator
	logger      *slog.Logger
}

// NewService creates a pipeline orchestrator.
func NewService(
	projects ProjectRepository,
	competitors CompetitorRepository,
	gaps GapRepository,
	features FeatureRepository,
	steps StepRepository,
	charges ChargeRepository,
	ledger CreditLedger,
	generator completion.Generator,
	logger *slog.Logger,
) *Service {
	return &Service{
		projects:    projects,
		competitors: competitors,
		gaps:        gaps,
		features:    features,
		steps:       steps,
		charges:     charges,
		ledger:      ledger,
		generator:   generator,
		logger:      logger,
	}
}

// SubmitStage runs the next pending stage. The stage must be exactly the
// first incomplete one; AI stages consume a credit before the completion
// call is made.
func (s *Service) SubmitStage(ctx context.Context, ownerID string, req SubmitRequest) (*ProjectState, error) {
	def, err := stage.Get(req.Stage)
	if err != nil {
		return nil, ErrInvalidInput
	}

	snap, err := s.snapshot(ctx, ownerID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	// Missing upstream data outranks call order: submitting marketGaps
	// while competitors is still empty reports the absent slot, not the
	// ordering. The preconditions of the truly next stage always hold, so
	// this changes nothing for in-order submissions.
	if def.ID != stage.Idea {
		if _, err := def.BuildContext(snap); err != nil {
			return nil, err
		}
	}

	if stage.Next(snap) != def.ID {
		return nil, ErrOutOfOrder
	}

	if err := s.runStage(ctx, ownerID, snap, def, req); err != nil {
		return nil, err
	}

	return s.State(ctx, ownerID, req.ProjectID)
}

// RerunStage re-invokes a stage that is already complete, replacing its
// output wholesale. Rerunning marketGaps resets the selected-gap pointer;
// downstream stage content is never regenerated automatically.
func (s *Service) RerunStage(ctx context.Context, ownerID string, req SubmitRequest) (*ProjectState, error) {
	def, err := stage.Get(req.Stage)
	if err != nil {
		return nil, ErrInvalidInput
	}

	snap, err := s.snapshot(ctx, ownerID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if !def.IsComplete(snap) {
		return nil, ErrOutOfOrder
	}

	if err := s.runStage(ctx, ownerID, snap, def, req); err != nil {
		return nil, err
	}

	return s.State(ctx, ownerID, req.ProjectID)
}

// SelectGap sets the selected-gap pointer used by downstream generation. It
// is a manual operation: no credit, no state re-derivation.
func (s *Service) SelectGap(ctx context.Context, ownerID, projectID string, index int) (*ProjectState, error) {
	snap, err := s.snapshot(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(snap.Gaps) {
		return nil, ErrGapIndexOutOfRange
	}

	if err := s.projects.SetSelectedGap(ctx, ownerID, projectID, &index, snap.Project.Version); err != nil {
		return nil, mapWriteErr(err)
	}

	return s.State(ctx, ownerID, projectID)
}

// State returns the derived pipeline view: stage flags, credit summary, all
// slot contents, and orphaned-charge reports.
func (s *Service) State(ctx context.Context, ownerID, projectID string) (*ProjectState, error) {
	snap, err := s.snapshot(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	summary, err := s.ledger.Summary(ctx, ownerID, projectID)
	if err != nil {
		return nil, fmt.Errorf("reading credit summary: %w", err)
	}

	orphaned, err := s.reconcile(ctx, ownerID, snap)
	if err != nil {
		return nil, err
	}

	statuses := make([]StageStatus, 0, len(stage.All()))
	for _, d := range stage.All() {
		statuses = append(statuses, StageStatus{
			ID:       d.ID,
			Complete: d.IsComplete(snap),
			Charged:  d.Charged,
		})
	}

	return &ProjectState{
		Project:      snap.Project,
		DerivedStage: stage.Derive(snap),
		NextStage:    stage.Next(snap),
		Stages:       statuses,
		Credits:      summary,
		Competitors:  snap.Competitors,
		Gaps:         snap.Gaps,
		Features:     snap.Features,
		Steps:        snap.Steps,
		Orphaned:     orphaned,
	}, nil
}

// runStage performs the charge-generate-persist sequence shared by submit
// and rerun.
func (s *Service) runStage(ctx context.Context, ownerID string, snap stage.Snapshot, def stage.Definition, req SubmitRequest) error {
	if def.ID == stage.Idea {
		idea := strings.TrimSpace(req.Idea)
		if idea == "" {
			return ErrInvalidInput
		}
		if err := s.projects.SetIdea(ctx, ownerID, snap.Project.ID, idea, snap.Project.Version); err != nil {
			return mapWriteErr(err)
		}
		return nil
	}

	pc, err := def.BuildContext(snap)
	if err != nil {
		return err
	}
	pc.Guidance = strings.TrimSpace(req.Guidance)

	// A pending charge means a prior attempt consumed a credit but never
	// recorded an outcome (crash between consume and persist). Reuse it
	// instead of billing again.
	charge, err := s.charges.FindPendingCharge(ctx, ownerID, snap.Project.ID, string(def.ID))
	if errors.Is(err, repository.ErrNotFound) {
		charge, err = s.ledger.TryConsume(ctx, ownerID, snap.Project.ID, string(def.ID))
	}
	if err != nil {
		return err
	}

	out, err := s.generator.Generate(ctx, string(def.ID), pc)
	if err != nil {
		// The external call was made: the credit is spent and a retry is
		// billed again.
		if settleErr := s.charges.SettleCharge(ctx, charge.ID, credit.OutcomeFailed); settleErr != nil && s.logger != nil {
			s.logger.Warn("settling failed charge", "charge_id", charge.ID, "error", settleErr)
		}
		return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	if err := s.persistOutput(ctx, ownerID, snap, def.ID, out); err != nil {
		// Generation succeeded but the write lost a version race. The
		// charge stays pending so the next attempt is not billed again.
		return err
	}

	if err := s.charges.SettleCharge(ctx, charge.ID, credit.OutcomeFulfilled); err != nil && s.logger != nil {
		s.logger.Warn("settling fulfilled charge", "charge_id", charge.ID, "error", err)
	}

	if s.logger != nil {
		s.logger.Info("stage completed",
			"project_id", snap.Project.ID, "stage", def.ID, "charged", def.Charged)
	}
	return nil
}

// persistOutput writes the generated output into the stage's slot, replacing
// any existing content wholesale.
func (s *Service) persistOutput(ctx context.Context, ownerID string, snap stage.Snapshot, id stage.ID, out *completion.StageOutput) error {
	now := time.Now()
	projectID := snap.Project.ID
	version := snap.Project.Version

	switch id {
	case stage.Competitors:
		items := make([]competitor.Competitor, 0, len(out.Competitors))
		for i, c := range out.Competitors {
			items = append(items, competitor.Competitor{
				ID:          uuid.NewString(),
				ProjectID:   projectID,
				Name:        c.Name,
				Website:     c.Website,
				Description: c.Description,
				AIGenerated: true,
				Position:    i,
				CreatedAt:   now,
			})
		}
		return mapWriteErr(s.competitors.Replace(ctx, ownerID, projectID, version, items))

	case stage.MarketGaps:
		gaps := make([]market.Gap, 0, len(out.Gaps))
		for i, g := range out.Gaps {
			gaps = append(gaps, market.Gap{
				ProjectID:   projectID,
				Position:    i,
				Gap:         g.Gap,
				Positioning: g.Positioning,
				Score:       g.Score,
				Rationale:   g.Rationale,
			})
		}
		return mapWriteErr(s.gaps.Replace(ctx, ownerID, projectID, version, gaps))

	case stage.Features:
		items := make([]feature.Feature, 0, len(out.Features))
		for _, f := range out.Features {
			items = append(items, feature.Feature{
				ID:          uuid.NewString(),
				ProjectID:   projectID,
				Title:       f.Title,
				Description: f.Description,
				Status:      feature.StatusPlanned,
				Priority:    feature.Priority(f.Priority),
				AIGenerated: true,
				CreatedAt:   now,
				ModifiedAt:  now,
			})
		}
		return mapWriteErr(s.features.Replace(ctx, ownerID, projectID, version, items))

	case stage.ValidationPlan:
		items := make([]plan.Step, 0, len(out.Steps))
		for _, st := range out.Steps {
			items = append(items, plan.Step{
				ID:         uuid.NewString(),
				ProjectID:  projectID,
				Title:      st.Title,
				Goal:       st.Goal,
				Method:     st.Method,
				Priority:   feature.Priority(st.Priority),
				CreatedAt:  now,
				ModifiedAt: now,
			})
		}
		return mapWriteErr(s.steps.Replace(ctx, ownerID, projectID, version, items))
	}

	return ErrInvalidInput
}

// reconcile compares the consume log against stage completion: a pending
// charge whose stage slot is still empty is an orphaned charge.
func (s *Service) reconcile(ctx context.Context, ownerID string, snap stage.Snapshot) ([]OrphanedCharge, error) {
	charges, err := s.charges.ListCharges(ctx, ownerID, snap.Project.ID)
	if err != nil {
		return nil, fmt.Errorf("listing charges: %w", err)
	}

	flags := stage.Flags(snap)
	var orphaned []OrphanedCharge
	for _, ch := range charges {
		if ch.Outcome != credit.OutcomePending {
			continue
		}
		if flags[stage.ID(ch.StageTag)] {
			continue
		}
		orphaned = append(orphaned, OrphanedCharge{
			ChargeID:  ch.ID,
			Stage:     ch.StageTag,
			CreatedAt: ch.CreatedAt,
		})
	}
	return orphaned, nil
}

// snapshot re-reads the project and every stage slot. Operations never act
// on a cached project.
func (s *Service) snapshot(ctx context.Context, ownerID, projectID string) (stage.Snapshot, error) {
	proj, err := s.projects.Get(ctx, ownerID, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return stage.Snapshot{}, project.ErrProjectNotFound
		}
		return stage.Snapshot{}, fmt.Errorf("loading project: %w", err)
	}

	competitors, err := s.competitors.ListByProject(ctx, ownerID, projectID)
	if err != nil {
		return stage.Snapshot{}, fmt.Errorf("loading competitors: %w", err)
	}
	gaps, err := s.gaps.ListByProject(ctx, ownerID, projectID)
	if err != nil {
		return stage.Snapshot{}, fmt.Errorf("loading gaps: %w", err)
	}
	features, err := s.features.ListByProject(ctx, ownerID, projectID)
	if err != nil {
		return stage.Snapshot{}, fmt.Errorf("loading features: %w", err)
	}
	steps, err := s.steps.ListByProject(ctx, ownerID, projectID)
	if err != nil {
		return stage.Snapshot{}, fmt.Errorf("loading steps: %w", err)
	}

	return stage.Snapshot{
		Project:     *proj,
		Competitors: competitors,
		Gaps:        gaps,
		Features:    features,
		Steps:       steps,
	}, nil
}

func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrConflict) {
		return credit.ErrConcurrentConflict
	}
	if errors.Is(err, repository.ErrNotFound) {
		return project.ErrProjectNotFound
	}
	return err
}
