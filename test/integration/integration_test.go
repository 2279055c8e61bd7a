package integration_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/venturly/venturly/internal/completion"
	"github.com/venturly/venturly/internal/domain/competitor"
	"github.com/venturly/venturly/internal/domain/credit"
	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/domain/pipeline"
	"github.com/venturly/venturly/internal/domain/plan"
	"github.com/venturly/venturly/internal/domain/project"
	"github.com/venturly/venturly/internal/domain/stage"
	"github.com/venturly/venturly/internal/sqlite"
	"github.com/venturly/venturly/internal/testserver"
)

type testEnv struct {
	db        *sqlite.DB
	ownerRepo *sqlite.OwnerRepository
	ledger    *credit.Ledger
	generator *testserver.ScriptedGenerator

	projectSvc    *project.Service
	pipelineSvc   *pipeline.Service
	competitorSvc *competitor.Service
	featureSvc    *feature.Service
	planSvc       *plan.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	projectRepo := sqlite.NewProjectRepository(db)
	competitorRepo := sqlite.NewCompetitorRepository(db)
	gapRepo := sqlite.NewGapRepository(db)
	featureRepo := sqlite.NewFeatureRepository(db)
	stepRepo := sqlite.NewStepRepository(db)
	chargeRepo := sqlite.NewChargeRepository(db)
	ownerRepo := sqlite.NewOwnerRepository(db)

	generator := &testserver.ScriptedGenerator{}
	ledger := credit.NewLedger(projectRepo, ownerRepo, nil)

	return &testEnv{
		db:        db,
		ownerRepo: ownerRepo,
		ledger:    ledger,
		generator: generator,

		projectSvc:    project.NewService(projectRepo, nil),
		competitorSvc: competitor.NewService(competitorRepo, nil, nil),
		featureSvc:    feature.NewService(featureRepo, nil),
		planSvc:       plan.NewService(stepRepo, nil),
		pipelineSvc: pipeline.NewService(
			projectRepo, competitorRepo, gapRepo, featureRepo, stepRepo, chargeRepo,
			ledger, generator, nil),
	}
}

func (env *testEnv) submit(t *testing.T, ownerID, projectID string, id stage.ID, idea string) *pipeline.ProjectState {
	t.Helper()
	state, err := env.pipelineSvc.SubmitStage(context.Background(), ownerID, pipeline.SubmitRequest{
		ProjectID: projectID, Stage: id, Idea: idea,
	})
	require.NoError(t, err)
	return state
}

func TestIntegration_FullPipeline(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ownerID := "owner1"

	proj, err := env.projectSvc.Create(ctx, ownerID, project.CreateRequest{Title: "Venturly"})
	require.NoError(t, err)

	env.submit(t, ownerID, proj.ID, stage.Idea, "Idea validation for founders")
	env.submit(t, ownerID, proj.ID, stage.Competitors, "")
	state := env.submit(t, ownerID, proj.ID, stage.MarketGaps, "")
	require.Equal(t, stage.MarketGaps, state.DerivedStage)
	require.Len(t, state.Gaps, 2)

	state, err = env.pipelineSvc.SelectGap(ctx, ownerID, proj.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 1, *state.Project.SelectedGapIndex)

	env.submit(t, ownerID, proj.ID, stage.Features, "")
	state = env.submit(t, ownerID, proj.ID, stage.ValidationPlan, "")

	require.Equal(t, stage.ValidationPlan, state.DerivedStage)
	require.Equal(t, stage.ID(""), state.NextStage)
	require.Equal(t, 4, state.Credits.Used)
	require.Equal(t, 0, state.Credits.Remaining)
	require.Empty(t, state.Orphaned)
	require.Equal(t, 4, env.generator.Calls)

	// Each AI stage's write bumped the version: 1 idea write, 4 slot
	// swaps, 1 gap selection.
	require.Equal(t, int64(6), state.Project.Version)
}

func TestIntegration_TierUpgradeTakesEffectImmediately(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ownerID := "owner1"

	proj, err := env.projectSvc.Create(ctx, ownerID, project.CreateRequest{Title: "Venturly"})
	require.NoError(t, err)

	env.submit(t, ownerID, proj.ID, stage.Idea, "An idea")
	for _, id := range []stage.ID{stage.Competitors, stage.MarketGaps, stage.Features, stage.ValidationPlan} {
		env.submit(t, ownerID, proj.ID, id, "")
	}

	_, err = env.pipelineSvc.RerunStage(ctx, ownerID, pipeline.SubmitRequest{
		ProjectID: proj.ID, Stage: stage.Competitors,
	})
	require.ErrorIs(t, err, credit.ErrOutOfCredits)

	// Upgrading the owner's tier unblocks the next consume; spent credits
	// are not recomputed.
	require.NoError(t, env.ownerRepo.SetTier(ctx, ownerID, credit.TierStarter))

	state, err := env.pipelineSvc.RerunStage(ctx, ownerID, pipeline.SubmitRequest{
		ProjectID: proj.ID, Stage: stage.Competitors,
	})
	require.NoError(t, err)
	require.Equal(t, 5, state.Credits.Used)
	require.Equal(t, 5, state.Credits.Remaining)
}

func TestIntegration_OrphanedChargeReuse(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ownerID := "owner1"

	proj, err := env.projectSvc.Create(ctx, ownerID, project.CreateRequest{Title: "Venturly"})
	require.NoError(t, err)
	env.submit(t, ownerID, proj.ID, stage.Idea, "An idea")

	// Consume without persisting any output, as a crash between consume
	// and persist would.
	charge, err := env.ledger.TryConsume(ctx, ownerID, proj.ID, string(stage.Competitors))
	require.NoError(t, err)
	require.Equal(t, credit.OutcomePending, charge.Outcome)

	state, err := env.pipelineSvc.State(ctx, ownerID, proj.ID)
	require.NoError(t, err)
	require.Len(t, state.Orphaned, 1)
	require.Equal(t, charge.ID, state.Orphaned[0].ChargeID)
	require.Equal(t, 1, state.Credits.Used)

	// The next submit reuses the pending charge instead of billing again.
	state = env.submit(t, ownerID, proj.ID, stage.Competitors, "")
	require.Equal(t, 1, state.Credits.Used)
	require.Empty(t, state.Orphaned)
	require.Len(t, state.Competitors, 2)
}

func TestIntegration_ConcurrentCreditConsume(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ownerID := "owner1"

	proj, err := env.projectSvc.Create(ctx, ownerID, project.CreateRequest{Title: "Venturly"})
	require.NoError(t, err)

	// Spend three of the free tier's four credits so the racers fight over
	// the last one.
	for i := 0; i < 3; i++ {
		_, err := env.ledger.TryConsume(ctx, ownerID, proj.ID, string(stage.Competitors))
		require.NoError(t, err)
	}

	const racers = 8
	results := make([]error, racers)
	var wg sync.WaitGroup
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := env.ledger.TryConsume(ctx, ownerID, proj.ID, string(stage.MarketGaps))
			results[i] = err
		}(i)
	}
	wg.Wait()

	// The conditional write lets exactly one racer take the last credit;
	// the rest either re-read the exhausted counter or run out of retries.
	wins := 0
	for _, res := range results {
		switch {
		case res == nil:
			wins++
		case errors.Is(res, credit.ErrOutOfCredits), errors.Is(res, credit.ErrConcurrentConflict):
		default:
			t.Fatalf("unexpected consume error: %v", res)
		}
	}
	require.Equal(t, 1, wins)

	summary, err := env.ledger.Summary(ctx, ownerID, proj.ID)
	require.NoError(t, err)
	require.Equal(t, 4, summary.Used)
	require.Equal(t, 0, summary.Remaining)
}

func TestIntegration_FailedGenerationIsBilled(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ownerID := "owner1"

	proj, err := env.projectSvc.Create(ctx, ownerID, project.CreateRequest{Title: "Venturly"})
	require.NoError(t, err)
	env.submit(t, ownerID, proj.ID, stage.Idea, "An idea")

	env.generator.Fail = &completion.Failure{Kind: completion.FailureTimeout}
	_, err = env.pipelineSvc.SubmitStage(ctx, ownerID, pipeline.SubmitRequest{
		ProjectID: proj.ID, Stage: stage.Competitors,
	})
	require.ErrorIs(t, err, pipeline.ErrGenerationFailed)

	// The failed charge is settled, not orphaned, and the credit is spent.
	state, err := env.pipelineSvc.State(ctx, ownerID, proj.ID)
	require.NoError(t, err)
	require.Empty(t, state.Orphaned)
	require.Equal(t, 1, state.Credits.Used)
}

func TestIntegration_ManualCurationAlongsidePipeline(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ownerID := "owner1"

	proj, err := env.projectSvc.Create(ctx, ownerID, project.CreateRequest{Title: "Venturly"})
	require.NoError(t, err)
	env.submit(t, ownerID, proj.ID, stage.Idea, "An idea")
	env.submit(t, ownerID, proj.ID, stage.Competitors, "")

	// A manual entry lands after the generated ones and costs nothing.
	manual, err := env.competitorSvc.Add(ctx, ownerID, competitor.AddRequest{
		ProjectID: proj.ID, Name: "Handmade Inc",
	})
	require.NoError(t, err)
	require.Equal(t, 2, manual.Position)

	state, err := env.pipelineSvc.State(ctx, ownerID, proj.ID)
	require.NoError(t, err)
	require.Len(t, state.Competitors, 3)
	require.Equal(t, 1, state.Credits.Used)

	// Rerunning the stage replaces the whole list, manual entries included.
	state, err = env.pipelineSvc.RerunStage(ctx, ownerID, pipeline.SubmitRequest{
		ProjectID: proj.ID, Stage: stage.Competitors,
	})
	require.NoError(t, err)
	require.Len(t, state.Competitors, 2)
}

func TestIntegration_OwnerIsolation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.projectSvc.Create(ctx, "owner1", project.CreateRequest{Title: "Private"})
	require.NoError(t, err)

	_, err = env.pipelineSvc.State(ctx, "owner2", proj.ID)
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = env.pipelineSvc.SubmitStage(ctx, "owner2", pipeline.SubmitRequest{
		ProjectID: proj.ID, Stage: stage.Idea, Idea: "Hijack",
	})
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}
