// Package testserver stands up a full HTTP stack against an in-memory
// database for functional and integration tests.
package testserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/venturly/venturly/internal/completion"
	"github.com/venturly/venturly/internal/domain/competitor"
	"github.com/venturly/venturly/internal/domain/credit"
	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/domain/pipeline"
	"github.com/venturly/venturly/internal/domain/plan"
	"github.com/venturly/venturly/internal/domain/project"
	"github.com/venturly/venturly/internal/mcp"
	"github.com/venturly/venturly/internal/sqlite"
	"github.com/venturly/venturly/internal/transport"
)

type TestServer struct {
	Server    *httptest.Server
	DB        *sqlite.DB
	Generator *ScriptedGenerator
	Token     string
	OwnerID   string
}

// Options tunes the seeded owner. The zero value gives a free-tier owner.
type Options struct {
	Tier credit.Tier
}

func New(t *testing.T, token, ownerID string) *TestServer {
	return NewWithOptions(t, token, ownerID, Options{})
}

func NewWithOptions(t *testing.T, token, ownerID string, opts Options) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	projectRepo := sqlite.NewProjectRepository(db)
	competitorRepo := sqlite.NewCompetitorRepository(db)
	gapRepo := sqlite.NewGapRepository(db)
	featureRepo := sqlite.NewFeatureRepository(db)
	stepRepo := sqlite.NewStepRepository(db)
	chargeRepo := sqlite.NewChargeRepository(db)
	ownerRepo := sqlite.NewOwnerRepository(db)

	generator := &ScriptedGenerator{}
	ledger := credit.NewLedger(projectRepo, ownerRepo, nil)

	projectSvc := project.NewService(projectRepo, nil)
	competitorSvc := competitor.NewService(competitorRepo, nil, nil)
	featureSvc := feature.NewService(featureRepo, nil)
	planSvc := plan.NewService(stepRepo, nil)
	pipelineSvc := pipeline.NewService(
		projectRepo, competitorRepo, gapRepo, featureRepo, stepRepo, chargeRepo,
		ledger, generator, nil)

	handler := mcp.NewHandler(mcp.Services{
		Projects:    projectSvc,
		Pipeline:    pipelineSvc,
		Competitors: competitorSvc,
		Features:    featureSvc,
		Steps:       planSvc,
	}, "https://venturly.app/billing")

	resolver := &apiKeyResolver{db: db}
	server := httptest.NewServer(transport.NewServer(handler, transport.AuthMiddleware(resolver)))

	ts := &TestServer{
		Server:    server,
		DB:        db,
		Generator: generator,
		Token:     token,
		OwnerID:   ownerID,
	}

	require.NoError(t, ts.AddAPIKey(token, ownerID))
	tier := opts.Tier
	if tier == "" {
		tier = credit.TierFree
	}
	require.NoError(t, ownerRepo.SetTier(context.Background(), ownerID, tier))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

func (ts *TestServer) AddAPIKey(token, ownerID string) error {
	hash := hashToken(token)
	_, err := ts.DB.Exec(
		`INSERT INTO api_keys (key_hash, owner_id, created_at) VALUES (?, ?, ?)`,
		hash, ownerID, time.Now(),
	)
	return err
}

type apiKeyResolver struct {
	db *sqlite.DB
}

func (r *apiKeyResolver) ResolveOwner(ctx context.Context, token string) (string, error) {
	hash := hashToken(token)
	var ownerID string
	err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM api_keys WHERE key_hash = ?`, hash).Scan(&ownerID)
	if err != nil || ownerID == "" {
		return "", transport.ErrUnauthorized
	}
	return ownerID, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ScriptedGenerator returns canned stage output without calling a provider.
// Set Fail to make the next call return a typed failure instead.
type ScriptedGenerator struct {
	Fail  *completion.Failure
	Calls int
}

func (g *ScriptedGenerator) Generate(_ context.Context, stageID string, pc completion.PromptContext) (*completion.StageOutput, error) {
	g.Calls++
	if g.Fail != nil {
		failure := g.Fail
		g.Fail = nil
		return nil, failure
	}

	switch stageID {
	case "competitors":
		return &completion.StageOutput{Competitors: []completion.CompetitorInfo{
			{Name: "Acme Analytics", Website: "https://acme.example", Description: "Incumbent dashboard suite"},
			{Name: "Benchly", Website: "https://benchly.example", Description: "Lightweight benchmarking tool"},
		}}, nil
	case "marketGaps":
		return &completion.StageOutput{Gaps: []completion.GapInfo{
			{Gap: "No self-serve onboarding", Positioning: "Ship a free tier with guided setup", Score: 8, Rationale: "Both incumbents require sales calls"},
			{Gap: "Weak SMB pricing", Positioning: "Usage-based pricing under $50/mo", Score: 6, Rationale: "Entry plans start at enterprise rates"},
		}}, nil
	case "features":
		return &completion.StageOutput{Features: []completion.FeatureDraft{
			{Title: "Guided setup wizard", Description: "Connect data in under five minutes", Priority: "high"},
			{Title: "Usage dashboard", Description: "Live spend and quota view", Priority: "medium"},
		}}, nil
	case "validationPlan":
		return &completion.StageOutput{Steps: []completion.StepDraft{
			{Title: "Landing page smoke test", Goal: "Measure signup intent", Method: "Drive 500 visitors from ads", Priority: "high"},
			{Title: "Five founder interviews", Goal: "Validate onboarding pain", Method: "Recruit from community forums", Priority: "medium"},
		}}, nil
	default:
		return nil, &completion.Failure{Kind: completion.FailureUpstream, Err: fmt.Errorf("unknown stage %q", stageID)}
	}
}
