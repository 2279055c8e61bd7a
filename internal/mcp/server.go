package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/venturly/venturly/internal/domain/competitor"
	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/domain/pipeline"
	"github.com/venturly/venturly/internal/domain/plan"
	"github.com/venturly/venturly/internal/domain/project"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, ownerID string, req project.CreateRequest) (*project.Project, error)
	Rename(ctx context.Context, ownerID, id, title string) (*project.Project, error)
	List(ctx context.Context, ownerID string) ([]project.Summary, error)
}

// PipelineService defines pipeline operations needed by MCP.
type PipelineService interface {
	SubmitStage(ctx context.Context, ownerID string, req pipeline.SubmitRequest) (*pipeline.ProjectState, error)
	RerunStage(ctx context.Context, ownerID string, req pipeline.SubmitRequest) (*pipeline.ProjectState, error)
	SelectGap(ctx context.Context, ownerID, projectID string, index int) (*pipeline.ProjectState, error)
	State(ctx context.Context, ownerID, projectID string) (*pipeline.ProjectState, error)
}

// CompetitorService defines competitor operations needed by MCP.
type CompetitorService interface {
	Add(ctx context.Context, ownerID string, req competitor.AddRequest) (*competitor.Competitor, error)
	Update(ctx context.Context, ownerID string, req competitor.UpdateRequest) (*competitor.Competitor, error)
	Remove(ctx context.Context, ownerID, id string) error
}

// FeatureService defines feature operations needed by MCP.
type FeatureService interface {
	Add(ctx context.Context, ownerID string, req feature.AddRequest) (*feature.Feature, error)
	Update(ctx context.Context, ownerID string, req feature.UpdateRequest) (*feature.Feature, error)
	Remove(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID, projectID string, opts feature.ListOptions) ([]feature.Feature, error)
}

// PlanService defines validation-step operations needed by MCP.
type PlanService interface {
	Add(ctx context.Context, ownerID string, req plan.AddRequest) (*plan.Step, error)
	Update(ctx context.Context, ownerID string, req plan.UpdateRequest) (*plan.Step, error)
	Remove(ctx context.Context, ownerID, id string) error
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects    ProjectService
	Pipeline    PipelineService
	Competitors CompetitorService
	Features    FeatureService
	Steps       PlanService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      OwnerResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	PortalURL     string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "venturly",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio mode is local dev only; auth is always off there.
	if cfg.TransportMode == "stdio" {
		server.AddReceivingMiddleware(noAuthMiddleware("default"))
	} else {
		if cfg.AuthEnabled {
			server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
		} else {
			server.AddReceivingMiddleware(noAuthMiddleware("default"))
		}
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	handler := NewHandler(cfg.Services, cfg.PortalURL)
	registerTools(server, handler)

	return server
}
