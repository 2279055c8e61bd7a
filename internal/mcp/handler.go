package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/venturly/venturly/internal/domain/competitor"
	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/domain/pipeline"
	"github.com/venturly/venturly/internal/domain/plan"
	"github.com/venturly/venturly/internal/domain/project"
	"github.com/venturly/venturly/internal/domain/stage"
)

// Handler dispatches MCP commands to domain services.
type Handler struct {
	projects    ProjectService
	pipeline    PipelineService
	competitors CompetitorService
	features    FeatureService
	steps       PlanService
	portalURL   string
}

// NewHandler creates a new MCP handler.
func NewHandler(svcs Services, portalURL string) *Handler {
	return &Handler{
		projects:    svcs.Projects,
		pipeline:    svcs.Pipeline,
		competitors: svcs.Competitors,
		features:    svcs.Features,
		steps:       svcs.Steps,
		portalURL:   portalURL,
	}
}

// Handle dispatches a JSON-RPC method to the matching typed handler. It backs
// the plain HTTP transport; the SDK server registers the same handlers as
// typed tools.
func (h *Handler) Handle(ctx context.Context, ownerID, method string, params json.RawMessage) (any, error) {
	switch method {
	case "create_project":
		var req CreateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.CreateProject(ctx, ownerID, req))
	case "rename_project":
		var req RenameProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.RenameProject(ctx, ownerID, req))
	case "list_projects":
		return h.wrap(h.ListProjects(ctx, ownerID))
	case "get_project_state":
		var req GetProjectStateParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.GetProjectState(ctx, ownerID, req))
	case "submit_stage":
		var req SubmitStageParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.SubmitStage(ctx, ownerID, req))
	case "rerun_stage":
		var req RerunStageParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.RerunStage(ctx, ownerID, req))
	case "select_market_gap":
		var req SelectMarketGapParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.SelectMarketGap(ctx, ownerID, req))
	case "add_competitor":
		var req AddCompetitorParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.AddCompetitor(ctx, ownerID, req))
	case "update_competitor":
		var req UpdateCompetitorParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.UpdateCompetitor(ctx, ownerID, req))
	case "remove_competitor":
		var req RemoveCompetitorParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.RemoveCompetitor(ctx, ownerID, req))
	case "add_feature":
		var req AddFeatureParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.AddFeature(ctx, ownerID, req))
	case "update_feature":
		var req UpdateFeatureParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.UpdateFeature(ctx, ownerID, req))
	case "remove_feature":
		var req RemoveFeatureParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.RemoveFeature(ctx, ownerID, req))
	case "list_features":
		var req ListFeaturesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.ListFeatures(ctx, ownerID, req))
	case "add_validation_step":
		var req AddValidationStepParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.AddValidationStep(ctx, ownerID, req))
	case "update_validation_step":
		var req UpdateValidationStepParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.UpdateValidationStep(ctx, ownerID, req))
	case "remove_validation_step":
		var req RemoveValidationStepParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.wrap(h.RemoveValidationStep(ctx, ownerID, req))
	default:
		return nil, &APIError{
			Code:         CodeMethodNotFound,
			Message:      fmt.Sprintf("unknown method: %s", method),
			RecoveryHint: "Call tools/list to see the available methods",
		}
	}
}

func (h *Handler) CreateProject(ctx context.Context, ownerID string, params CreateProjectParams) (*project.Project, error) {
	return h.projects.Create(ctx, ownerID, project.CreateRequest{
		ID:    params.ID,
		Title: params.Title,
	})
}

func (h *Handler) RenameProject(ctx context.Context, ownerID string, params RenameProjectParams) (*project.Project, error) {
	return h.projects.Rename(ctx, ownerID, params.ID, params.Title)
}

func (h *Handler) ListProjects(ctx context.Context, ownerID string) (*ListProjectsResponse, error) {
	summaries, err := h.projects.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &ListProjectsResponse{Projects: summaries}, nil
}

func (h *Handler) GetProjectState(ctx context.Context, ownerID string, params GetProjectStateParams) (*pipeline.ProjectState, error) {
	return h.pipeline.State(ctx, ownerID, params.ProjectID)
}

func (h *Handler) SubmitStage(ctx context.Context, ownerID string, params SubmitStageParams) (*pipeline.ProjectState, error) {
	return h.pipeline.SubmitStage(ctx, ownerID, pipeline.SubmitRequest{
		ProjectID: params.ProjectID,
		Stage:     stage.ID(params.Stage),
		Idea:      params.Idea,
		Guidance:  params.Guidance,
	})
}

func (h *Handler) RerunStage(ctx context.Context, ownerID string, params RerunStageParams) (*pipeline.ProjectState, error) {
	return h.pipeline.RerunStage(ctx, ownerID, pipeline.SubmitRequest{
		ProjectID: params.ProjectID,
		Stage:     stage.ID(params.Stage),
		Idea:      params.Idea,
		Guidance:  params.Guidance,
	})
}

func (h *Handler) SelectMarketGap(ctx context.Context, ownerID string, params SelectMarketGapParams) (*pipeline.ProjectState, error) {
	return h.pipeline.SelectGap(ctx, ownerID, params.ProjectID, params.Index)
}

func (h *Handler) AddCompetitor(ctx context.Context, ownerID string, params AddCompetitorParams) (*competitor.Competitor, error) {
	return h.competitors.Add(ctx, ownerID, competitor.AddRequest{
		ProjectID:   params.ProjectID,
		Name:        params.Name,
		Website:     params.Website,
		Description: params.Description,
	})
}

func (h *Handler) UpdateCompetitor(ctx context.Context, ownerID string, params UpdateCompetitorParams) (*competitor.Competitor, error) {
	return h.competitors.Update(ctx, ownerID, competitor.UpdateRequest{
		ID:          params.ID,
		Name:        params.Name,
		Website:     params.Website,
		Description: params.Description,
	})
}

func (h *Handler) RemoveCompetitor(ctx context.Context, ownerID string, params RemoveCompetitorParams) (*StatusResponse, error) {
	if err := h.competitors.Remove(ctx, ownerID, params.ID); err != nil {
		return nil, err
	}
	return &StatusResponse{Status: "removed"}, nil
}

func (h *Handler) AddFeature(ctx context.Context, ownerID string, params AddFeatureParams) (*feature.Feature, error) {
	return h.features.Add(ctx, ownerID, feature.AddRequest{
		ProjectID:   params.ProjectID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    feature.Priority(params.Priority),
	})
}

func (h *Handler) UpdateFeature(ctx context.Context, ownerID string, params UpdateFeatureParams) (*feature.Feature, error) {
	return h.features.Update(ctx, ownerID, feature.UpdateRequest{
		ID:          params.ID,
		Title:       params.Title,
		Description: params.Description,
		Status:      statusPtr(params.Status),
		Priority:    priorityPtr(params.Priority),
	})
}

func (h *Handler) RemoveFeature(ctx context.Context, ownerID string, params RemoveFeatureParams) (*StatusResponse, error) {
	if err := h.features.Remove(ctx, ownerID, params.ID); err != nil {
		return nil, err
	}
	return &StatusResponse{Status: "removed"}, nil
}

func (h *Handler) ListFeatures(ctx context.Context, ownerID string, params ListFeaturesParams) ([]feature.Feature, error) {
	opts := feature.ListOptions{}
	for _, s := range params.Statuses {
		opts.Statuses = append(opts.Statuses, feature.Status(s))
	}
	for _, p := range params.Priorities {
		opts.Priorities = append(opts.Priorities, feature.Priority(p))
	}
	return h.features.List(ctx, ownerID, params.ProjectID, opts)
}

func (h *Handler) AddValidationStep(ctx context.Context, ownerID string, params AddValidationStepParams) (*plan.Step, error) {
	return h.steps.Add(ctx, ownerID, plan.AddRequest{
		ProjectID: params.ProjectID,
		Title:     params.Title,
		Goal:      params.Goal,
		Method:    params.Method,
		Priority:  feature.Priority(params.Priority),
	})
}

func (h *Handler) UpdateValidationStep(ctx context.Context, ownerID string, params UpdateValidationStepParams) (*plan.Step, error) {
	return h.steps.Update(ctx, ownerID, plan.UpdateRequest{
		ID:       params.ID,
		Title:    params.Title,
		Goal:     params.Goal,
		Method:   params.Method,
		Priority: priorityPtr(params.Priority),
		Done:     params.Done,
	})
}

func (h *Handler) RemoveValidationStep(ctx context.Context, ownerID string, params RemoveValidationStepParams) (*StatusResponse, error) {
	if err := h.steps.Remove(ctx, ownerID, params.ID); err != nil {
		return nil, err
	}
	return &StatusResponse{Status: "removed"}, nil
}

// wrap funnels typed handler results through domain error mapping for the
// JSON-RPC dispatch path.
func (h *Handler) wrap(result any, err error) (any, error) {
	if err != nil {
		return nil, h.mapError(err)
	}
	return result, nil
}

func (h *Handler) mapError(err error) error {
	if apiErr := MapError(err, h.portalURL); apiErr != nil {
		return apiErr
	}
	return err
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, out)
}

func statusPtr(s *string) *feature.Status {
	if s == nil {
		return nil
	}
	v := feature.Status(*s)
	return &v
}

func priorityPtr(s *string) *feature.Priority {
	if s == nil {
		return nil
	}
	v := feature.Priority(*s)
	return &v
}
