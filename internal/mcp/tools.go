package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// toolHandler adapts a typed Handler method to an SDK tool handler, pulling
// the owner from context and mapping domain errors.
func toolHandler[In any](h *Handler, fn func(ctx context.Context, ownerID string, in In) (any, error)) sdkmcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		out, err := fn(ctx, getOwnerID(ctx), in)
		if err != nil {
			return nil, nil, h.mapError(err)
		}
		return nil, out, nil
	}
}

func registerTools(server *sdkmcp.Server, h *Handler) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new idea-validation project",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in CreateProjectParams) (any, error) {
		return h.CreateProject(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_project",
		Description: "Rename a project",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in RenameProjectParams) (any, error) {
		return h.RenameProject(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with their stage progress and credit usage",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in ListProjectsParams) (any, error) {
		return h.ListProjects(ctx, ownerID)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project_state",
		Description: "Get the full state of a project: stage progress, credits, all stage outputs, and any orphaned charges",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in GetProjectStateParams) (any, error) {
		return h.GetProjectState(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "submit_stage",
		Description: "Run the next pending pipeline stage. The idea stage captures text; later stages generate output and consume a credit",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in SubmitStageParams) (any, error) {
		return h.SubmitStage(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rerun_stage",
		Description: "Regenerate a completed stage, replacing its output. Charged stages consume another credit",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in RerunStageParams) (any, error) {
		return h.RerunStage(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "select_market_gap",
		Description: "Pick one market gap to position the product against; it steers feature generation",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in SelectMarketGapParams) (any, error) {
		return h.SelectMarketGap(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_competitor",
		Description: "Add a competitor by hand; metadata is fetched from the website when only a URL is given",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in AddCompetitorParams) (any, error) {
		return h.AddCompetitor(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_competitor",
		Description: "Update a competitor entry",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in UpdateCompetitorParams) (any, error) {
		return h.UpdateCompetitor(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_competitor",
		Description: "Remove a competitor entry",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in RemoveCompetitorParams) (any, error) {
		return h.RemoveCompetitor(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_feature",
		Description: "Add a product feature by hand",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in AddFeatureParams) (any, error) {
		return h.AddFeature(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_feature",
		Description: "Update a feature's content, status, or priority",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in UpdateFeatureParams) (any, error) {
		return h.UpdateFeature(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_feature",
		Description: "Remove a feature",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in RemoveFeatureParams) (any, error) {
		return h.RemoveFeature(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_features",
		Description: "List features, optionally filtered by status and priority",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in ListFeaturesParams) (any, error) {
		return h.ListFeatures(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_validation_step",
		Description: "Add a validation-plan step by hand",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in AddValidationStepParams) (any, error) {
		return h.AddValidationStep(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_validation_step",
		Description: "Update a validation step or mark it done",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in UpdateValidationStepParams) (any, error) {
		return h.UpdateValidationStep(ctx, ownerID, in)
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_validation_step",
		Description: "Remove a validation step",
	}, toolHandler(h, func(ctx context.Context, ownerID string, in RemoveValidationStepParams) (any, error) {
		return h.RemoveValidationStep(ctx, ownerID, in)
	}))
}
