package mcp

import (
	"github.com/venturly/venturly/internal/domain/project"
)

type CreateProjectParams struct {
	ID    string `json:"id,omitempty" jsonschema:"unique project identifier (optional, generated if not provided)"`
	Title string `json:"title" jsonschema:"project display title"`
}

type RenameProjectParams struct {
	ID    string `json:"id" jsonschema:"project ID"`
	Title string `json:"title" jsonschema:"new project title"`
}

type ListProjectsParams struct{}

type GetProjectStateParams struct {
	ProjectID string `json:"project_id" jsonschema:"project ID"`
}

type SubmitStageParams struct {
	ProjectID string `json:"project_id" jsonschema:"project ID"`
	Stage     string `json:"stage" jsonschema:"stage to submit: idea, competitors, marketGaps, features, or validationPlan"`
	Idea      string `json:"idea,omitempty" jsonschema:"idea text, required for the idea stage"`
	Guidance  string `json:"guidance,omitempty" jsonschema:"optional guidance steering the generation"`
}

type RerunStageParams struct {
	ProjectID string `json:"project_id" jsonschema:"project ID"`
	Stage     string `json:"stage" jsonschema:"completed stage to regenerate"`
	Idea      string `json:"idea,omitempty" jsonschema:"replacement idea text, for the idea stage"`
	Guidance  string `json:"guidance,omitempty" jsonschema:"optional guidance steering the regeneration"`
}

type SelectMarketGapParams struct {
	ProjectID string `json:"project_id" jsonschema:"project ID"`
	Index     int    `json:"index" jsonschema:"zero-based index into the market gap list"`
}

type AddCompetitorParams struct {
	ProjectID   string `json:"project_id" jsonschema:"project ID"`
	Name        string `json:"name,omitempty" jsonschema:"competitor name (fetched from the website when omitted)"`
	Website     string `json:"website,omitempty" jsonschema:"competitor website URL"`
	Description string `json:"description,omitempty" jsonschema:"what the competitor does"`
}

type UpdateCompetitorParams struct {
	ID          string  `json:"id" jsonschema:"competitor ID"`
	Name        *string `json:"name,omitempty" jsonschema:"new name"`
	Website     *string `json:"website,omitempty" jsonschema:"new website URL"`
	Description *string `json:"description,omitempty" jsonschema:"new description"`
}

type RemoveCompetitorParams struct {
	ID string `json:"id" jsonschema:"competitor ID"`
}

type AddFeatureParams struct {
	ProjectID   string `json:"project_id" jsonschema:"project ID"`
	Title       string `json:"title" jsonschema:"feature title"`
	Description string `json:"description,omitempty" jsonschema:"feature description"`
	Priority    string `json:"priority,omitempty" jsonschema:"low, medium, or high (default medium)"`
}

type UpdateFeatureParams struct {
	ID          string  `json:"id" jsonschema:"feature ID"`
	Title       *string `json:"title,omitempty" jsonschema:"new title"`
	Description *string `json:"description,omitempty" jsonschema:"new description"`
	Status      *string `json:"status,omitempty" jsonschema:"planned, in_progress, or done"`
	Priority    *string `json:"priority,omitempty" jsonschema:"low, medium, or high"`
}

type RemoveFeatureParams struct {
	ID string `json:"id" jsonschema:"feature ID"`
}

type ListFeaturesParams struct {
	ProjectID  string   `json:"project_id" jsonschema:"project ID"`
	Statuses   []string `json:"statuses,omitempty" jsonschema:"filter by statuses"`
	Priorities []string `json:"priorities,omitempty" jsonschema:"filter by priorities"`
}

type AddValidationStepParams struct {
	ProjectID string `json:"project_id" jsonschema:"project ID"`
	Title     string `json:"title" jsonschema:"step title"`
	Goal      string `json:"goal,omitempty" jsonschema:"what the step should learn or prove"`
	Method    string `json:"method,omitempty" jsonschema:"how the step is run"`
	Priority  string `json:"priority,omitempty" jsonschema:"low, medium, or high (default medium)"`
}

type UpdateValidationStepParams struct {
	ID       string  `json:"id" jsonschema:"validation step ID"`
	Title    *string `json:"title,omitempty" jsonschema:"new title"`
	Goal     *string `json:"goal,omitempty" jsonschema:"new goal"`
	Method   *string `json:"method,omitempty" jsonschema:"new method"`
	Priority *string `json:"priority,omitempty" jsonschema:"low, medium, or high"`
	Done     *bool   `json:"done,omitempty" jsonschema:"mark the step done or not done"`
}

type RemoveValidationStepParams struct {
	ID string `json:"id" jsonschema:"validation step ID"`
}

type ListProjectsResponse struct {
	Projects []project.Summary `json:"projects"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
