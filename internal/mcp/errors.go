package mcp

import (
	"errors"
	"fmt"

	"github.com/venturly/venturly/internal/completion"
	"github.com/venturly/venturly/internal/domain/competitor"
	"github.com/venturly/venturly/internal/domain/credit"
	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/domain/pipeline"
	"github.com/venturly/venturly/internal/domain/plan"
	"github.com/venturly/venturly/internal/domain/project"
	"github.com/venturly/venturly/internal/domain/stage"
	"github.com/venturly/venturly/internal/repository"
)

// CodeMethodNotFound marks a dispatch miss; the plain transport maps it to
// the JSON-RPC method-not-found code instead of a generic internal error.
const CodeMethodNotFound = "METHOD_NOT_FOUND"

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. The portal URL is surfaced
// as the recovery hint for exhausted credits.
func MapError(err error, portalURL string) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the project ID"}
	case errors.Is(err, pipeline.ErrOutOfOrder):
		return &APIError{Code: "OUT_OF_ORDER", Message: "stage is not eligible for this operation", RecoveryHint: "Call get_project_state to see the next pending stage"}
	case errors.Is(err, stage.ErrMissingPrecondition):
		return &APIError{Code: "MISSING_PRECONDITION", Message: "required upstream stage data is missing", RecoveryHint: "Complete the earlier stages first"}
	case errors.Is(err, stage.ErrUnknownStage):
		return &APIError{Code: "UNKNOWN_STAGE", Message: "unknown stage identifier", RecoveryHint: "Valid stages: idea, competitors, marketGaps, features, validationPlan"}
	case errors.Is(err, credit.ErrOutOfCredits):
		return &APIError{Code: "OUT_OF_CREDITS", Message: "credit budget for this project is exhausted", RecoveryHint: "Upgrade your plan at " + portalURL}
	case errors.Is(err, credit.ErrConcurrentConflict):
		return &APIError{Code: "CONCURRENT_CONFLICT", Message: "another request modified the project", RecoveryHint: "Refresh project state and retry"}
	case errors.Is(err, pipeline.ErrGenerationFailed):
		return &APIError{Code: "GENERATION_FAILED", Message: "stage generation failed; the credit was spent", Details: failureDetails(err), RecoveryHint: "Retry the stage; a retry is billed again"}
	case errors.Is(err, pipeline.ErrGapIndexOutOfRange):
		return &APIError{Code: "GAP_INDEX_OUT_OF_RANGE", Message: "selected gap index is outside the current analysis", RecoveryHint: "Call get_project_state to see the gap list"}
	case errors.Is(err, pipeline.ErrInvalidInput), errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, competitor.ErrInvalidInput), errors.Is(err, feature.ErrInvalidInput),
		errors.Is(err, plan.ErrInvalidInput), errors.Is(err, repository.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, competitor.ErrCompetitorNotFound):
		return &APIError{Code: "COMPETITOR_NOT_FOUND", Message: "competitor not found", RecoveryHint: "Check the ID"}
	case errors.Is(err, feature.ErrFeatureNotFound):
		return &APIError{Code: "FEATURE_NOT_FOUND", Message: "feature not found", RecoveryHint: "Check the ID"}
	case errors.Is(err, plan.ErrStepNotFound):
		return &APIError{Code: "STEP_NOT_FOUND", Message: "validation step not found", RecoveryHint: "Check the ID"}
	case errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "resource not found", RecoveryHint: "Check the ID"}
	default:
		return nil
	}
}

func failureDetails(err error) any {
	var failure *completion.Failure
	if errors.As(err, &failure) {
		return map[string]string{"kind": string(failure.Kind)}
	}
	return nil
}
