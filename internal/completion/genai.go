package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// GenAIClient generates stage output using Google's Gemini API.
type GenAIClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewGenAIClient creates a Gemini-backed generator.
func NewGenAIClient(ctx context.Context, apiKey, model string, timeout time.Duration, logger *slog.Logger) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("generation API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GenAIClient{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Generate builds the stage prompt, calls the model under a bounded timeout,
// and parses the structured response. Provider errors come back as *Failure.
func (c *GenAIClient) Generate(ctx context.Context, stageID string, pc PromptContext) (*StageOutput, error) {
	prompt, err := buildPrompt(stageID, pc)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	resp, err := c.client.Models.GenerateContent(callCtx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			Temperature:       genai.Ptr[float32](0.7),
		},
	)
	if err != nil {
		return nil, classifyError(err)
	}

	text := resp.Text()
	if c.logger != nil {
		c.logger.Debug("generation call completed",
			"stage", stageID, "model", c.model, "elapsed", time.Since(started))
	}

	out, err := parseOutput(stageID, text)
	if err != nil {
		return nil, &Failure{Kind: FailureUpstream, Err: err}
	}
	return out, nil
}

// classifyError maps provider errors onto the typed failure taxonomy.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Failure{Kind: FailureTimeout, Err: err}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return &Failure{Kind: FailureRateLimited, Err: err}
		}
		return &Failure{Kind: FailureUpstream, Err: err}
	}

	return &Failure{Kind: FailureUpstream, Err: err}
}
