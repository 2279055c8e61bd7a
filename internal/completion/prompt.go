package completion

import (
	"encoding/json"
	"fmt"
	"strings"
)

const systemInstruction = `You are a startup analyst helping a founder validate a business idea.
Respond with JSON only, matching the schema given in the request. No prose, no markdown fences.`

// buildPrompt assembles the user prompt for one stage from the context.
func buildPrompt(stageID string, pc PromptContext) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Business idea: %s\n", pc.Title)
	fmt.Fprintf(&b, "Description: %s\n", pc.Idea)

	if len(pc.Competitors) > 0 {
		b.WriteString("\nKnown competitors:\n")
		for _, c := range pc.Competitors {
			fmt.Fprintf(&b, "- %s", c.Name)
			if c.Website != "" {
				fmt.Fprintf(&b, " (%s)", c.Website)
			}
			if c.Description != "" {
				fmt.Fprintf(&b, ": %s", c.Description)
			}
			b.WriteString("\n")
		}
	}

	if pc.SelectedGap != nil {
		fmt.Fprintf(&b, "\nThe founder chose to pursue this market gap:\n- %s (score %d/10): %s\n",
			pc.SelectedGap.Gap, pc.SelectedGap.Score, pc.SelectedGap.Positioning)
	} else if len(pc.Gaps) > 0 {
		b.WriteString("\nMarket-gap analysis:\n")
		for _, g := range pc.Gaps {
			fmt.Fprintf(&b, "- %s (score %d/10): %s\n", g.Gap, g.Score, g.Positioning)
		}
	}

	if len(pc.Features) > 0 {
		b.WriteString("\nPlanned features:\n")
		for _, f := range pc.Features {
			fmt.Fprintf(&b, "- %s: %s\n", f.Title, f.Description)
		}
	}

	if pc.Guidance != "" {
		fmt.Fprintf(&b, "\nFounder guidance: %s\n", pc.Guidance)
	}

	switch stageID {
	case "competitors":
		b.WriteString(`
List 5-8 real or plausible competitors for this idea.
Schema: {"competitors":[{"name":"...","website":"...","description":"..."}]}`)
	case "marketGaps":
		b.WriteString(`
Identify 3-6 market gaps the idea could exploit, each scored 0-10 for opportunity.
Schema: {"gaps":[{"gap":"...","positioning_suggestion":"...","score":7,"rationale":"..."}]}`)
	case "features":
		b.WriteString(`
Propose 5-10 product features that address the chosen positioning.
Priority is one of low, medium, high.
Schema: {"features":[{"title":"...","description":"...","priority":"medium"}]}`)
	case "validationPlan":
		b.WriteString(`
Propose 4-8 validation experiments to test the riskiest assumptions.
Priority is one of low, medium, high.
Schema: {"steps":[{"title":"...","goal":"...","method":"...","priority":"high"}]}`)
	default:
		return "", fmt.Errorf("no prompt defined for stage %q", stageID)
	}

	return b.String(), nil
}

// parseOutput decodes the provider's JSON response for one stage and
// normalizes field values. An empty result list is an upstream failure: the
// caller paid for content.
func parseOutput(stageID, text string) (*StageOutput, error) {
	text = stripFences(text)

	var out StageOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", stageID, err)
	}

	switch stageID {
	case "competitors":
		if len(out.Competitors) == 0 {
			return nil, fmt.Errorf("%s response contained no entries", stageID)
		}
		out.Gaps, out.Features, out.Steps = nil, nil, nil
	case "marketGaps":
		if len(out.Gaps) == 0 {
			return nil, fmt.Errorf("%s response contained no entries", stageID)
		}
		for i := range out.Gaps {
			out.Gaps[i].Score = clampScore(out.Gaps[i].Score)
		}
		out.Competitors, out.Features, out.Steps = nil, nil, nil
	case "features":
		if len(out.Features) == 0 {
			return nil, fmt.Errorf("%s response contained no entries", stageID)
		}
		for i := range out.Features {
			out.Features[i].Priority = normalizePriority(out.Features[i].Priority)
		}
		out.Competitors, out.Gaps, out.Steps = nil, nil, nil
	case "validationPlan":
		if len(out.Steps) == 0 {
			return nil, fmt.Errorf("%s response contained no entries", stageID)
		}
		for i := range out.Steps {
			out.Steps[i].Priority = normalizePriority(out.Steps[i].Priority)
		}
		out.Competitors, out.Gaps, out.Features = nil, nil, nil
	default:
		return nil, fmt.Errorf("no response contract for stage %q", stageID)
	}

	return &out, nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON in
// one despite instructions.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

func normalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "low":
		return "low"
	case "high":
		return "high"
	default:
		return "medium"
	}
}
