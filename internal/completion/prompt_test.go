package completion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	pc := PromptContext{
		Title: "Venturly",
		Idea:  "Idea validation for founders",
		Competitors: []CompetitorInfo{
			{Name: "Acme", Website: "acme.example", Description: "Dashboards"},
		},
		Guidance: "focus on SMBs",
	}

	prompt, err := buildPrompt("marketGaps", pc)
	require.NoError(t, err)
	require.Contains(t, prompt, "Venturly")
	require.Contains(t, prompt, "- Acme (acme.example): Dashboards")
	require.Contains(t, prompt, "Founder guidance: focus on SMBs")
	require.Contains(t, prompt, `"gaps"`)
}

func TestBuildPrompt_SelectedGapWins(t *testing.T) {
	selected := GapInfo{Gap: "No SMB plan", Score: 8, Positioning: "Cheap entry tier"}
	pc := PromptContext{
		Title:       "Venturly",
		Idea:        "Idea validation",
		Gaps:        []GapInfo{selected, {Gap: "Other", Score: 4}},
		SelectedGap: &selected,
	}

	prompt, err := buildPrompt("features", pc)
	require.NoError(t, err)
	require.Contains(t, prompt, "chose to pursue this market gap")
	require.Contains(t, prompt, "No SMB plan (score 8/10)")
	require.NotContains(t, prompt, "Market-gap analysis:")
}

func TestBuildPrompt_UnknownStage(t *testing.T) {
	_, err := buildPrompt("idea", PromptContext{})
	require.Error(t, err)
}

func TestParseOutput(t *testing.T) {
	out, err := parseOutput("marketGaps", `{"gaps":[{"gap":"G","positioning_suggestion":"P","score":15,"rationale":"R"}]}`)
	require.NoError(t, err)
	require.Len(t, out.Gaps, 1)
	require.Equal(t, 10, out.Gaps[0].Score)
}

func TestParseOutput_StripsFences(t *testing.T) {
	text := "```json\n{\"competitors\":[{\"name\":\"Acme\"}]}\n```"
	out, err := parseOutput("competitors", text)
	require.NoError(t, err)
	require.Len(t, out.Competitors, 1)
	require.Equal(t, "Acme", out.Competitors[0].Name)
}

func TestParseOutput_NormalizesPriority(t *testing.T) {
	out, err := parseOutput("features", `{"features":[{"title":"A","priority":"HIGH"},{"title":"B","priority":"urgent"}]}`)
	require.NoError(t, err)
	require.Equal(t, "high", out.Features[0].Priority)
	require.Equal(t, "medium", out.Features[1].Priority)
}

func TestParseOutput_EmptyListFails(t *testing.T) {
	_, err := parseOutput("validationPlan", `{"steps":[]}`)
	require.Error(t, err)
}

func TestParseOutput_DropsCrossStageContent(t *testing.T) {
	out, err := parseOutput("competitors", `{"competitors":[{"name":"Acme"}],"gaps":[{"gap":"G"}]}`)
	require.NoError(t, err)
	require.Len(t, out.Competitors, 1)
	require.Nil(t, out.Gaps)
}

func TestParseOutput_BadJSON(t *testing.T) {
	_, err := parseOutput("competitors", "not json at all")
	require.Error(t, err)
}

func TestStripFences(t *testing.T) {
	require.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	require.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	require.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}
