package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `Venturly validates a business idea through a five-stage pipeline:
idea → competitors → marketGaps → features → validationPlan.

Core concepts:
- Project: one idea-validation run. Its stage is derived from which output
  slots are filled, never stored.
- Stages run strictly in order. submit_stage runs the next pending stage;
  rerun_stage regenerates a completed one (and resets the gap selection
  when the gap list changes).
- Credits: the idea stage is free; every other submit or rerun consumes one
  credit from the project's tier budget (free=4, starter=10, pro=unlimited).
  A failed generation still spends the credit.
- Orphaned charges: if a crash leaves a charge without output, the project
  state reports it and the next submit of that stage runs free.

Recommended workflow:
1) create_project, then submit_stage with stage="idea" and the idea text.
2) submit_stage through competitors and marketGaps.
3) select_market_gap to pick a positioning before the features stage
   (optional but it sharpens generation).
4) submit_stage for features and validationPlan.
5) Curate by hand at any point: add/update/remove competitors, features,
   and validation steps. Manual edits never consume credits.
6) get_project_state whenever unsure; it is always authoritative.

Errors carry machine-readable codes: OUT_OF_ORDER means check the next
pending stage; OUT_OF_CREDITS carries an upgrade link in recovery_hint;
GENERATION_FAILED means the credit is spent and a retry bills again.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "venturly://docs/pipeline",
		Name:        "docs_pipeline",
		Title:       "Pipeline stages and ordering",
		Description: "How the five stages connect, what each one needs, and what rerun does.",
		Content: `# Pipeline stages

Stages run strictly in order. A stage is complete when its output slot is
non-empty; the project's current stage is always derived from the slots.

| Stage | Needs | Produces | Charged |
|---|---|---|---|
| idea | idea text | captured idea | no |
| competitors | idea | competitor list | yes |
| marketGaps | idea + competitors | gap analysis | yes |
| features | idea + competitors + gaps | feature list | yes |
| validationPlan | everything above | validation steps | yes |

## Rerun semantics

` + "`rerun_stage`" + ` replaces the stage's whole output slot. Downstream slots are
left alone, so a regenerated competitor list does not wipe your features.
Rerunning marketGaps clears the selected gap, because the old selection
pointed into a list that no longer exists.

## submit vs rerun

` + "`submit_stage`" + ` only runs the next pending stage. ` + "`rerun_stage`" + ` only runs a
stage that is already complete. Anything else returns OUT_OF_ORDER.
`,
	},
	{
		URI:         "venturly://docs/credits",
		Name:        "docs_credits",
		Title:       "Credit metering",
		Description: "How credits are counted, what tiers allow, and how failures are billed.",
		Content: `# Credit metering

Each project has a credit counter. The tier budget applies per project:
free = 4, starter = 10, pro = unlimited (usage still counted for display).

## What consumes a credit

- ` + "`submit_stage`" + ` for competitors, marketGaps, features, validationPlan.
- ` + "`rerun_stage`" + ` for any of those stages.

The idea stage, manual edits, and ` + "`select_market_gap`" + ` are always free.

## Failure billing

The credit is consumed before the generation call. If generation fails
(rate limit, upstream error, timeout) the credit stays spent and a retry
bills again. If the service crashes between charge and output, the charge
is reported as orphaned in ` + "`get_project_state`" + ` and the next submit of that
stage runs without a new charge.

## Tier changes

Tier changes apply on the next credit check. Past usage is never
recomputed: a free project that used 4 credits has 6 left after upgrading
to starter.
`,
	},
	{
		URI:         "venturly://docs/curation",
		Name:        "docs_curation",
		Title:       "Manual curation",
		Description: "Editing competitors, features, and validation steps alongside generated output.",
		Content: `# Manual curation

Generated and hand-authored entries live in the same lists, distinguished
by ` + "`ai_generated`" + `. Manual edits are free and never touch the pipeline.

- Competitors: ` + "`add_competitor`" + ` with just a website URL pulls the page
  title and description for you.
- Features: track build state with ` + "`status`" + ` (planned, in_progress, done)
  and ` + "`priority`" + `; filter with ` + "`list_features`" + `.
- Validation steps: mark progress with ` + "`done`" + `.

A rerun of a stage replaces that stage's whole list, including your manual
entries in it. Curate after you are happy with the generated baseline.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
