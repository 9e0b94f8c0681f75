package agent

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/enrich-cli/pkg/anthropic"
)

// ResearchConfig describes a single research agent.
type ResearchConfig struct {
	Name        string
	Model       string
	Instruction string
	OutputSlot  Slot
	MaxTokens   int64
	MaxSearches int
}

// ResearchAgent wraps one web-search-enabled model call. It renders its
// instruction from the session inputs and writes the resulting markdown
// report to the single slot it owns.
type ResearchAgent struct {
	cfg    ResearchConfig
	client anthropic.Client
}

// NewResearchAgent creates a research agent from its config.
func NewResearchAgent(cfg ResearchConfig, client anthropic.Client) *ResearchAgent {
	return &ResearchAgent{cfg: cfg, client: client}
}

// Name returns the agent's name for logging.
func (a *ResearchAgent) Name() string {
	return a.cfg.Name
}

// Run performs the research call and writes the report to the agent's slot.
// The instruction is constant across leads, so it rides in a cached system
// block; only the identifying pair goes in the user message.
func (a *ResearchAgent) Run(ctx context.Context, st *State) error {
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.cfg.Model,
		MaxTokens: a.cfg.MaxTokens,
		System: []anthropic.SystemBlock{
			{Text: a.cfg.Instruction, CacheControl: &anthropic.CacheControl{}},
		},
		Messages: []anthropic.Message{
			{Role: "user", Content: renderInputs(st.Inputs())},
		},
		Tools: []anthropic.Tool{anthropic.WebSearchTool(a.cfg.MaxSearches)},
	})
	if err != nil {
		return eris.Wrapf(err, "agent: %s", a.cfg.Name)
	}
	resp.Usage.LogCost(a.cfg.Model, a.cfg.Name)

	if err := st.SetText(a.cfg.OutputSlot, resp.Text()); err != nil {
		return eris.Wrapf(err, "agent: %s", a.cfg.Name)
	}
	return nil
}
