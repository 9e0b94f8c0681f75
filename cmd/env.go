package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/enrich-cli/internal/agent"
	"github.com/sells-group/enrich-cli/internal/enrich"
	"github.com/sells-group/enrich-cli/internal/store"
	anthropicpkg "github.com/sells-group/enrich-cli/pkg/anthropic"
)

// appEnv holds the initialized store and processor needed by the serve/batch/
// enrich commands.
type appEnv struct {
	Store     store.Store
	Processor *enrich.Processor
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "enrich.db"
		}
		return store.NewSQLite(ctx, dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initEnv sets up the store, the Anthropic client, the agent pipeline, and the
// processor. Callers should defer env.Close().
func initEnv(ctx context.Context) (*appEnv, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	client := anthropicpkg.NewClient(cfg.Anthropic.Key,
		anthropicpkg.WithRateLimit(cfg.Anthropic.RequestsPerSecond))

	tmpl := agent.DefaultTemplates()
	if cfg.Agents.InstructionsFile != "" {
		loaded, err := agent.LoadTemplates(cfg.Agents.InstructionsFile)
		if err != nil {
			zap.L().Warn("instruction overrides not loaded, using defaults",
				zap.String("path", cfg.Agents.InstructionsFile),
				zap.Error(err),
			)
		} else {
			tmpl = loaded
			zap.L().Info("instruction overrides loaded",
				zap.String("path", cfg.Agents.InstructionsFile),
			)
		}
	}

	company := agent.NewResearchAgent(agent.ResearchConfig{
		Name:        "company_research_agent",
		Model:       cfg.Anthropic.ResearchModel,
		Instruction: tmpl.CompanyResearch,
		OutputSlot:  agent.SlotCompanyInfo,
		MaxTokens:   cfg.Agents.MaxResearchTokens,
		MaxSearches: cfg.Agents.MaxWebSearches,
	}, client)
	person := agent.NewResearchAgent(agent.ResearchConfig{
		Name:        "person_research_agent",
		Model:       cfg.Anthropic.ResearchModel,
		Instruction: tmpl.PersonResearch,
		OutputSlot:  agent.SlotPersonInfo,
		MaxTokens:   cfg.Agents.MaxResearchTokens,
		MaxSearches: cfg.Agents.MaxWebSearches,
	}, client)
	structurer := agent.NewStructurer(cfg.Anthropic.StructuringModel, tmpl.Structuring, cfg.Agents.MaxStructuringTokens, client)
	pipeline := agent.NewPipeline(agent.NewGatherer(company, person), structurer)

	sessions := agent.NewSessionService()
	runner := agent.NewRunner(enrich.AppName, sessions, pipeline)

	return &appEnv{
		Store:     st,
		Processor: enrich.NewProcessor(sessions, runner, st),
	}, nil
}
