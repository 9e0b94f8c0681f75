package enrich

import (
	"context"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/enrich-cli/internal/agent"
	"github.com/sells-group/enrich-cli/internal/model"
	storemocks "github.com/sells-group/enrich-cli/internal/store/mocks"
	"github.com/sells-group/enrich-cli/pkg/anthropic"
	anthropicmocks "github.com/sells-group/enrich-cli/pkg/anthropic/mocks"
)

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
		Usage:   anthropic.TokenUsage{InputTokens: 100, OutputTokens: 50},
	}
}

// reqContaining matches a CreateMessage request whose system prompt or user
// message contains every marker.
func reqContaining(markers ...string) any {
	return mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		var b strings.Builder
		for _, s := range req.System {
			b.WriteString(s.Text)
		}
		for _, m := range req.Messages {
			b.WriteString(m.Content)
		}
		text := b.String()
		for _, m := range markers {
			if !strings.Contains(text, m) {
				return false
			}
		}
		return true
	})
}

func newTestProcessor(t *testing.T, client anthropic.Client) (*Processor, *storemocks.MockStore) {
	t.Helper()

	tmpl := agent.DefaultTemplates()
	company := agent.NewResearchAgent(agent.ResearchConfig{
		Name:        "company_research_agent",
		Model:       "claude-sonnet-4-5-20250929",
		Instruction: tmpl.CompanyResearch,
		OutputSlot:  agent.SlotCompanyInfo,
		MaxTokens:   4096,
		MaxSearches: 5,
	}, client)
	person := agent.NewResearchAgent(agent.ResearchConfig{
		Name:        "person_research_agent",
		Model:       "claude-sonnet-4-5-20250929",
		Instruction: tmpl.PersonResearch,
		OutputSlot:  agent.SlotPersonInfo,
		MaxTokens:   4096,
		MaxSearches: 5,
	}, client)
	structurer := agent.NewStructurer("claude-haiku-4-5-20251001", tmpl.Structuring, 2048, client)
	pipeline := agent.NewPipeline(agent.NewGatherer(company, person), structurer)

	sessions := agent.NewSessionService()
	runner := agent.NewRunner(AppName, sessions, pipeline)
	st := storemocks.NewMockStore(t)
	return NewProcessor(sessions, runner, st), st
}

func TestProcessor_EnrichLead_Success(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, reqContaining("market researcher", "Acme Inc")).
		Return(textResponse("### Firmographics\n- **Company Name:** Acme Inc"), nil).Once()
	client.On("CreateMessage", mock.Anything, reqContaining("recruitment consultant", "Jane Doe")).
		Return(textResponse("### Professional Profile\n- **Full Name:** Jane Doe"), nil).Once()
	client.On("CreateMessage", mock.Anything, reqContaining("Company Report")).
		Return(textResponse(`{"company_name":"Acme Inc","person_full_name":"Jane Doe","person_job_title":"CTO"}`), nil).Once()

	p, _ := newTestProcessor(t, client)

	rec := p.EnrichLead(context.Background(), "Acme Inc", "Jane Doe")
	assert.False(t, rec.Failed())
	assert.Equal(t, "Acme Inc", rec.CompanyName)
	assert.Equal(t, "Jane Doe", rec.PersonFullName)
	require.NotNil(t, rec.PersonJobTitle)
	assert.Equal(t, "CTO", *rec.PersonJobTitle)
	assert.NotNil(t, rec.CompanyTechnologies)
	assert.Empty(t, rec.ErrorDetails)
}

// Any pipeline failure yields a degraded record that still carries the input
// identity.
func TestProcessor_EnrichLead_Degraded(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, reqContaining("market researcher")).
		Return(nil, eris.New("api unavailable")).Once()
	client.On("CreateMessage", mock.Anything, reqContaining("recruitment consultant")).
		Return(textResponse("person report"), nil).Maybe()

	p, _ := newTestProcessor(t, client)

	rec := p.EnrichLead(context.Background(), "Acme Inc", "Jane Doe")
	assert.True(t, rec.Failed())
	assert.Equal(t, "Acme Inc", rec.CompanyName)
	assert.Equal(t, "Jane Doe", rec.PersonName)
	assert.Contains(t, rec.ErrorDetails, "api unavailable")
	assert.NotNil(t, rec.PersonSkills)
}

// Each EnrichLead call runs in its own session; back-to-back calls never see
// each other's state.
func TestProcessor_EnrichLead_SessionIsolation(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, reqContaining("market researcher")).
		Return(textResponse("company report"), nil).Twice()
	client.On("CreateMessage", mock.Anything, reqContaining("recruitment consultant")).
		Return(textResponse("person report"), nil).Twice()
	client.On("CreateMessage", mock.Anything, reqContaining("Company Report")).
		Return(func(_ context.Context, req anthropic.MessageRequest) *anthropic.MessageResponse {
			if strings.Contains(req.Messages[0].Content, "company report") {
				return textResponse(`{"company_name":"Acme Inc","person_full_name":"Jane Doe"}`)
			}
			return textResponse(`{}`)
		}, nil).Twice()

	p, _ := newTestProcessor(t, client)

	first := p.EnrichLead(context.Background(), "Acme Inc", "Jane Doe")
	second := p.EnrichLead(context.Background(), "Acme Inc", "Jane Doe")
	assert.False(t, first.Failed())
	assert.False(t, second.Failed())
}

func TestProcessor_ProcessPending(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)

	// First lead succeeds end to end.
	client.On("CreateMessage", mock.Anything, reqContaining("market researcher", "Acme Inc")).
		Return(textResponse("Acme company report"), nil).Once()
	client.On("CreateMessage", mock.Anything, reqContaining("recruitment consultant", "Jane Doe")).
		Return(textResponse("Jane person report"), nil).Once()
	client.On("CreateMessage", mock.Anything, reqContaining("Company Report", "Acme company report")).
		Return(textResponse(`{"company_name":"Acme Inc","person_full_name":"Jane Doe"}`), nil).Once()

	// Second lead fails at research; its row must still be written back.
	client.On("CreateMessage", mock.Anything, reqContaining("market researcher", "Globex")).
		Return(nil, eris.New("api unavailable")).Once()
	client.On("CreateMessage", mock.Anything, reqContaining("recruitment consultant", "John Smith")).
		Return(textResponse("John person report"), nil).Maybe()

	p, st := newTestProcessor(t, client)

	st.On("ListUnenriched", mock.Anything).Return([]model.Lead{
		{ID: 1, FirstName: "Jane", LastName: "Doe", Company: "Acme Inc"},
		{ID: 2, FirstName: "John", LastName: "Smith", Company: "Globex"},
	}, nil).Once()
	st.On("UpdateEnrichment", mock.Anything, int64(1),
		mock.MatchedBy(func(rec model.EnrichmentRecord) bool {
			return !rec.Failed() && rec.CompanyName == "Acme Inc"
		}), mock.Anything).Return(nil).Once()
	st.On("UpdateEnrichment", mock.Anything, int64(2),
		mock.MatchedBy(func(rec model.EnrichmentRecord) bool {
			return rec.Failed() && rec.CompanyName == "Globex" && rec.PersonName == "John Smith"
		}), mock.Anything).Return(nil).Once()

	processed := p.ProcessPending(context.Background())
	assert.Equal(t, 2, processed)
}

// A datastore read failure degrades to an empty batch, never an abort.
func TestProcessor_ProcessPending_ReadFailure(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	p, st := newTestProcessor(t, client)

	st.On("ListUnenriched", mock.Anything).Return(nil, eris.New("connection refused")).Once()

	assert.Equal(t, 0, p.ProcessPending(context.Background()))
}

// A write failure is logged and swallowed.
func TestProcessor_UpdateLead_WriteFailure(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	p, st := newTestProcessor(t, client)

	st.On("UpdateEnrichment", mock.Anything, int64(5), mock.Anything, mock.Anything).
		Return(eris.New("deadlock detected")).Once()

	var rec model.EnrichmentRecord
	rec.CompanyName = "Acme Inc"
	p.UpdateLead(context.Background(), 5, rec)
}

func TestProcessor_SaveContact(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	p, st := newTestProcessor(t, client)

	contact := model.Contact{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@acme.com",
		Company:   "Acme Inc",
	}
	st.On("InsertContact", mock.Anything, contact).Return(int64(42), nil).Once()

	id, err := p.SaveContact(context.Background(), contact)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestProcessor_SaveContact_Invalid(t *testing.T) {
	client := anthropicmocks.NewMockClient(t)
	p, _ := newTestProcessor(t, client)

	_, err := p.SaveContact(context.Background(), model.Contact{FirstName: "Jane"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}
