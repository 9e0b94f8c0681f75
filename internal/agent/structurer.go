package agent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/enrich-cli/internal/model"
	"github.com/sells-group/enrich-cli/pkg/anthropic"
)

// structurerName identifies the structuring agent in logs.
const structurerName = "structuring_agent"

// Structurer reads the two research reports from session state and emits one
// DataEnrichment record into the result slot. It performs no I/O beyond the
// model call and must only run after both research slots are populated.
type Structurer struct {
	model       string
	instruction string
	maxTokens   int64
	client      anthropic.Client
}

// NewStructurer creates the structuring agent.
func NewStructurer(modelID, instruction string, maxTokens int64, client anthropic.Client) *Structurer {
	return &Structurer{
		model:       modelID,
		instruction: instruction,
		maxTokens:   maxTokens,
		client:      client,
	}
}

// Run structures the research reports into the result slot.
func (s *Structurer) Run(ctx context.Context, st *State) error {
	companyInfo, ok := st.Text(SlotCompanyInfo)
	if !ok {
		return eris.New("structurer: company_info slot not populated")
	}
	personInfo, ok := st.Text(SlotPersonInfo)
	if !ok {
		return eris.New("structurer: person_info slot not populated")
	}

	temp := 0.0
	resp, err := s.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: &temp,
		System: []anthropic.SystemBlock{
			{Text: s.instruction, CacheControl: &anthropic.CacheControl{}},
		},
		Messages: []anthropic.Message{
			{Role: "user", Content: renderReports(companyInfo, personInfo)},
		},
	})
	if err != nil {
		return eris.Wrap(err, "structurer: create message")
	}
	resp.Usage.LogCost(s.model, structurerName)

	rec, err := decodeEnrichment(resp.Text())
	if err != nil {
		return err
	}
	return st.SetRecord(rec)
}

// decodeEnrichment parses the model output into a DataEnrichment record,
// rejecting any field outside the schema.
func decodeEnrichment(raw string) (*model.DataEnrichment, error) {
	cleaned := stripFences(raw)

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()

	var rec model.DataEnrichment
	if err := dec.Decode(&rec); err != nil {
		return nil, eris.Wrap(err, "structurer: decode record")
	}
	rec.Normalize()
	return &rec, nil
}

// stripFences removes a surrounding markdown code fence, which models emit
// despite raw-JSON instructions.
func stripFences(raw string) string {
	out := strings.TrimSpace(raw)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}
