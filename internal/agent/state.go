// Package agent implements the lead-enrichment agent pipeline: two research
// agents gathering company and person intelligence in parallel, and a
// structuring agent that folds their reports into a typed record.
package agent

import (
	"sync"

	"github.com/rotisserie/eris"

	"github.com/sells-group/enrich-cli/internal/model"
)

// Slot names a write-once output cell in session state. Each slot is owned by
// exactly one agent.
type Slot string

const (
	SlotCompanyInfo  Slot = "company_info"
	SlotPersonInfo   Slot = "person_info"
	SlotLeadEnriched Slot = "Lead_enriched"
)

// Inputs is the immutable seed of an enrichment session.
type Inputs struct {
	CompanyName string
	PersonName  string
}

// State is the per-run scratch space shared by the pipeline stages: an
// immutable input snapshot plus write-once output cells. The research slots
// are disjoint, so the concurrent gather stage never contends on a cell; the
// result slot is written only by the structuring stage after the gather
// barrier.
type State struct {
	inputs Inputs

	mu     sync.Mutex
	texts  map[Slot]string
	record *model.DataEnrichment
}

// NewState creates session state seeded with the given inputs.
func NewState(in Inputs) *State {
	return &State{
		inputs: in,
		texts:  make(map[Slot]string),
	}
}

// Inputs returns the immutable input snapshot.
func (s *State) Inputs() Inputs {
	return s.inputs
}

// SetText writes a research slot. A second write to the same slot is a
// pipeline bug and returns an error.
func (s *State) SetText(slot Slot, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.texts[slot]; ok {
		return eris.Errorf("state: slot %s already written", slot)
	}
	s.texts[slot] = text
	return nil
}

// Text reads a research slot.
func (s *State) Text(slot Slot) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.texts[slot]
	return text, ok
}

// SetRecord writes the structured result slot exactly once.
func (s *State) SetRecord(rec *model.DataEnrichment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record != nil {
		return eris.Errorf("state: slot %s already written", SlotLeadEnriched)
	}
	s.record = rec
	return nil
}

// Record reads the structured result slot.
func (s *State) Record() (*model.DataEnrichment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record, s.record != nil
}
