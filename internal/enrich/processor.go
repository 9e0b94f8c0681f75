// Package enrich coordinates enrichment runs against the leads store.
package enrich

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/enrich-cli/internal/agent"
	"github.com/sells-group/enrich-cli/internal/model"
	"github.com/sells-group/enrich-cli/internal/store"
)

const (
	// AppName scopes all sessions created by the processor.
	AppName = "lead-enrichment"

	processorUser = "store_processor"
)

// Processor runs the agent pipeline for individual leads and persists the
// results. Persistence failures are logged and swallowed so a bad row or a
// flaky datastore never aborts a batch.
type Processor struct {
	sessions *agent.SessionService
	runner   *agent.Runner
	store    store.Store
}

// NewProcessor creates a processor over the given runner and store.
func NewProcessor(sessions *agent.SessionService, runner *agent.Runner, st store.Store) *Processor {
	return &Processor{sessions: sessions, runner: runner, store: st}
}

// EnrichLead runs the full pipeline for one company/person pair and always
// returns a record: the structured result on success, a degraded record
// carrying the input identity and error details on any failure.
func (p *Processor) EnrichLead(ctx context.Context, companyName, personName string) model.EnrichmentRecord {
	sessionID := uuid.NewString()

	sess, err := p.sessions.Create(p.runner.App(), processorUser, sessionID, agent.Inputs{
		CompanyName: companyName,
		PersonName:  personName,
	})
	if err != nil {
		zap.L().Error("enrich: create session failed",
			zap.String("company_name", companyName),
			zap.Error(err),
		)
		return model.DegradedRecord(companyName, personName, err)
	}
	defer p.sessions.Delete(p.runner.App(), processorUser, sessionID)

	if err := p.runner.Run(ctx, processorUser, sessionID); err != nil {
		zap.L().Error("enrich: pipeline run failed",
			zap.String("company_name", companyName),
			zap.String("person_name", personName),
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return model.DegradedRecord(companyName, personName, err)
	}

	var rec model.EnrichmentRecord
	data, ok := sess.State.Record()
	if !ok {
		// The run completed without filling the result slot. Hand back the
		// input identity rather than failing the lead.
		zap.L().Warn("enrich: result slot empty after run",
			zap.String("company_name", companyName),
			zap.String("session_id", sessionID),
		)
		rec.CompanyName = companyName
		rec.PersonFullName = personName
		rec.Normalize()
		return rec
	}

	rec.DataEnrichment = *data
	rec.Normalize()
	return rec
}

// ProcessPending enriches every lead with enrichment_flag=false, strictly
// sequentially, writing each result back as it completes. Returns the number
// of leads processed.
func (p *Processor) ProcessPending(ctx context.Context) int {
	leads := p.readUnenriched(ctx)
	if len(leads) == 0 {
		zap.L().Info("enrich: no pending leads")
		return 0
	}

	zap.L().Info("enrich: processing pending leads", zap.Int("count", len(leads)))

	processed := 0
	for _, lead := range leads {
		if ctx.Err() != nil {
			zap.L().Warn("enrich: batch interrupted",
				zap.Int("processed", processed),
				zap.Int("remaining", len(leads)-processed),
			)
			break
		}

		rec := p.EnrichLead(ctx, lead.Company, lead.PersonName())
		p.UpdateLead(ctx, lead.ID, rec)
		processed++
	}
	return processed
}

// readUnenriched fetches pending leads, degrading to an empty list when the
// datastore read fails.
func (p *Processor) readUnenriched(ctx context.Context) []model.Lead {
	leads, err := p.store.ListUnenriched(ctx)
	if err != nil {
		zap.L().Error("enrich: list unenriched failed", zap.Error(err))
		return nil
	}
	return leads
}

// UpdateLead persists an enrichment record against a lead row. Write failures
// are logged, never returned.
func (p *Processor) UpdateLead(ctx context.Context, leadID int64, rec model.EnrichmentRecord) {
	if err := p.store.UpdateEnrichment(ctx, leadID, rec, time.Now().UTC()); err != nil {
		zap.L().Error("enrich: update lead failed",
			zap.Int64("lead_id", leadID),
			zap.Error(err),
		)
		return
	}
	zap.L().Info("enrich: lead updated",
		zap.Int64("lead_id", leadID),
		zap.Bool("degraded", rec.Failed()),
	)
}

// SaveContact validates and inserts an inbound contact as a pending lead.
func (p *Processor) SaveContact(ctx context.Context, contact model.Contact) (int64, error) {
	if err := contact.Validate(); err != nil {
		return 0, err
	}
	return p.store.InsertContact(ctx, contact)
}
