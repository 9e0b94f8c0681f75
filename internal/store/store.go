// Package store persists leads and their enrichment results.
package store

import (
	"context"
	"time"

	"github.com/sells-group/enrich-cli/internal/model"
)

// Store defines the persistence interface for the leads table.
type Store interface {
	// InsertContact creates a new lead row with enrichment_flag=false and
	// returns its generated ID.
	InsertContact(ctx context.Context, contact model.Contact) (int64, error)

	// ListUnenriched returns all rows with enrichment_flag=false.
	ListUnenriched(ctx context.Context) ([]model.Lead, error)

	// GetLead fetches a single lead by ID.
	GetLead(ctx context.Context, leadID int64) (*model.Lead, error)

	// UpdateEnrichment merges an enrichment record into the target row and
	// flips enrichment_flag to true. The status column follows the record's
	// own status: degraded records persist as Error, everything else as
	// Success.
	UpdateEnrichment(ctx context.Context, leadID int64, rec model.EnrichmentRecord, enrichedAt time.Time) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// enrichmentStatus resolves the status column value for a record. The flag
// flips regardless, so a failed lead is never picked up again.
func enrichmentStatus(rec model.EnrichmentRecord) string {
	if rec.Failed() {
		return model.StatusError
	}
	return model.StatusSuccess
}

// personFullName resolves the person identity column: the structured record's
// full name when present, otherwise the degraded record's input identity.
func personFullName(rec model.EnrichmentRecord) string {
	if rec.PersonFullName != "" {
		return rec.PersonFullName
	}
	return rec.PersonName
}
