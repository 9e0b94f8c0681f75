package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/enrich-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	st, err := NewSQLite(ctx, filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Migrate(ctx))
	return st
}

func TestSQLiteStore_ContactRoundTrip(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	id, err := st.InsertContact(ctx, model.Contact{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@acme.com",
		Company:      "Acme Inc",
		InterestedIn: []string{"Consulting", "Training"},
		Inquiry:      "Looking for a pilot",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	leads, err := st.ListUnenriched(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, id, leads[0].ID)
	assert.Equal(t, "Jane Doe", leads[0].PersonName())
	assert.Equal(t, "Consulting, Training", leads[0].InterestedIn)
	assert.False(t, leads[0].EnrichmentFlag)
	assert.Nil(t, leads[0].EnrichmentStatus)
	assert.Nil(t, leads[0].EnrichedAt)
}

func TestSQLiteStore_UpdateEnrichment_Success(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	id, err := st.InsertContact(ctx, model.Contact{
		FirstName: "Jane", LastName: "Doe", Email: "jane@acme.com", Company: "Acme Inc",
	})
	require.NoError(t, err)

	industry := "Technology"
	var rec model.EnrichmentRecord
	rec.CompanyName = "Acme Inc"
	rec.CompanyIndustry = &industry
	rec.CompanyTechnologies = []string{"Go", "Postgres"}
	rec.PersonFullName = "Jane Doe"

	enrichedAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, st.UpdateEnrichment(ctx, id, rec, enrichedAt))

	// The row leaves the pending set and carries a Success stamp.
	leads, err := st.ListUnenriched(ctx)
	require.NoError(t, err)
	assert.Empty(t, leads)

	lead, err := st.GetLead(ctx, id)
	require.NoError(t, err)
	assert.True(t, lead.EnrichmentFlag)
	require.NotNil(t, lead.EnrichmentStatus)
	assert.Equal(t, model.StatusSuccess, *lead.EnrichmentStatus)
	require.NotNil(t, lead.EnrichedAt)
}

func TestSQLiteStore_UpdateEnrichment_Degraded(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	id, err := st.InsertContact(ctx, model.Contact{
		FirstName: "John", LastName: "Smith", Email: "john@globex.com", Company: "Globex",
	})
	require.NoError(t, err)

	rec := model.DegradedRecord("Globex", "John Smith", eris.New("model call timed out"))
	require.NoError(t, st.UpdateEnrichment(ctx, id, rec, time.Now().UTC()))

	// Degraded rows flip the flag too, so they are never retried.
	leads, err := st.ListUnenriched(ctx)
	require.NoError(t, err)
	assert.Empty(t, leads)

	lead, err := st.GetLead(ctx, id)
	require.NoError(t, err)
	assert.True(t, lead.EnrichmentFlag)
	require.NotNil(t, lead.EnrichmentStatus)
	assert.Equal(t, model.StatusError, *lead.EnrichmentStatus)
}

func TestSQLiteStore_GetLead_Missing(t *testing.T) {
	st := newTestSQLite(t)

	_, err := st.GetLead(context.Background(), 999)
	require.Error(t, err)
}
