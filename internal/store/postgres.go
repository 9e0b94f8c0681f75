package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/enrich-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it in
// tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32
	MinConns int32
}

const (
	insertContactSQL = `INSERT INTO leads_table (first_name, last_name, email, contact_number, city, country, company, interested_in, inquiry, enrichment_flag, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, $10) RETURNING id`

	listUnenrichedSQL = `SELECT id, first_name, last_name, email, contact_number, city, country, company, interested_in, inquiry, enrichment_flag, enrichment_status, enriched_at, created_at FROM leads_table WHERE enrichment_flag = FALSE ORDER BY id`

	getLeadSQL = `SELECT id, first_name, last_name, email, contact_number, city, country, company, interested_in, inquiry, enrichment_flag, enrichment_status, enriched_at, created_at FROM leads_table WHERE id = $1`

	updateEnrichmentSQL = `UPDATE leads_table SET company_name = $1, company_website = $2, company_industry = $3, company_employee_count = $4, company_annual_revenue = $5, company_headquarters = $6, company_founded_year = $7, company_technologies = $8, company_funding_details = $9, company_hiring_trends = $10, company_recent_news = $11, person_full_name = $12, person_job_title = $13, person_seniority_level = $14, person_department = $15, person_location = $16, person_work_history = $17, person_skills = $18, enrichment_status = $19, error_details = $20, enrichment_flag = TRUE, enriched_at = $21 WHERE id = $22`
)

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the hot store operations.
var preparedStatements = map[string]string{
	"insert_contact":    insertContactSQL,
	"list_unenriched":   listUnenrichedSQL,
	"get_lead":          getLeadSQL,
	"update_enrichment": updateEnrichmentSQL,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads_table (
	id                      BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	first_name              TEXT NOT NULL,
	last_name               TEXT NOT NULL,
	email                   TEXT NOT NULL,
	contact_number          TEXT,
	city                    TEXT,
	country                 TEXT,
	company                 TEXT NOT NULL,
	interested_in           TEXT,
	inquiry                 TEXT,
	enrichment_flag         BOOLEAN NOT NULL DEFAULT FALSE,
	enrichment_status       TEXT,
	error_details           TEXT,
	enriched_at             TIMESTAMPTZ,
	company_name            TEXT,
	company_website         TEXT,
	company_industry        TEXT,
	company_employee_count  INTEGER,
	company_annual_revenue  DOUBLE PRECISION,
	company_headquarters    TEXT,
	company_founded_year    INTEGER,
	company_technologies    JSONB,
	company_funding_details TEXT,
	company_hiring_trends   JSONB,
	company_recent_news     JSONB,
	person_full_name        TEXT,
	person_job_title        TEXT,
	person_seniority_level  TEXT,
	person_department       TEXT,
	person_location         TEXT,
	person_work_history     JSONB,
	person_skills           JSONB,
	created_at              TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_enrichment_flag ON leads_table(enrichment_flag);
CREATE INDEX IF NOT EXISTS idx_leads_email ON leads_table(email);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) InsertContact(ctx context.Context, contact model.Contact) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, insertContactSQL,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.ContactNumber,
		contact.City,
		contact.Country,
		contact.Company,
		strings.Join(contact.InterestedIn, ", "),
		contact.Inquiry,
		time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: insert contact")
	}
	return id, nil
}

func (s *PostgresStore) ListUnenriched(ctx context.Context) ([]model.Lead, error) {
	rows, err := s.pool.Query(ctx, listUnenrichedSQL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list unenriched")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(
			&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.ContactNumber,
			&l.City, &l.Country, &l.Company, &l.InterestedIn, &l.Inquiry,
			&l.EnrichmentFlag, &l.EnrichmentStatus, &l.EnrichedAt, &l.CreatedAt,
		); err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: list unenriched rows")
	}
	return leads, nil
}

func (s *PostgresStore) GetLead(ctx context.Context, leadID int64) (*model.Lead, error) {
	var l model.Lead
	err := s.pool.QueryRow(ctx, getLeadSQL, leadID).Scan(
		&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.ContactNumber,
		&l.City, &l.Country, &l.Company, &l.InterestedIn, &l.Inquiry,
		&l.EnrichmentFlag, &l.EnrichmentStatus, &l.EnrichedAt, &l.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get lead %d", leadID)
	}
	return &l, nil
}

func (s *PostgresStore) UpdateEnrichment(ctx context.Context, leadID int64, rec model.EnrichmentRecord, enrichedAt time.Time) error {
	rec.Normalize()

	lists, err := marshalListFields(rec)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, updateEnrichmentSQL,
		rec.CompanyName,
		rec.CompanyWebsite,
		rec.CompanyIndustry,
		rec.CompanyEmployeeCount,
		rec.CompanyAnnualRevenue,
		rec.CompanyHeadquarters,
		rec.CompanyFoundedYear,
		lists.technologies,
		rec.CompanyFundingDetails,
		lists.hiringTrends,
		lists.recentNews,
		personFullName(rec),
		rec.PersonJobTitle,
		rec.PersonSeniorityLevel,
		rec.PersonDepartment,
		rec.PersonLocation,
		lists.workHistory,
		lists.skills,
		enrichmentStatus(rec),
		nullString(rec.ErrorDetails),
		enrichedAt,
		leadID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update lead %d", leadID)
	}
	return nil
}

// listFields holds the JSON-encoded list columns of an enrichment record.
type listFields struct {
	technologies []byte
	hiringTrends []byte
	recentNews   []byte
	workHistory  []byte
	skills       []byte
}

func marshalListFields(rec model.EnrichmentRecord) (listFields, error) {
	var lf listFields
	for _, f := range []struct {
		dst  *[]byte
		name string
		src  []string
	}{
		{&lf.technologies, "company_technologies", rec.CompanyTechnologies},
		{&lf.hiringTrends, "company_hiring_trends", rec.CompanyHiringTrends},
		{&lf.recentNews, "company_recent_news", rec.CompanyRecentNews},
		{&lf.workHistory, "person_work_history", rec.PersonWorkHistory},
		{&lf.skills, "person_skills", rec.PersonSkills},
	} {
		data, err := json.Marshal(f.src)
		if err != nil {
			return lf, eris.Wrapf(err, "store: marshal %s", f.name)
		}
		*f.dst = data
	}
	return lf, nil
}

// nullString maps "" to SQL NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
