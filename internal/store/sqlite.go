package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/enrich-cli/internal/model"
)

// SQLiteStore implements Store on a local sqlite file for dev and single-node
// runs.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the sqlite database at path.
func NewSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: %s", p)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: ping")
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS leads_table (
	id                      INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name              TEXT NOT NULL,
	last_name               TEXT NOT NULL,
	email                   TEXT NOT NULL,
	contact_number          TEXT,
	city                    TEXT,
	country                 TEXT,
	company                 TEXT NOT NULL,
	interested_in           TEXT,
	inquiry                 TEXT,
	enrichment_flag         INTEGER NOT NULL DEFAULT 0,
	enrichment_status       TEXT,
	error_details           TEXT,
	enriched_at             TIMESTAMP,
	company_name            TEXT,
	company_website         TEXT,
	company_industry        TEXT,
	company_employee_count  INTEGER,
	company_annual_revenue  REAL,
	company_headquarters    TEXT,
	company_founded_year    INTEGER,
	company_technologies    TEXT,
	company_funding_details TEXT,
	company_hiring_trends   TEXT,
	company_recent_news     TEXT,
	person_full_name        TEXT,
	person_job_title        TEXT,
	person_seniority_level  TEXT,
	person_department       TEXT,
	person_location         TEXT,
	person_work_history     TEXT,
	person_skills           TEXT,
	created_at              TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_leads_enrichment_flag ON leads_table(enrichment_flag);
CREATE INDEX IF NOT EXISTS idx_leads_email ON leads_table(email);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return eris.Wrap(s.db.Close(), "sqlite: close")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) InsertContact(ctx context.Context, contact model.Contact) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO leads_table (first_name, last_name, email, contact_number, city, country, company, interested_in, inquiry, enrichment_flag, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`,
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
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: insert contact")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: last insert id")
	}
	return id, nil
}

const sqliteLeadColumns = `id, first_name, last_name, email, contact_number, city, country, company, interested_in, inquiry, enrichment_flag, enrichment_status, enriched_at, created_at`

func (s *SQLiteStore) ListUnenriched(ctx context.Context) ([]model.Lead, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteLeadColumns+` FROM leads_table WHERE enrichment_flag = 0 ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list unenriched")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		l, err := scanSQLiteLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: list unenriched rows")
	}
	return leads, nil
}

func (s *SQLiteStore) GetLead(ctx context.Context, leadID int64) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteLeadColumns+` FROM leads_table WHERE id = ?`, leadID)
	l, err := scanSQLiteLead(row)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get lead %d", leadID)
	}
	return &l, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSQLiteLead(sc scanner) (model.Lead, error) {
	var (
		l             model.Lead
		contactNumber sql.NullString
		city          sql.NullString
		country       sql.NullString
		interestedIn  sql.NullString
		inquiry       sql.NullString
		status        sql.NullString
		enrichedAt    sql.NullTime
	)
	if err := sc.Scan(
		&l.ID, &l.FirstName, &l.LastName, &l.Email, &contactNumber,
		&city, &country, &l.Company, &interestedIn, &inquiry,
		&l.EnrichmentFlag, &status, &enrichedAt, &l.CreatedAt,
	); err != nil {
		return l, eris.Wrap(err, "sqlite: scan lead")
	}
	l.ContactNumber = contactNumber.String
	l.City = city.String
	l.Country = country.String
	l.InterestedIn = interestedIn.String
	l.Inquiry = inquiry.String
	if status.Valid {
		l.EnrichmentStatus = &status.String
	}
	if enrichedAt.Valid {
		t := enrichedAt.Time
		l.EnrichedAt = &t
	}
	return l, nil
}

func (s *SQLiteStore) UpdateEnrichment(ctx context.Context, leadID int64, rec model.EnrichmentRecord, enrichedAt time.Time) error {
	rec.Normalize()

	lists, err := marshalSQLiteLists(rec)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE leads_table SET company_name = ?, company_website = ?, company_industry = ?, company_employee_count = ?, company_annual_revenue = ?, company_headquarters = ?, company_founded_year = ?, company_technologies = ?, company_funding_details = ?, company_hiring_trends = ?, company_recent_news = ?, person_full_name = ?, person_job_title = ?, person_seniority_level = ?, person_department = ?, person_location = ?, person_work_history = ?, person_skills = ?, enrichment_status = ?, error_details = ?, enrichment_flag = 1, enriched_at = ? WHERE id = ?`,
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
		return eris.Wrapf(err, "sqlite: update lead %d", leadID)
	}
	return nil
}

// sqliteLists holds JSON text for the list columns.
type sqliteLists struct {
	technologies string
	hiringTrends string
	recentNews   string
	workHistory  string
	skills       string
}

func marshalSQLiteLists(rec model.EnrichmentRecord) (sqliteLists, error) {
	lf, err := marshalListFields(rec)
	if err != nil {
		return sqliteLists{}, err
	}
	return sqliteLists{
		technologies: string(lf.technologies),
		hiringTrends: string(lf.hiringTrends),
		recentNews:   string(lf.recentNews),
		workHistory:  string(lf.workHistory),
		skills:       string(lf.skills),
	}, nil
}
