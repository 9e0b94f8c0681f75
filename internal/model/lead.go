package model

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Enrichment status values persisted to the leads table.
const (
	StatusSuccess = "Success"
	StatusError   = "Error"
)

// Lead is a row in the leads table: contact-intake fields plus the
// enrichment bookkeeping columns.
type Lead struct {
	ID               int64      `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	ContactNumber    string     `json:"contact_number,omitempty"`
	City             string     `json:"city,omitempty"`
	Country          string     `json:"country,omitempty"`
	Company          string     `json:"company"`
	InterestedIn     string     `json:"interested_in,omitempty"`
	Inquiry          string     `json:"inquiry,omitempty"`
	EnrichmentFlag   bool       `json:"enrichment_flag"`
	EnrichmentStatus *string    `json:"enrichment_status,omitempty"`
	EnrichedAt       *time.Time `json:"enriched_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// PersonName joins the contact's first and last name.
func (l Lead) PersonName() string {
	return strings.TrimSpace(strings.TrimSpace(l.FirstName) + " " + strings.TrimSpace(l.LastName))
}

// Contact is the inbound payload for the save-contact endpoint.
type Contact struct {
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	ContactNumber string   `json:"contactNumber"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	Company       string   `json:"company"`
	InterestedIn  []string `json:"interestedIn"`
	Inquiry       string   `json:"inquiry"`
}

// Validate checks required contact fields.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return eris.New("contact: firstName is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return eris.New("contact: lastName is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return eris.New("contact: email is required")
	}
	if strings.TrimSpace(c.Company) == "" {
		return eris.New("contact: company is required")
	}
	return nil
}

// EnrichmentRequest triggers enrichment of an existing lead.
type EnrichmentRequest struct {
	LeadID      int64  `json:"lead_id"`
	CompanyName string `json:"company_name"`
	PersonName  string `json:"person_name"`
}

// Validate checks required enrichment request fields.
func (r EnrichmentRequest) Validate() error {
	if r.LeadID <= 0 {
		return eris.New("enrichment request: lead_id is required")
	}
	if strings.TrimSpace(r.CompanyName) == "" {
		return eris.New("enrichment request: company_name is required")
	}
	if strings.TrimSpace(r.PersonName) == "" {
		return eris.New("enrichment request: person_name is required")
	}
	return nil
}

// DataEnrichment is the structured output of a successful enrichment run.
// Scalars absent from the research reports are nil, never fabricated; list
// fields are always present, empty when nothing was found.
type DataEnrichment struct {
	CompanyName           string   `json:"company_name"`
	CompanyWebsite        *string  `json:"company_website"`
	CompanyIndustry       *string  `json:"company_industry"`
	CompanyEmployeeCount  *int     `json:"company_employee_count"`
	CompanyAnnualRevenue  *float64 `json:"company_annual_revenue"`
	CompanyHeadquarters   *string  `json:"company_headquarters"`
	CompanyFoundedYear    *int     `json:"company_founded_year"`
	CompanyTechnologies   []string `json:"company_technologies"`
	CompanyFundingDetails *string  `json:"company_funding_details"`
	CompanyHiringTrends   []string `json:"company_hiring_trends"`
	CompanyRecentNews     []string `json:"company_recent_news"`
	PersonFullName        string   `json:"person_full_name"`
	PersonJobTitle        *string  `json:"person_job_title"`
	PersonSeniorityLevel  *string  `json:"person_seniority_level"`
	PersonDepartment      *string  `json:"person_department"`
	PersonLocation        *string  `json:"person_location"`
	PersonWorkHistory     []string `json:"person_work_history"`
	PersonSkills          []string `json:"person_skills"`
}

// Normalize replaces nil list fields with empty slices so they marshal as []
// rather than null.
func (d *DataEnrichment) Normalize() {
	if d.CompanyTechnologies == nil {
		d.CompanyTechnologies = []string{}
	}
	if d.CompanyHiringTrends == nil {
		d.CompanyHiringTrends = []string{}
	}
	if d.CompanyRecentNews == nil {
		d.CompanyRecentNews = []string{}
	}
	if d.PersonWorkHistory == nil {
		d.PersonWorkHistory = []string{}
	}
	if d.PersonSkills == nil {
		d.PersonSkills = []string{}
	}
}

// EnrichmentRecord is what the processor hands back for every lead: the full
// DataEnrichment on success, or a degraded shape carrying just the input
// identity plus an error status when the pipeline failed.
type EnrichmentRecord struct {
	DataEnrichment
	PersonName       string `json:"person_name,omitempty"`
	EnrichmentStatus string `json:"enrichment_status,omitempty"`
	ErrorDetails     string `json:"error_details,omitempty"`
}

// Failed reports whether the record carries an error status.
func (r EnrichmentRecord) Failed() bool {
	return r.EnrichmentStatus == StatusError
}

// DegradedRecord builds the fallback record for a failed enrichment run.
func DegradedRecord(companyName, personName string, err error) EnrichmentRecord {
	rec := EnrichmentRecord{
		PersonName:       personName,
		EnrichmentStatus: StatusError,
		ErrorDetails:     err.Error(),
	}
	rec.CompanyName = companyName
	rec.Normalize()
	return rec
}
