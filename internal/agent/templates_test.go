package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplates(t *testing.T) {
	tmpl := DefaultTemplates()

	assert.Contains(t, tmpl.CompanyResearch, "market researcher")
	assert.Contains(t, tmpl.PersonResearch, "recruitment consultant")
	assert.Contains(t, tmpl.Structuring, "data processing agent")
	assert.Contains(t, tmpl.Structuring, `"company_name"`)
}

func TestLoadTemplates_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.yaml")
	require.NoError(t, os.WriteFile(path, []byte("company_research: |\n  Research the named company briefly.\n"), 0o644))

	tmpl, err := LoadTemplates(path)
	require.NoError(t, err)

	assert.Equal(t, "Research the named company briefly.\n", tmpl.CompanyResearch)
	// Untouched templates keep their defaults.
	assert.Equal(t, personInstruction, tmpl.PersonResearch)
	assert.Equal(t, structuringInstruction, tmpl.Structuring)
}

func TestLoadTemplates_MissingFile(t *testing.T) {
	tmpl, err := LoadTemplates(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	// Defaults still come back so callers can decide whether to proceed.
	assert.Equal(t, companyInstruction, tmpl.CompanyResearch)
}

func TestRenderInputs(t *testing.T) {
	out := renderInputs(Inputs{CompanyName: "Acme Inc", PersonName: "Jane Doe"})
	assert.Equal(t, "Company Name: Acme Inc\nPerson Name: Jane Doe", out)
}

func TestRenderReports(t *testing.T) {
	out := renderReports("acme findings", "jane findings")

	assert.Contains(t, out, "### Company Report ###\nacme findings")
	assert.Contains(t, out, "### Person Report ###\njane findings")
}
