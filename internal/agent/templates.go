package agent

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Templates holds the instruction templates for the three sub-agents.
type Templates struct {
	CompanyResearch string `yaml:"company_research"`
	PersonResearch  string `yaml:"person_research"`
	Structuring     string `yaml:"structuring"`
}

// DefaultTemplates returns the built-in instruction templates.
func DefaultTemplates() Templates {
	return Templates{
		CompanyResearch: companyInstruction,
		PersonResearch:  personInstruction,
		Structuring:     structuringInstruction,
	}
}

// LoadTemplates reads instruction overrides from a YAML file. Templates not
// present in the file keep their built-in defaults, so prompts can be tuned
// one at a time without a rebuild.
func LoadTemplates(path string) (Templates, error) {
	tmpl := DefaultTemplates()

	data, err := os.ReadFile(path)
	if err != nil {
		return tmpl, eris.Wrapf(err, "agent: read instructions %s", path)
	}

	var override Templates
	if err := yaml.Unmarshal(data, &override); err != nil {
		return tmpl, eris.Wrap(err, "agent: parse instructions")
	}

	if override.CompanyResearch != "" {
		tmpl.CompanyResearch = override.CompanyResearch
	}
	if override.PersonResearch != "" {
		tmpl.PersonResearch = override.PersonResearch
	}
	if override.Structuring != "" {
		tmpl.Structuring = override.Structuring
	}
	return tmpl, nil
}
