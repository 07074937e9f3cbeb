// Package draftfile loads a project draft from a JSON or YAML file. Entities
// reference each other by string refs, which become the draft's temp ids at
// conversion time.
package draftfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DraftFile is the top-level structure of a draft file.
type DraftFile struct {
	Project    ProjectSection     `json:"project" yaml:"project"`
	Milestones []MilestoneSection `json:"milestones,omitempty" yaml:"milestones,omitempty"`
	Activities []ActivitySection  `json:"activities,omitempty" yaml:"activities,omitempty"`
	PEPs       []PEPSection       `json:"peps" yaml:"peps"`
}

// ProjectSection defines the project-level fields.
type ProjectSection struct {
	Title          string  `json:"title" yaml:"title"`
	BudgetBRL      int64   `json:"budget_brl" yaml:"budget_brl"`
	Unit           string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Location       string  `json:"location,omitempty" yaml:"location,omitempty"`
	Classification string  `json:"classification,omitempty" yaml:"classification,omitempty"`
	StartDate      *string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate        *string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	KPI            string  `json:"kpi,omitempty" yaml:"kpi,omitempty"`
	Description    string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// MilestoneSection defines a milestone; Ref must be unique within the file.
type MilestoneSection struct {
	Ref   string `json:"ref" yaml:"ref"`
	Title string `json:"title" yaml:"title"`
}

// ActivitySection defines an activity under the milestone named by
// MilestoneRef.
type ActivitySection struct {
	Ref          string `json:"ref" yaml:"ref"`
	MilestoneRef string `json:"milestone_ref" yaml:"milestone_ref"`
	Title        string `json:"title" yaml:"title"`
	Supplier     string `json:"supplier,omitempty" yaml:"supplier,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PEPSection defines a cost element. ActivityRef may be empty for projects
// below the structure threshold.
type PEPSection struct {
	ActivityRef string  `json:"activity_ref,omitempty" yaml:"activity_ref,omitempty"`
	Title       string  `json:"title" yaml:"title"`
	Year        int     `json:"year" yaml:"year"`
	AmountBRL   float64 `json:"amount_brl" yaml:"amount_brl"`
}

// Load reads and parses a draft file. The format follows the extension:
// .yaml/.yml is YAML, anything else is JSON.
func Load(path string) (*DraftFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading draft file: %w", err)
	}

	var f DraftFile
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing YAML draft file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing JSON draft file: %w", err)
		}
	}
	return &f, nil
}
