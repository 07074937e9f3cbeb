package domain

import (
	"strings"
	"time"
)

// Project is a CAPEX project. ID is assigned by the repository on create and
// is zero before the project has been persisted. BudgetBRL is in whole reais.
// The descriptive fields after Status are opaque to the commit engine.
type Project struct {
	ID             int64
	Title          string
	BudgetBRL      int64
	Status         ProjectStatus
	Unit           string
	Location       string
	Classification string
	StartDate      *time.Time
	EndDate        *time.Time
	KPI            string
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasTitle reports whether Title contains anything besides whitespace.
func (p *Project) HasTitle() bool {
	return strings.TrimSpace(p.Title) != ""
}

// NeedsStructure reports whether the project's budget is at or above the
// structure threshold, requiring at least one real milestone and activity.
func (p *Project) NeedsStructure() bool {
	return p.BudgetBRL >= StructureThresholdBRL
}
