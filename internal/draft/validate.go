package draft

import (
	"fmt"
	"strings"

	"github.com/mfigueiredo/capx/internal/domain"
)

// ValidationError collects every precondition the draft violates. It is
// always raised before the first repository write, so it never implies
// anything to clean up.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "validation failed: " + e.Problems[0]
	}
	msg := fmt.Sprintf("validation failed (%d problems):", len(e.Problems))
	for _, p := range e.Problems {
		msg += "\n  - " + p
	}
	return msg
}

func validationErr(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// ValidateProjectBasics checks the fields every project needs before any
// write: a non-blank title and a positive integer budget.
func ValidateProjectBasics(p *domain.Project) error {
	var problems []string
	if !p.HasTitle() {
		problems = append(problems, "project title is required")
	}
	if p.BudgetBRL <= 0 {
		problems = append(problems, "project budget must be a positive integer amount in BRL")
	}
	return validationErr(problems)
}

// ValidateStructure checks completeness and consistency of the draft's
// milestone/activity/PEP structure. Whether structure is required is
// recomputed here from the budget, never taken from the caller.
func ValidateStructure(d *Draft) error {
	var problems []string
	required := d.Project.NeedsStructure()

	if len(d.PEPs) == 0 {
		problems = append(problems, "at least one cost element (PEP) is required")
	}

	if total := d.TotalPEPBRL(); total != d.Project.BudgetBRL {
		problems = append(problems, fmt.Sprintf(
			"PEP amounts sum to %d but the project budget is %d; they must match exactly",
			total, d.Project.BudgetBRL))
	}

	if required {
		if len(d.Milestones) == 0 {
			problems = append(problems, fmt.Sprintf(
				"projects with budget >= %d require at least one milestone", domain.StructureThresholdBRL))
		}
		if len(d.Activities) == 0 {
			problems = append(problems, fmt.Sprintf(
				"projects with budget >= %d require at least one activity", domain.StructureThresholdBRL))
		}
	}

	milestoneTemps := make(map[string]bool, len(d.Milestones))
	for _, m := range d.Milestones {
		if strings.TrimSpace(m.Title) == "" {
			problems = append(problems, "milestone title is required")
		}
		milestoneTemps[m.TempID] = true
	}

	activityTemps := make(map[string]bool, len(d.Activities))
	for _, a := range d.Activities {
		if strings.TrimSpace(a.Title) == "" {
			problems = append(problems, "activity title is required")
		}
		if !milestoneTemps[a.MilestoneTempID] {
			problems = append(problems, fmt.Sprintf(
				"activity %q references milestone %q which is not in the draft", a.Title, a.MilestoneTempID))
		}
		activityTemps[a.TempID] = true
	}

	for _, p := range d.PEPs {
		if domain.RoundBRL(p.AmountBRL) <= 0 {
			problems = append(problems, fmt.Sprintf("PEP %q must have a positive amount", p.Title))
		}
		if required && !activityTemps[p.ActivityTempID] {
			problems = append(problems, fmt.Sprintf(
				"PEP %q references activity %q which is not in the draft", p.Title, p.ActivityTempID))
		}
	}

	return validationErr(problems)
}
