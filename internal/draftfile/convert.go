package draftfile

import (
	"fmt"
	"time"

	"github.com/mfigueiredo/capx/internal/draft"
)

const dateLayout = "2006-01-02"

// ToDraft converts a parsed draft file into a draft, replacing string refs
// with generated temp ids. Refs must be unique and must resolve; the
// completeness gates (budget equality, structure threshold) stay with
// draft.ValidateStructure.
func ToDraft(f *DraftFile) (*draft.Draft, error) {
	d := draft.New(f.Project.Title, f.Project.BudgetBRL)
	d.Project.Unit = f.Project.Unit
	d.Project.Location = f.Project.Location
	d.Project.Classification = f.Project.Classification
	d.Project.KPI = f.Project.KPI
	d.Project.Description = f.Project.Description

	var err error
	if d.Project.StartDate, err = parseDate("project.start_date", f.Project.StartDate); err != nil {
		return nil, err
	}
	if d.Project.EndDate, err = parseDate("project.end_date", f.Project.EndDate); err != nil {
		return nil, err
	}

	milestoneTemps := make(map[string]string, len(f.Milestones))
	for i, m := range f.Milestones {
		if m.Ref == "" {
			return nil, fmt.Errorf("milestones[%d]: ref is required", i)
		}
		if _, dup := milestoneTemps[m.Ref]; dup {
			return nil, fmt.Errorf("milestones[%d]: duplicate ref %q", i, m.Ref)
		}
		milestoneTemps[m.Ref] = d.AddMilestone(m.Title)
	}

	activityTemps := make(map[string]string, len(f.Activities))
	for i, a := range f.Activities {
		if a.Ref == "" {
			return nil, fmt.Errorf("activities[%d]: ref is required", i)
		}
		if _, dup := activityTemps[a.Ref]; dup {
			return nil, fmt.Errorf("activities[%d]: duplicate ref %q", i, a.Ref)
		}
		milestoneTemp, ok := milestoneTemps[a.MilestoneRef]
		if !ok {
			return nil, fmt.Errorf("activities[%d]: milestone_ref %q not found", i, a.MilestoneRef)
		}
		tempID, err := d.AddActivity(milestoneTemp, a.Title)
		if err != nil {
			return nil, fmt.Errorf("activities[%d]: %w", i, err)
		}
		activityTemps[a.Ref] = tempID

		for j := range d.Activities {
			if d.Activities[j].TempID == tempID {
				d.Activities[j].Supplier = a.Supplier
				d.Activities[j].Description = a.Description
			}
		}
	}

	for i, p := range f.PEPs {
		activityTemp := ""
		if p.ActivityRef != "" {
			var ok bool
			if activityTemp, ok = activityTemps[p.ActivityRef]; !ok {
				return nil, fmt.Errorf("peps[%d]: activity_ref %q not found", i, p.ActivityRef)
			}
		}
		if _, err := d.AddPEP(activityTemp, p.Title, p.Year, p.AmountBRL); err != nil {
			return nil, fmt.Errorf("peps[%d]: %w", i, err)
		}
	}

	return d, nil
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date %q (expected YYYY-MM-DD)", field, *s)
	}
	return &t, nil
}
