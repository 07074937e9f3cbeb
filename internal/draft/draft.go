// Package draft holds the in-memory, not-yet-persisted representation of a
// project and its milestone/activity/PEP structure. A draft is owned by a
// single editing session, is mutated with zero network calls, and only ever
// reaches the repository through the commit engine.
package draft

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mfigueiredo/capx/internal/domain"
	"github.com/mfigueiredo/capx/internal/repository"
	"github.com/mfigueiredo/capx/internal/rules"
)

// MilestoneDraft is a milestone before commit. TempID identifies it inside
// the draft; RealID is non-zero only for entities hydrated from storage.
type MilestoneDraft struct {
	TempID string
	RealID int64
	Title  string
}

// ActivityDraft references its milestone by temp id.
type ActivityDraft struct {
	TempID          string
	RealID          int64
	MilestoneTempID string
	Title           string
	Supplier        string
	Description     string
}

// PEPDraft references its activity by temp id. AmountBRL is fractional here;
// it is rounded through domain.RoundBRL at validation and write time.
type PEPDraft struct {
	TempID         string
	RealID         int64
	ActivityTempID string
	Title          string
	Year           int
	AmountBRL      float64
}

// Draft is the full pre-commit state: one project plus its structure.
type Draft struct {
	Project    domain.Project
	Milestones []MilestoneDraft
	Activities []ActivityDraft
	PEPs       []PEPDraft
}

// New creates an empty draft for a new project.
func New(title string, budgetBRL int64) *Draft {
	return &Draft{
		Project: domain.Project{
			Title:     title,
			BudgetBRL: budgetBRL,
			Status:    domain.StatusDraft,
		},
	}
}

// NeedsStructure reports whether the draft's budget requires real structure.
func (d *Draft) NeedsStructure() bool {
	return d.Project.NeedsStructure()
}

// AddMilestone appends a milestone and returns its temp id.
func (d *Draft) AddMilestone(title string) string {
	tempID := uuid.New().String()
	d.Milestones = append(d.Milestones, MilestoneDraft{TempID: tempID, Title: title})
	return tempID
}

// AddActivity appends an activity under the milestone with the given temp id.
func (d *Draft) AddActivity(milestoneTempID, title string) (string, error) {
	if !d.hasMilestone(milestoneTempID) {
		return "", fmt.Errorf("milestone %q not found in draft", milestoneTempID)
	}
	tempID := uuid.New().String()
	d.Activities = append(d.Activities, ActivityDraft{
		TempID:          tempID,
		MilestoneTempID: milestoneTempID,
		Title:           title,
	})
	return tempID, nil
}

// AddPEP appends a cost element. activityTempID may be empty when the draft
// does not need structure; the commit engine then attaches the PEP to the
// synthetic technical activity.
func (d *Draft) AddPEP(activityTempID, title string, year int, amountBRL float64) (string, error) {
	if activityTempID != "" && !d.hasActivity(activityTempID) {
		return "", fmt.Errorf("activity %q not found in draft", activityTempID)
	}
	tempID := uuid.New().String()
	d.PEPs = append(d.PEPs, PEPDraft{
		TempID:         tempID,
		ActivityTempID: activityTempID,
		Title:          title,
		Year:           year,
		AmountBRL:      amountBRL,
	})
	return tempID, nil
}

// RemoveMilestone removes a milestone and cascades to its activities and
// their PEPs, all locally.
func (d *Draft) RemoveMilestone(tempID string) {
	kept := d.Milestones[:0]
	for _, m := range d.Milestones {
		if m.TempID != tempID {
			kept = append(kept, m)
		}
	}
	d.Milestones = kept

	// Collect first: RemoveActivity compacts the slice in place, so removing
	// while ranging over it would skip elements.
	var doomed []string
	for _, a := range d.Activities {
		if a.MilestoneTempID == tempID {
			doomed = append(doomed, a.TempID)
		}
	}
	for _, id := range doomed {
		d.RemoveActivity(id)
	}
}

// RemoveActivity removes an activity and cascades to its PEPs.
func (d *Draft) RemoveActivity(tempID string) {
	kept := d.Activities[:0]
	for _, a := range d.Activities {
		if a.TempID != tempID {
			kept = append(kept, a)
		}
	}
	d.Activities = kept

	keptPEPs := d.PEPs[:0]
	for _, p := range d.PEPs {
		if p.ActivityTempID != tempID {
			keptPEPs = append(keptPEPs, p)
		}
	}
	d.PEPs = keptPEPs
}

// RemovePEP removes a single cost element.
func (d *Draft) RemovePEP(tempID string) {
	kept := d.PEPs[:0]
	for _, p := range d.PEPs {
		if p.TempID != tempID {
			kept = append(kept, p)
		}
	}
	d.PEPs = kept
}

// TotalPEPBRL sums the rounded amount of every PEP. The same rounding is
// applied at write time, so this is the value the budget-equality invariant
// compares against.
func (d *Draft) TotalPEPBRL() int64 {
	var total int64
	for _, p := range d.PEPs {
		total += domain.RoundBRL(p.AmountBRL)
	}
	return total
}

// Snapshot flattens the draft for the approval rule engine.
func (d *Draft) Snapshot() rules.Snapshot {
	return rules.Snapshot{
		Title:      d.Project.Title,
		Status:     d.Project.Status,
		Milestones: len(d.Milestones),
		Activities: len(d.Activities),
		PEPs:       len(d.PEPs),
		TotalBRL:   float64(d.TotalPEPBRL()),
		Unit:       d.Project.Unit,
		Location:   d.Project.Location,
	}
}

func (d *Draft) hasMilestone(tempID string) bool {
	for _, m := range d.Milestones {
		if m.TempID == tempID {
			return true
		}
	}
	return false
}

func (d *Draft) hasActivity(tempID string) bool {
	for _, a := range d.Activities {
		if a.TempID == tempID {
			return true
		}
	}
	return false
}

// Hydrate loads a persisted project and its structure into a draft for
// edit/view mode. Hydrated entities carry their real ids and fresh temp ids;
// references are re-expressed through the temp ids so local edits work the
// same in both modes.
func Hydrate(
	ctx context.Context,
	projects repository.ProjectRepo,
	milestones repository.MilestoneRepo,
	activities repository.ActivityRepo,
	peps repository.PEPRepo,
	projectID int64,
) (*Draft, error) {
	p, err := projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}

	d := &Draft{Project: *p}

	ms, err := milestones.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading milestones: %w", err)
	}
	msTemp := make(map[int64]string, len(ms))
	for _, m := range ms {
		tempID := uuid.New().String()
		msTemp[m.ID] = tempID
		d.Milestones = append(d.Milestones, MilestoneDraft{
			TempID: tempID,
			RealID: m.ID,
			Title:  m.Title,
		})
	}

	as, err := activities.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	actTemp := make(map[int64]string, len(as))
	for _, a := range as {
		tempID := uuid.New().String()
		actTemp[a.ID] = tempID
		d.Activities = append(d.Activities, ActivityDraft{
			TempID:          tempID,
			RealID:          a.ID,
			MilestoneTempID: msTemp[a.MilestoneID],
			Title:           a.Title,
			Supplier:        a.Supplier,
			Description:     a.Description,
		})
	}

	ps, err := peps.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading peps: %w", err)
	}
	for _, pep := range ps {
		d.PEPs = append(d.PEPs, PEPDraft{
			TempID:         uuid.New().String(),
			RealID:         pep.ID,
			ActivityTempID: actTemp[pep.ActivityID],
			Title:          pep.Title,
			Year:           pep.Year,
			AmountBRL:      float64(pep.AmountBRL),
		})
	}

	return d, nil
}
