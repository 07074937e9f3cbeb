// Package commit persists a project draft and its structure through a
// repository that offers no multi-record transactions. The forward pass
// creates entities strictly in dependency order (project, milestones,
// activities, PEPs), journaling every assigned id; on any failure it deletes
// the journaled entities in reverse dependency order, best effort, and
// surfaces exactly which compensating deletes succeeded.
package commit

import (
	"context"
	"fmt"

	"github.com/mfigueiredo/capx/internal/domain"
	"github.com/mfigueiredo/capx/internal/draft"
	"github.com/mfigueiredo/capx/internal/repository"
)

// Phase names the step of the forward pass a commit attempt is in. It makes
// partial-failure states first-class: a CommitStructureError always says
// which phase was running when the cause occurred.
type Phase string

const (
	PhasePending            Phase = "pending"
	PhaseCreatingProject    Phase = "creating_project"
	PhaseCreatingMilestones Phase = "creating_milestones"
	PhaseCreatingActivities Phase = "creating_activities"
	PhaseCreatingPEPs       Phase = "creating_peps"
	PhaseCommitted          Phase = "committed"
	PhaseRollingBack        Phase = "rolling_back"
	PhaseRolledBackComplete Phase = "rolled_back_complete"
	PhaseRolledBackPartial  Phase = "rolled_back_partial"
)

// Args is one commit attempt's input. ProjectID is zero when the commit must
// create the project. The caller has already run the validation gates on the
// exact draft these slices came from; milestones/activities/PEPs here are
// only the entities that do not yet exist in storage.
type Args struct {
	ProjectID      int64
	Project        domain.Project
	NeedsStructure bool
	Milestones     []draft.MilestoneDraft
	Activities     []draft.ActivityDraft
	PEPs           []draft.PEPDraft
}

// Result is a successful commit: the project's final id and the journal of
// everything this attempt created.
type Result struct {
	ProjectID int64
	Journal   Journal
}

// Orchestrator sequences the forward pass and owns rollback. It holds no
// state across calls; concurrent commits of the same draft must be prevented
// by the caller.
type Orchestrator struct {
	projects   repository.ProjectRepo
	milestones repository.MilestoneRepo
	activities repository.ActivityRepo
	peps       repository.PEPRepo
}

func NewOrchestrator(
	projects repository.ProjectRepo,
	milestones repository.MilestoneRepo,
	activities repository.ActivityRepo,
	peps repository.PEPRepo,
) *Orchestrator {
	return &Orchestrator{
		projects:   projects,
		milestones: milestones,
		activities: activities,
		peps:       peps,
	}
}

// Commit persists the draft. On failure every entity this call created is
// deleted again, best effort, before the returned *CommitStructureError
// reports the cause, the journal, and the rollback outcome.
func (o *Orchestrator) Commit(ctx context.Context, args Args) (*Result, error) {
	// The flag is caller-supplied, but a disagreement with the budget means
	// the draft changed between validation and commit. Fail before the first
	// write rather than silently violating the structure invariant.
	if derived := args.Project.NeedsStructure(); derived != args.NeedsStructure {
		return nil, &CommitStructureError{
			Phase:    PhasePending,
			Rollback: RollbackResult{Status: RollbackComplete},
			Cause: &InternalConsistencyError{Message: fmt.Sprintf(
				"needsStructure flag %t disagrees with budget %d", args.NeedsStructure, args.Project.BudgetBRL)},
		}
	}

	st := &attempt{phase: PhasePending}
	projectID, err := o.forward(ctx, args, st)
	if err != nil {
		st.phase = PhaseRollingBack
		rb := o.rollback(&st.journal)
		if rb.Status == RollbackComplete {
			st.phase = PhaseRolledBackComplete
		} else {
			st.phase = PhaseRolledBackPartial
		}
		return nil, &CommitStructureError{
			Phase:    st.failedIn,
			Journal:  st.journal,
			Rollback: rb,
			Cause:    err,
		}
	}

	st.phase = PhaseCommitted
	return &Result{ProjectID: projectID, Journal: st.journal}, nil
}

// attempt is the per-call state: the journal plus the phase the forward pass
// is in, and the phase it failed in.
type attempt struct {
	phase    Phase
	failedIn Phase
	journal  Journal
}

func (st *attempt) enter(p Phase) {
	st.phase = p
	st.failedIn = p
}

func (o *Orchestrator) forward(ctx context.Context, args Args, st *attempt) (int64, error) {
	st.enter(PhaseCreatingProject)
	projectID := args.ProjectID
	if projectID == 0 {
		id, err := o.projects.Create(ctx, &args.Project)
		if err != nil {
			return 0, fmt.Errorf("creating project: %w", err)
		}
		projectID = id
		st.journal.recordProject(id)
	} else {
		if err := o.projects.Update(ctx, projectID, &args.Project); err != nil {
			return 0, fmt.Errorf("updating project: %w", err)
		}
	}

	if !args.NeedsStructure {
		return projectID, o.createSyntheticStructure(ctx, projectID, args.PEPs, st)
	}
	return projectID, o.createStructure(ctx, projectID, args, st)
}

// createSyntheticStructure hosts the draft's PEPs under exactly one technical
// milestone and one technical activity, regardless of PEP count.
func (o *Orchestrator) createSyntheticStructure(ctx context.Context, projectID int64, peps []draft.PEPDraft, st *attempt) error {
	st.enter(PhaseCreatingMilestones)
	milestoneID, err := o.milestones.Create(ctx, &domain.Milestone{
		ProjectID: projectID,
		Title:     domain.SyntheticMilestoneTitle,
	})
	if err != nil {
		return fmt.Errorf("creating technical milestone: %w", err)
	}
	st.journal.recordMilestone(milestoneID)

	st.enter(PhaseCreatingActivities)
	activityID, err := o.activities.Create(ctx, &domain.Activity{
		MilestoneID: milestoneID,
		ProjectID:   projectID,
		Title:       domain.SyntheticActivityTitle,
	})
	if err != nil {
		return fmt.Errorf("creating technical activity: %w", err)
	}
	st.journal.recordActivity(activityID)

	st.enter(PhaseCreatingPEPs)
	for _, p := range peps {
		id, err := o.peps.Create(ctx, &domain.PEP{
			ActivityID: activityID,
			ProjectID:  projectID,
			Title:      p.Title,
			Year:       p.Year,
			AmountBRL:  domain.RoundBRL(p.AmountBRL),
		})
		if err != nil {
			return fmt.Errorf("creating pep %q: %w", p.Title, err)
		}
		st.journal.recordPEP(id)
	}
	return nil
}

// createStructure creates the draft's real structure in input order,
// resolving the temp ids each later entity references through maps scoped to
// this call.
func (o *Orchestrator) createStructure(ctx context.Context, projectID int64, args Args, st *attempt) error {
	st.enter(PhaseCreatingMilestones)
	milestoneIDs := make(map[string]int64, len(args.Milestones))
	for _, m := range args.Milestones {
		id, err := o.milestones.Create(ctx, &domain.Milestone{
			ProjectID: projectID,
			Title:     m.Title,
		})
		if err != nil {
			return fmt.Errorf("creating milestone %q: %w", m.Title, err)
		}
		st.journal.recordMilestone(id)
		milestoneIDs[m.TempID] = id
	}

	st.enter(PhaseCreatingActivities)
	activityIDs := make(map[string]int64, len(args.Activities))
	for _, a := range args.Activities {
		milestoneID, ok := milestoneIDs[a.MilestoneTempID]
		if !ok {
			return &InternalConsistencyError{Message: fmt.Sprintf(
				"activity %q references unknown milestone temp id %q", a.Title, a.MilestoneTempID)}
		}
		id, err := o.activities.Create(ctx, &domain.Activity{
			MilestoneID: milestoneID,
			ProjectID:   projectID,
			Title:       a.Title,
			Supplier:    a.Supplier,
			Description: a.Description,
		})
		if err != nil {
			return fmt.Errorf("creating activity %q: %w", a.Title, err)
		}
		st.journal.recordActivity(id)
		activityIDs[a.TempID] = id
	}

	st.enter(PhaseCreatingPEPs)
	for _, p := range args.PEPs {
		activityID, ok := activityIDs[p.ActivityTempID]
		if !ok {
			return &InternalConsistencyError{Message: fmt.Sprintf(
				"pep %q references unknown activity temp id %q", p.Title, p.ActivityTempID)}
		}
		id, err := o.peps.Create(ctx, &domain.PEP{
			ActivityID: activityID,
			ProjectID:  projectID,
			Title:      p.Title,
			Year:       p.Year,
			AmountBRL:  domain.RoundBRL(p.AmountBRL),
		})
		if err != nil {
			return fmt.Errorf("creating pep %q: %w", p.Title, err)
		}
		st.journal.recordPEP(id)
	}
	return nil
}

// rollback deletes journaled entities in strict reverse dependency order:
// PEPs newest first, then activities, then milestones, then the project if
// this attempt created it. A failed delete never stops the remaining
// attempts. It runs on a fresh context so a canceled commit context cannot
// also cancel cleanup.
func (o *Orchestrator) rollback(journal *Journal) RollbackResult {
	ctx := context.Background()
	res := RollbackResult{Status: RollbackComplete}

	del := func(entity string, id int64, fn func(context.Context, int64) error) {
		res.Attempts++
		if err := fn(ctx, id); err != nil {
			res.Failures = append(res.Failures, RollbackFailure{
				Entity:  entity,
				ID:      id,
				Message: err.Error(),
			})
		}
	}

	for i := len(journal.PEPIDs) - 1; i >= 0; i-- {
		del("pep", journal.PEPIDs[i], o.peps.Delete)
	}
	for i := len(journal.ActivityIDs) - 1; i >= 0; i-- {
		del("activity", journal.ActivityIDs[i], o.activities.Delete)
	}
	for i := len(journal.MilestoneIDs) - 1; i >= 0; i-- {
		del("milestone", journal.MilestoneIDs[i], o.milestones.Delete)
	}
	if journal.CreatedProjectID != nil {
		del("project", *journal.CreatedProjectID, o.projects.Delete)
	}

	if len(res.Failures) > 0 {
		res.Status = RollbackPartial
	}
	return res
}
