package service

import (
	"context"
	"time"

	"github.com/mfigueiredo/capx/internal/domain"
	"github.com/mfigueiredo/capx/internal/draft"
	"github.com/mfigueiredo/capx/internal/repository"
	"github.com/mfigueiredo/capx/internal/rules"
	"github.com/mfigueiredo/capx/internal/workflow"
)

type workflowService struct {
	transitions *workflow.Service
	projects    repository.ProjectRepo
	milestones  repository.MilestoneRepo
	activities  repository.ActivityRepo
	peps        repository.PEPRepo
	observer    UseCaseObserver
}

func NewWorkflowService(
	transitions *workflow.Service,
	projects repository.ProjectRepo,
	milestones repository.MilestoneRepo,
	activities repository.ActivityRepo,
	peps repository.PEPRepo,
	observers ...UseCaseObserver,
) WorkflowService {
	return &workflowService{
		transitions: transitions,
		projects:    projects,
		milestones:  milestones,
		activities:  activities,
		peps:        peps,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *workflowService) SendToApproval(ctx context.Context, projectID int64) (domain.ProjectStatus, error) {
	return s.observe(ctx, "send_to_approval", projectID, s.transitions.SendToApproval)
}

func (s *workflowService) BackToDraft(ctx context.Context, projectID int64) (domain.ProjectStatus, error) {
	return s.observe(ctx, "back_to_draft", projectID, s.transitions.BackToDraft)
}

// EvaluateChecks hydrates the persisted project into a draft snapshot and
// runs the approval checklist over it. Advisory only: SendToApproval
// re-checks title and status itself.
func (s *workflowService) EvaluateChecks(ctx context.Context, projectID int64) (*ChecksReport, error) {
	d, err := draft.Hydrate(ctx, s.projects, s.milestones, s.activities, s.peps, projectID)
	if err != nil {
		return nil, err
	}
	results := rules.EvaluateApprovalRules(d.Snapshot())
	return &ChecksReport{Results: results, Summary: rules.Summarize(results)}, nil
}

func (s *workflowService) observe(
	ctx context.Context,
	name string,
	projectID int64,
	fn func(context.Context, int64) (domain.ProjectStatus, error),
) (domain.ProjectStatus, error) {
	start := time.Now()
	status, err := fn(ctx, projectID)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"project_id": projectID, "status": string(status)},
		StartedAt: start,
	})
	return status, err
}
