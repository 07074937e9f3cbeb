package service

import (
	"context"

	"github.com/mfigueiredo/capx/internal/commit"
	"github.com/mfigueiredo/capx/internal/domain"
	"github.com/mfigueiredo/capx/internal/draft"
	"github.com/mfigueiredo/capx/internal/repository"
	"github.com/mfigueiredo/capx/internal/rules"
)

// ProjectStructure is a project's persisted structure, loaded for inspection.
type ProjectStructure struct {
	Milestones []*domain.Milestone
	Activities []*domain.Activity
	PEPs       []*domain.PEP
}

type ProjectService interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	GetPage(ctx context.Context, req repository.PageRequest) (*repository.ProjectPage, error)
	Structure(ctx context.Context, projectID int64) (*ProjectStructure, error)
	Delete(ctx context.Context, projectID int64, force bool) error
}

// CommitService runs the validation gates and hands the draft to the commit
// engine. One commit per draft may be in flight at a time.
type CommitService interface {
	CommitDraft(ctx context.Context, d *draft.Draft) (*commit.Result, error)
}

// ChecksReport pairs the ordered rule results with their summary.
type ChecksReport struct {
	Results []rules.RuleResult
	Summary rules.Summary
}

type WorkflowService interface {
	SendToApproval(ctx context.Context, projectID int64) (domain.ProjectStatus, error)
	BackToDraft(ctx context.Context, projectID int64) (domain.ProjectStatus, error)
	EvaluateChecks(ctx context.Context, projectID int64) (*ChecksReport, error)
}
