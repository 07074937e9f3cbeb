package repository

import (
	"context"

	"github.com/mfigueiredo/capx/internal/domain"
)

// PageRequest describes a cursor-paged read. PageToken is opaque: callers feed
// back the NextPageToken from the previous page. Statuses and ParentID are
// filters; a zero value means "no filter". Sort is "id" (default) or "title".
type PageRequest struct {
	ParentID  int64
	Statuses  []domain.ProjectStatus
	Sort      string
	PageSize  int
	PageToken string
}

// ProjectPage is one page of projects plus the cursor for the next page.
// NextPageToken is empty on the last page.
type ProjectPage struct {
	Items         []*domain.Project
	NextPageToken string
}

// Every repository call commits or fails independently on the backend; there
// is no cross-operation atomicity. Failures are always *RepositoryError.

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) (int64, error)
	Update(ctx context.Context, id int64, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	GetPage(ctx context.Context, req PageRequest) (*ProjectPage, error)
}

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) (int64, error)
	Update(ctx context.Context, id int64, m *domain.Milestone) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Milestone, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Milestone, error)
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) (int64, error)
	Update(ctx context.Context, id int64, a *domain.Activity) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)
	ListByMilestone(ctx context.Context, milestoneID int64) ([]*domain.Activity, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Activity, error)
}

type PEPRepo interface {
	Create(ctx context.Context, p *domain.PEP) (int64, error)
	Update(ctx context.Context, id int64, p *domain.PEP) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.PEP, error)
	ListByActivity(ctx context.Context, activityID int64) ([]*domain.PEP, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.PEP, error)
}
