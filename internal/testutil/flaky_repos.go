// Failure-injection decorators for the repository ports. They wrap real
// repositories and fail the Nth Create or any Delete, which lets rollback
// tests break a commit at a precise step and then watch the compensation
// path. Counting starts at 1; a zero FailCreateOn never fires.
package testutil

import (
	"context"
	"sync/atomic"

	"github.com/mfigueiredo/capx/internal/domain"
	"github.com/mfigueiredo/capx/internal/repository"
)

type injector struct {
	createCount  atomic.Int32
	FailCreateOn int32
	CreateErr    error
	FailDeletes  bool
	DeleteErr    error
}

func (i *injector) onCreate() error {
	if i.FailCreateOn > 0 && i.createCount.Add(1) == i.FailCreateOn {
		return i.CreateErr
	}
	return nil
}

func (i *injector) onDelete() error {
	if i.FailDeletes {
		return i.DeleteErr
	}
	return nil
}

// FlakyProjectRepo wraps a ProjectRepo with failure injection.
type FlakyProjectRepo struct {
	repository.ProjectRepo
	injector
}

func (r *FlakyProjectRepo) Create(ctx context.Context, p *domain.Project) (int64, error) {
	if err := r.onCreate(); err != nil {
		return 0, err
	}
	return r.ProjectRepo.Create(ctx, p)
}

func (r *FlakyProjectRepo) Delete(ctx context.Context, id int64) error {
	if err := r.onDelete(); err != nil {
		return err
	}
	return r.ProjectRepo.Delete(ctx, id)
}

// FlakyMilestoneRepo wraps a MilestoneRepo with failure injection.
type FlakyMilestoneRepo struct {
	repository.MilestoneRepo
	injector
}

func (r *FlakyMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) (int64, error) {
	if err := r.onCreate(); err != nil {
		return 0, err
	}
	return r.MilestoneRepo.Create(ctx, m)
}

func (r *FlakyMilestoneRepo) Delete(ctx context.Context, id int64) error {
	if err := r.onDelete(); err != nil {
		return err
	}
	return r.MilestoneRepo.Delete(ctx, id)
}

// FlakyActivityRepo wraps an ActivityRepo with failure injection.
type FlakyActivityRepo struct {
	repository.ActivityRepo
	injector
}

func (r *FlakyActivityRepo) Create(ctx context.Context, a *domain.Activity) (int64, error) {
	if err := r.onCreate(); err != nil {
		return 0, err
	}
	return r.ActivityRepo.Create(ctx, a)
}

func (r *FlakyActivityRepo) Delete(ctx context.Context, id int64) error {
	if err := r.onDelete(); err != nil {
		return err
	}
	return r.ActivityRepo.Delete(ctx, id)
}

// FlakyPEPRepo wraps a PEPRepo with failure injection.
type FlakyPEPRepo struct {
	repository.PEPRepo
	injector
}

func (r *FlakyPEPRepo) Create(ctx context.Context, p *domain.PEP) (int64, error) {
	if err := r.onCreate(); err != nil {
		return 0, err
	}
	return r.PEPRepo.Create(ctx, p)
}

func (r *FlakyPEPRepo) Delete(ctx context.Context, id int64) error {
	if err := r.onDelete(); err != nil {
		return err
	}
	return r.PEPRepo.Delete(ctx, id)
}
