package service

import (
	"context"
	"fmt"

	"github.com/mfigueiredo/capx/internal/domain"
	"github.com/mfigueiredo/capx/internal/repository"
	"github.com/mfigueiredo/capx/internal/workflow"
)

type projectService struct {
	projects   repository.ProjectRepo
	milestones repository.MilestoneRepo
	activities repository.ActivityRepo
	peps       repository.PEPRepo
}

func NewProjectService(
	projects repository.ProjectRepo,
	milestones repository.MilestoneRepo,
	activities repository.ActivityRepo,
	peps repository.PEPRepo,
) ProjectService {
	return &projectService{
		projects:   projects,
		milestones: milestones,
		activities: activities,
		peps:       peps,
	}
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) GetPage(ctx context.Context, req repository.PageRequest) (*repository.ProjectPage, error) {
	return s.projects.GetPage(ctx, req)
}

func (s *projectService) Structure(ctx context.Context, projectID int64) (*ProjectStructure, error) {
	ms, err := s.milestones.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	as, err := s.activities.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ps, err := s.peps.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &ProjectStructure{Milestones: ms, Activities: as, PEPs: ps}, nil
}

// Delete removes a project and its whole structure. The backend never
// cascades, so children go first: PEPs, activities, milestones, project.
// Locked projects are refused unless force is set.
func (s *projectService) Delete(ctx context.Context, projectID int64, force bool) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !force && workflow.IsLockedStatus(p.Status) {
		return fmt.Errorf("project %d is %s; use force to delete anyway", projectID, p.Status)
	}

	st, err := s.Structure(ctx, projectID)
	if err != nil {
		return err
	}
	for _, pep := range st.PEPs {
		if err := s.peps.Delete(ctx, pep.ID); err != nil {
			return fmt.Errorf("deleting pep %d: %w", pep.ID, err)
		}
	}
	for _, a := range st.Activities {
		if err := s.activities.Delete(ctx, a.ID); err != nil {
			return fmt.Errorf("deleting activity %d: %w", a.ID, err)
		}
	}
	for _, m := range st.Milestones {
		if err := s.milestones.Delete(ctx, m.ID); err != nil {
			return fmt.Errorf("deleting milestone %d: %w", m.ID, err)
		}
	}
	return s.projects.Delete(ctx, projectID)
}
