package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mfigueiredo/capx/internal/commit"
	"github.com/mfigueiredo/capx/internal/draft"
)

// ErrCommitInFlight is returned when a second commit of the same draft starts
// before the first finishes. The engine itself does not serialize calls; this
// guard is the caller-side protection the engine's contract requires.
var ErrCommitInFlight = errors.New("a commit for this draft is already in flight")

type commitService struct {
	orch     *commit.Orchestrator
	observer UseCaseObserver

	mu       sync.Mutex
	inFlight map[*draft.Draft]struct{}
}

func NewCommitService(orch *commit.Orchestrator, observers ...UseCaseObserver) CommitService {
	return &commitService{
		orch:     orch,
		observer: useCaseObserverOrNoop(observers),
		inFlight: make(map[*draft.Draft]struct{}),
	}
}

func (s *commitService) CommitDraft(ctx context.Context, d *draft.Draft) (*commit.Result, error) {
	if !s.acquire(d) {
		return nil, ErrCommitInFlight
	}
	defer s.release(d)

	start := time.Now()
	res, err := s.commit(ctx, d)

	fields := map[string]any{
		"project_id": d.Project.ID,
		"milestones": len(d.Milestones),
		"activities": len(d.Activities),
		"peps":       len(d.PEPs),
	}
	if res != nil {
		fields["project_id"] = res.ProjectID
		fields["journal_size"] = res.Journal.Size()
	}
	var cse *commit.CommitStructureError
	if errors.As(err, &cse) {
		fields["failed_phase"] = string(cse.Phase)
		fields["rollback_status"] = string(cse.Rollback.Status)
		fields["rollback_attempts"] = cse.Rollback.Attempts
		fields["rollback_failures"] = len(cse.Rollback.Failures)
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "commit_draft",
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: start,
	})

	return res, err
}

func (s *commitService) commit(ctx context.Context, d *draft.Draft) (*commit.Result, error) {
	// Validation gates run on the exact draft being committed; any failure
	// here happens before the first write and never needs rollback.
	if err := draft.ValidateProjectBasics(&d.Project); err != nil {
		return nil, err
	}
	if err := draft.ValidateStructure(d); err != nil {
		return nil, err
	}

	args := commit.Args{
		ProjectID:      d.Project.ID,
		Project:        d.Project,
		NeedsStructure: d.NeedsStructure(),
	}
	// Only entities the repository has not assigned an id yet are created;
	// hydrated entities already exist and are left untouched.
	for _, m := range d.Milestones {
		if m.RealID == 0 {
			args.Milestones = append(args.Milestones, m)
		}
	}
	for _, a := range d.Activities {
		if a.RealID == 0 {
			args.Activities = append(args.Activities, a)
		}
	}
	for _, p := range d.PEPs {
		if p.RealID == 0 {
			args.PEPs = append(args.PEPs, p)
		}
	}

	res, err := s.orch.Commit(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("committing project %q: %w", d.Project.Title, err)
	}

	// The draft is now persisted: address everything by real id from here on.
	d.Project.ID = res.ProjectID
	return res, nil
}

func (s *commitService) acquire(d *draft.Draft) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[d]; busy {
		return false
	}
	s.inFlight[d] = struct{}{}
	return true
}

func (s *commitService) release(d *draft.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, d)
}
