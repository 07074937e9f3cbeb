// Package workflow gates status transitions of a project. Checks are pure
// functions over the current status; the actual mutation is a single
// repository update performed by Service.
package workflow

import (
	"context"
	"fmt"

	"github.com/mfigueiredo/capx/internal/domain"
	"github.com/mfigueiredo/capx/internal/repository"
)

// Decision is a transition check's outcome. Reason is set only when OK is
// false and is user-facing.
type Decision struct {
	OK     bool
	Reason string
}

func allowed() Decision {
	return Decision{OK: true}
}

func denied(reason string) Decision {
	return Decision{Reason: reason}
}

// CanSendToApproval reports whether a project with the given status may be
// submitted. Only never-submitted and draft projects qualify; rejected
// projects must go back to draft first.
func CanSendToApproval(status domain.ProjectStatus) Decision {
	switch status {
	case "", domain.StatusDraft:
		return allowed()
	case domain.StatusInApproval:
		return denied("Projeto já está em aprovação.")
	case domain.StatusApproved:
		return denied("Projeto já está aprovado.")
	case domain.StatusRejected:
		return denied("Projeto reprovado deve ser revisado antes de reenviar.")
	default:
		return denied(fmt.Sprintf("Status desconhecido: %q.", string(status)))
	}
}

// CanBackToDraft reports whether a project may return to draft. Approved
// projects never silently regress.
func CanBackToDraft(status domain.ProjectStatus) Decision {
	switch status {
	case "":
		return denied("Projeto ainda não foi enviado para aprovação.")
	case domain.StatusDraft:
		return denied("Projeto já está em rascunho.")
	case domain.StatusApproved:
		return denied("Projeto aprovado não pode voltar para rascunho.")
	default:
		return allowed()
	}
}

// IsLockedStatus is the advisory predicate the UI uses to block structural
// edits. It is not enforced by the commit engine.
func IsLockedStatus(status domain.ProjectStatus) bool {
	return status == domain.StatusInApproval || status == domain.StatusApproved
}

// Service performs the gated transitions against the repository.
type Service struct {
	projects repository.ProjectRepo
}

func NewService(projects repository.ProjectRepo) *Service {
	return &Service{projects: projects}
}

// SendToApproval moves a project to "Em aprovação". The rule engine is
// advisory only, so title and status are re-checked here against fresh
// state before the write.
func (s *Service) SendToApproval(ctx context.Context, projectID int64) (domain.ProjectStatus, error) {
	return s.transition(ctx, projectID, domain.StatusInApproval, CanSendToApproval)
}

// BackToDraft returns a project to "Rascunho" for revision.
func (s *Service) BackToDraft(ctx context.Context, projectID int64) (domain.ProjectStatus, error) {
	return s.transition(ctx, projectID, domain.StatusDraft, CanBackToDraft)
}

func (s *Service) transition(
	ctx context.Context,
	projectID int64,
	target domain.ProjectStatus,
	check func(domain.ProjectStatus) Decision,
) (domain.ProjectStatus, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("loading project: %w", err)
	}
	if !p.HasTitle() {
		return "", fmt.Errorf("project %d has no title", projectID)
	}
	if d := check(p.Status); !d.OK {
		return "", &TransitionError{From: p.Status, To: target, Reason: d.Reason}
	}

	p.Status = target
	if err := s.projects.Update(ctx, projectID, p); err != nil {
		return "", fmt.Errorf("updating status: %w", err)
	}
	return target, nil
}

// TransitionError reports a transition denied by its status check. No
// repository write happens when it is returned.
type TransitionError struct {
	From   domain.ProjectStatus
	To     domain.ProjectStatus
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %q -> %q denied: %s", e.From, e.To, e.Reason)
}
