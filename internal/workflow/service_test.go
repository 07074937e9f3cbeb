package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mfigueiredo/capx/internal/domain"
	"github.com/mfigueiredo/capx/internal/repository"
	"github.com/mfigueiredo/capx/internal/testutil"
	"github.com/mfigueiredo/capx/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(t *testing.T, repo repository.ProjectRepo, status domain.ProjectStatus) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), &domain.Project{
		Title:     "Modernização da subestação",
		BudgetBRL: 750_000,
		Status:    status,
	})
	require.NoError(t, err)
	return id
}

func TestSendToApproval_FromDraft(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	svc := workflow.NewService(repo)
	ctx := context.Background()

	id := newProject(t, repo, domain.StatusDraft)

	status, err := svc.SendToApproval(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInApproval, status)

	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInApproval, p.Status)
}

func TestSendToApproval_ApprovedIsDenied(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	svc := workflow.NewService(repo)
	ctx := context.Background()

	id := newProject(t, repo, domain.StatusApproved)

	_, err := svc.SendToApproval(ctx, id)
	require.Error(t, err)

	var te *workflow.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "Projeto já está aprovado.", te.Reason)

	// Denied transitions never write.
	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, p.Status)
}

func TestBackToDraft_FromRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	svc := workflow.NewService(repo)
	ctx := context.Background()

	id := newProject(t, repo, domain.StatusRejected)

	status, err := svc.BackToDraft(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, status)
}

func TestBackToDraft_ApprovedNeverRegresses(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	svc := workflow.NewService(repo)
	ctx := context.Background()

	id := newProject(t, repo, domain.StatusApproved)

	_, err := svc.BackToDraft(ctx, id)
	var te *workflow.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "Projeto aprovado não pode voltar para rascunho.", te.Reason)

	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, p.Status)
}

func TestTransition_MissingProject(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := workflow.NewService(repository.NewSQLiteProjectRepo(database))

	_, err := svc.SendToApproval(context.Background(), 9999)
	require.Error(t, err)
	var re *repository.RepositoryError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 404, re.Status)
}
