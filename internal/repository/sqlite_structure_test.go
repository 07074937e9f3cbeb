package repository_test

import (
	"context"
	"testing"

	"github.com/mfigueiredo/capx/internal/domain"
	"github.com/mfigueiredo/capx/internal/repository"
	"github.com/mfigueiredo/capx/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type structureRepos struct {
	projects   *repository.SQLiteProjectRepo
	milestones *repository.SQLiteMilestoneRepo
	activities *repository.SQLiteActivityRepo
	peps       *repository.SQLitePEPRepo
}

func newStructureRepos(t *testing.T) structureRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return structureRepos{
		projects:   repository.NewSQLiteProjectRepo(database),
		milestones: repository.NewSQLiteMilestoneRepo(database),
		activities: repository.NewSQLiteActivityRepo(database),
		peps:       repository.NewSQLitePEPRepo(database),
	}
}

func seedHierarchy(t *testing.T, r structureRepos) (projectID, milestoneID, activityID, pepID int64) {
	t.Helper()
	ctx := context.Background()

	projectID, err := r.projects.Create(ctx, &domain.Project{
		Title: "Nova caldeira", BudgetBRL: 2_000_000, Status: domain.StatusDraft,
	})
	require.NoError(t, err)

	milestoneID, err = r.milestones.Create(ctx, &domain.Milestone{
		ProjectID: projectID, Title: "Obras civis",
	})
	require.NoError(t, err)

	activityID, err = r.activities.Create(ctx, &domain.Activity{
		MilestoneID: milestoneID, ProjectID: projectID,
		Title: "Fundações", Supplier: "Construtora Alfa",
	})
	require.NoError(t, err)

	pepID, err = r.peps.Create(ctx, &domain.PEP{
		ActivityID: activityID, ProjectID: projectID,
		Title: "PEP-2026-01", Year: 2026, AmountBRL: 2_000_000,
	})
	require.NoError(t, err)

	return projectID, milestoneID, activityID, pepID
}

func TestStructureRepos_ListByParent(t *testing.T) {
	r := newStructureRepos(t)
	ctx := context.Background()
	projectID, milestoneID, activityID, pepID := seedHierarchy(t, r)

	ms, err := r.milestones.ListByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, milestoneID, ms[0].ID)

	acts, err := r.activities.ListByMilestone(ctx, milestoneID)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "Fundações", acts[0].Title)
	assert.Equal(t, "Construtora Alfa", acts[0].Supplier)

	acts, err = r.activities.ListByProject(ctx, projectID)
	require.NoError(t, err)
	assert.Len(t, acts, 1)

	peps, err := r.peps.ListByActivity(ctx, activityID)
	require.NoError(t, err)
	require.Len(t, peps, 1)
	assert.Equal(t, pepID, peps[0].ID)
	assert.Equal(t, int64(2_000_000), peps[0].AmountBRL)

	peps, err = r.peps.ListByProject(ctx, projectID)
	require.NoError(t, err)
	assert.Len(t, peps, 1)
}

func TestStructureRepos_ListByParentEmpty(t *testing.T) {
	r := newStructureRepos(t)
	ctx := context.Background()

	ms, err := r.milestones.ListByProject(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, ms)

	peps, err := r.peps.ListByActivity(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, peps)
}

func TestStructureRepos_DeleteRestrictedByChildren(t *testing.T) {
	r := newStructureRepos(t)
	ctx := context.Background()
	projectID, milestoneID, activityID, pepID := seedHierarchy(t, r)

	// Parents with live children cannot be deleted; the schema never cascades.
	require.Error(t, r.projects.Delete(ctx, projectID))
	require.Error(t, r.milestones.Delete(ctx, milestoneID))
	require.Error(t, r.activities.Delete(ctx, activityID))

	// Leaf-first order succeeds.
	require.NoError(t, r.peps.Delete(ctx, pepID))
	require.NoError(t, r.activities.Delete(ctx, activityID))
	require.NoError(t, r.milestones.Delete(ctx, milestoneID))
	require.NoError(t, r.projects.Delete(ctx, projectID))
}

func TestStructureRepos_GetByIDNotFound(t *testing.T) {
	r := newStructureRepos(t)
	ctx := context.Background()

	_, err := r.milestones.GetByID(ctx, 7)
	assert.True(t, repository.NotFound(err))
	_, err = r.activities.GetByID(ctx, 7)
	assert.True(t, repository.NotFound(err))
	_, err = r.peps.GetByID(ctx, 7)
	assert.True(t, repository.NotFound(err))
}

func TestStructureRepos_UpdatePEP(t *testing.T) {
	r := newStructureRepos(t)
	ctx := context.Background()
	_, _, _, pepID := seedHierarchy(t, r)

	p, err := r.peps.GetByID(ctx, pepID)
	require.NoError(t, err)
	p.AmountBRL = 1_750_000
	p.Year = 2027
	require.NoError(t, r.peps.Update(ctx, pepID, p))

	got, err := r.peps.GetByID(ctx, pepID)
	require.NoError(t, err)
	assert.Equal(t, int64(1_750_000), got.AmountBRL)
	assert.Equal(t, 2027, got.Year)
}
