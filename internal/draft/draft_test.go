package draft_test

import (
	"context"
	"testing"

	"github.com/mfigueiredo/capx/internal/domain"
	"github.com/mfigueiredo/capx/internal/draft"
	"github.com/mfigueiredo/capx/internal/repository"
	"github.com/mfigueiredo/capx/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_AddRejectsUnknownRefs(t *testing.T) {
	d := draft.New("Nova planta", 2_000_000)

	_, err := d.AddActivity("nope", "Fundações")
	assert.Error(t, err)

	_, err = d.AddPEP("nope", "Concreto", 2026, 100)
	assert.Error(t, err)

	// Empty activity ref is allowed: the engine hosts such PEPs under the
	// synthetic activity.
	_, err = d.AddPEP("", "Concreto", 2026, 100)
	assert.NoError(t, err)
}

func TestDraft_RemoveMilestoneCascades(t *testing.T) {
	d := testutil.StructuredDraft(t)
	require.Len(t, d.Milestones, 2)
	require.Len(t, d.Activities, 3)
	require.Len(t, d.PEPs, 3)

	// First milestone hosts two activities with one PEP each; both must go,
	// not just the first one encountered.
	removed := d.Milestones[0].TempID
	d.RemoveMilestone(removed)

	assert.Len(t, d.Milestones, 1)
	assert.Len(t, d.Activities, 1)
	assert.Len(t, d.PEPs, 1)

	// No survivor may still reference the removed milestone.
	for _, a := range d.Activities {
		assert.NotEqual(t, removed, a.MilestoneTempID)
		assert.Equal(t, d.Milestones[0].TempID, a.MilestoneTempID)
	}
}

func TestDraft_RemoveActivityCascadesToPEPs(t *testing.T) {
	d := testutil.StructuredDraft(t)
	d.RemoveActivity(d.Activities[2].TempID)

	assert.Len(t, d.Activities, 2)
	assert.Len(t, d.PEPs, 2)
	assert.Len(t, d.Milestones, 2, "milestones are untouched")
}

func TestDraft_TotalPEPBRLRounds(t *testing.T) {
	d := draft.New("Retrofit", 100)
	_, err := d.AddPEP("", "A", 2026, 49.5)
	require.NoError(t, err)
	_, err = d.AddPEP("", "B", 2026, 50.4)
	require.NoError(t, err)

	assert.Equal(t, int64(100), d.TotalPEPBRL())
}

func TestDraft_Snapshot(t *testing.T) {
	d := testutil.StructuredDraft(t)
	s := d.Snapshot()

	assert.Equal(t, "Ampliação da linha 3", s.Title)
	assert.Equal(t, domain.StatusDraft, s.Status)
	assert.Equal(t, 2, s.Milestones)
	assert.Equal(t, 3, s.Activities)
	assert.Equal(t, 3, s.PEPs)
	assert.Equal(t, float64(2_000_000), s.TotalBRL)
}

func TestHydrate_RoundTripsPersistedStructure(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	milestones := repository.NewSQLiteMilestoneRepo(database)
	activities := repository.NewSQLiteActivityRepo(database)
	peps := repository.NewSQLitePEPRepo(database)
	ctx := context.Background()

	projectID, err := projects.Create(ctx, &domain.Project{
		Title: "Ampliação", BudgetBRL: 1_500_000, Status: domain.StatusDraft,
	})
	require.NoError(t, err)
	milestoneID, err := milestones.Create(ctx, &domain.Milestone{ProjectID: projectID, Title: "Obras"})
	require.NoError(t, err)
	activityID, err := activities.Create(ctx, &domain.Activity{
		MilestoneID: milestoneID, ProjectID: projectID, Title: "Fundações",
	})
	require.NoError(t, err)
	_, err = peps.Create(ctx, &domain.PEP{
		ActivityID: activityID, ProjectID: projectID, Title: "Concreto", Year: 2026, AmountBRL: 1_500_000,
	})
	require.NoError(t, err)

	d, err := draft.Hydrate(ctx, projects, milestones, activities, peps, projectID)
	require.NoError(t, err)

	assert.Equal(t, projectID, d.Project.ID)
	require.Len(t, d.Milestones, 1)
	require.Len(t, d.Activities, 1)
	require.Len(t, d.PEPs, 1)

	// Real ids are preserved and references are re-expressed as temp ids.
	assert.Equal(t, milestoneID, d.Milestones[0].RealID)
	assert.NotEmpty(t, d.Milestones[0].TempID)
	assert.Equal(t, d.Milestones[0].TempID, d.Activities[0].MilestoneTempID)
	assert.Equal(t, d.Activities[0].TempID, d.PEPs[0].ActivityTempID)
	assert.NoError(t, draft.ValidateStructure(d))
}
