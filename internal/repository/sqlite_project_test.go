package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mfigueiredo/capx/internal/domain"
	"github.com/mfigueiredo/capx/internal/repository"
	"github.com/mfigueiredo/capx/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	id, err := repo.Create(ctx, &domain.Project{
		Title:          "Ampliação da linha 3",
		BudgetBRL:      2_000_000,
		Status:         domain.StatusDraft,
		Unit:           "Planta Norte",
		Location:       "Manaus",
		Classification: "expansao",
		StartDate:      &start,
		KPI:            "ROI 18%",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ampliação da linha 3", p.Title)
	assert.Equal(t, int64(2_000_000), p.BudgetBRL)
	assert.Equal(t, domain.StatusDraft, p.Status)
	assert.Equal(t, "Planta Norte", p.Unit)
	require.NotNil(t, p.StartDate)
	assert.Equal(t, start, *p.StartDate)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestProjectRepo_GetByIDNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)

	_, err := repo.GetByID(context.Background(), 42)
	require.Error(t, err)

	var re *repository.RepositoryError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 404, re.Status)
	assert.True(t, repository.NotFound(err))
}

func TestProjectRepo_UpdateAndDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.Project{Title: "Original", BudgetBRL: 100, Status: domain.StatusDraft})
	require.NoError(t, err)

	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	p.Title = "Revisado"
	p.Status = domain.StatusInApproval
	require.NoError(t, repo.Update(ctx, id, p))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Revisado", got.Title)
	assert.Equal(t, domain.StatusInApproval, got.Status)

	require.NoError(t, repo.Delete(ctx, id))
	assert.True(t, repository.NotFound(repo.Delete(ctx, id)))
	_, err = repo.GetByID(ctx, id)
	assert.True(t, repository.NotFound(err))
}

func seedProjects(t *testing.T, repo repository.ProjectRepo, n int, status domain.ProjectStatus) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := repo.Create(context.Background(), &domain.Project{
			Title:     string(rune('A'+i)) + " projeto",
			BudgetBRL: int64(1000 * (i + 1)),
			Status:    status,
		})
		require.NoError(t, err)
	}
}

func TestProjectRepo_GetPageCursorsThroughAll(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	seedProjects(t, repo, 7, domain.StatusDraft)

	var seen []int64
	token := ""
	pages := 0
	for {
		page, err := repo.GetPage(ctx, repository.PageRequest{PageSize: 3, PageToken: token})
		require.NoError(t, err)
		for _, p := range page.Items {
			seen = append(seen, p.ID)
		}
		pages++
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}

	assert.Equal(t, 3, pages)
	require.Len(t, seen, 7)
	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i], seen[i-1], "ids must be strictly ascending")
	}
}

func TestProjectRepo_GetPageStatusFilter(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	seedProjects(t, repo, 3, domain.StatusDraft)
	seedProjects(t, repo, 2, domain.StatusApproved)

	page, err := repo.GetPage(ctx, repository.PageRequest{
		Statuses: []domain.ProjectStatus{domain.StatusApproved},
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	for _, p := range page.Items {
		assert.Equal(t, domain.StatusApproved, p.Status)
	}
}

func TestProjectRepo_GetPageSortByTitle(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	for _, title := range []string{"Zeta", "Alfa", "Meio"} {
		_, err := repo.Create(ctx, &domain.Project{Title: title, BudgetBRL: 1, Status: domain.StatusDraft})
		require.NoError(t, err)
	}

	page, err := repo.GetPage(ctx, repository.PageRequest{Sort: "title", PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alfa", page.Items[0].Title)
	assert.Equal(t, "Meio", page.Items[1].Title)
	require.NotEmpty(t, page.NextPageToken)

	page, err = repo.GetPage(ctx, repository.PageRequest{
		Sort: "title", PageSize: 2, PageToken: page.NextPageToken,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Zeta", page.Items[0].Title)
	assert.Empty(t, page.NextPageToken)
}

func TestProjectRepo_GetPageMalformedToken(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)

	_, err := repo.GetPage(context.Background(), repository.PageRequest{PageToken: "not-a-cursor"})
	require.Error(t, err)
	var re *repository.RepositoryError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 400, re.Status)
}
