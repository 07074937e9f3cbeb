package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfigueiredo/capx/internal/domain"
)

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	db *sql.DB
}

// NewSQLiteMilestoneRepo creates a new SQLiteMilestoneRepo.
func NewSQLiteMilestoneRepo(db *sql.DB) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: db}
}

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) (int64, error) {
	now := nowUTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO milestones (project_id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		m.ProjectID, m.Title, now, now,
	)
	if err != nil {
		return 0, storageErr("inserting milestone", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("reading milestone insert id", err)
	}
	return id, nil
}

func (r *SQLiteMilestoneRepo) Update(ctx context.Context, id int64, m *domain.Milestone) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE milestones SET title = ?, updated_at = ? WHERE id = ?`,
		m.Title, nowUTC(), id,
	)
	if err != nil {
		return storageErr("updating milestone", err)
	}
	return checkAffected(res, "milestone", id)
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return storageErr("deleting milestone", err)
	}
	return checkAffected(res, "milestone", id)
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id int64) (*domain.Milestone, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, title, created_at, updated_at FROM milestones WHERE id = ?`, id)
	m, err := scanMilestone(row.Scan)
	if err == sql.ErrNoRows {
		return nil, notFoundErr("milestone", id)
	}
	if err != nil {
		return nil, storageErr("scanning milestone", err)
	}
	return m, nil
}

func (r *SQLiteMilestoneRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.Milestone, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, title, created_at, updated_at FROM milestones
		WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, storageErr("listing milestones", err)
	}
	defer rows.Close()

	var out []*domain.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows.Scan)
		if err != nil {
			return nil, storageErr("scanning milestone row", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating milestones", err)
	}
	return out, nil
}

func scanMilestone(scan func(dest ...any) error) (*domain.Milestone, error) {
	var m domain.Milestone
	var createdAtStr, updatedAtStr string
	if err := scan(&m.ID, &m.ProjectID, &m.Title, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}
	var err error
	if m.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &m, nil
}
