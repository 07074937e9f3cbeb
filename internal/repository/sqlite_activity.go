package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfigueiredo/capx/internal/domain"
)

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db *sql.DB
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo.
func NewSQLiteActivityRepo(db *sql.DB) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: db}
}

const activityColumns = `id, milestone_id, project_id, title, supplier, start_date, end_date,
	description, created_at, updated_at`

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.Activity) (int64, error) {
	now := nowUTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO activities (milestone_id, project_id, title, supplier, start_date, end_date,
			description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.MilestoneID, a.ProjectID, a.Title, a.Supplier,
		nullableTimeToString(a.StartDate, dateLayout),
		nullableTimeToString(a.EndDate, dateLayout),
		a.Description, now, now,
	)
	if err != nil {
		return 0, storageErr("inserting activity", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("reading activity insert id", err)
	}
	return id, nil
}

func (r *SQLiteActivityRepo) Update(ctx context.Context, id int64, a *domain.Activity) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE activities SET title = ?, supplier = ?, start_date = ?, end_date = ?,
			description = ?, updated_at = ? WHERE id = ?`,
		a.Title, a.Supplier,
		nullableTimeToString(a.StartDate, dateLayout),
		nullableTimeToString(a.EndDate, dateLayout),
		a.Description, nowUTC(), id,
	)
	if err != nil {
		return storageErr("updating activity", err)
	}
	return checkAffected(res, "activity", id)
}

func (r *SQLiteActivityRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return storageErr("deleting activity", err)
	}
	return checkAffected(res, "activity", id)
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	a, err := scanActivity(row.Scan)
	if err == sql.ErrNoRows {
		return nil, notFoundErr("activity", id)
	}
	if err != nil {
		return nil, storageErr("scanning activity", err)
	}
	return a, nil
}

func (r *SQLiteActivityRepo) ListByMilestone(ctx context.Context, milestoneID int64) ([]*domain.Activity, error) {
	return r.list(ctx, "milestone_id", milestoneID)
}

func (r *SQLiteActivityRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.Activity, error) {
	return r.list(ctx, "project_id", projectID)
}

func (r *SQLiteActivityRepo) list(ctx context.Context, col string, parentID int64) ([]*domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE `+col+` = ? ORDER BY id`, parentID)
	if err != nil {
		return nil, storageErr("listing activities", err)
	}
	defer rows.Close()

	var out []*domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows.Scan)
		if err != nil {
			return nil, storageErr("scanning activity row", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating activities", err)
	}
	return out, nil
}

func scanActivity(scan func(dest ...any) error) (*domain.Activity, error) {
	var a domain.Activity
	var createdAtStr, updatedAtStr string
	var startDateStr, endDateStr sql.NullString

	err := scan(
		&a.ID, &a.MilestoneID, &a.ProjectID, &a.Title, &a.Supplier,
		&startDateStr, &endDateStr, &a.Description,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	a.StartDate = parseNullableTime(startDateStr, dateLayout)
	a.EndDate = parseNullableTime(endDateStr, dateLayout)
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &a, nil
}
