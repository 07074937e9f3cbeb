package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfigueiredo/capx/internal/domain"
)

// SQLitePEPRepo implements PEPRepo using a SQLite database.
type SQLitePEPRepo struct {
	db *sql.DB
}

// NewSQLitePEPRepo creates a new SQLitePEPRepo.
func NewSQLitePEPRepo(db *sql.DB) *SQLitePEPRepo {
	return &SQLitePEPRepo{db: db}
}

const pepColumns = `id, activity_id, project_id, title, year, amount_brl, created_at, updated_at`

func (r *SQLitePEPRepo) Create(ctx context.Context, p *domain.PEP) (int64, error) {
	now := nowUTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO peps (activity_id, project_id, title, year, amount_brl, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ActivityID, p.ProjectID, p.Title, p.Year, p.AmountBRL, now, now,
	)
	if err != nil {
		return 0, storageErr("inserting pep", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("reading pep insert id", err)
	}
	return id, nil
}

func (r *SQLitePEPRepo) Update(ctx context.Context, id int64, p *domain.PEP) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE peps SET title = ?, year = ?, amount_brl = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Year, p.AmountBRL, nowUTC(), id,
	)
	if err != nil {
		return storageErr("updating pep", err)
	}
	return checkAffected(res, "pep", id)
}

func (r *SQLitePEPRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM peps WHERE id = ?`, id)
	if err != nil {
		return storageErr("deleting pep", err)
	}
	return checkAffected(res, "pep", id)
}

func (r *SQLitePEPRepo) GetByID(ctx context.Context, id int64) (*domain.PEP, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+pepColumns+` FROM peps WHERE id = ?`, id)
	p, err := scanPEP(row.Scan)
	if err == sql.ErrNoRows {
		return nil, notFoundErr("pep", id)
	}
	if err != nil {
		return nil, storageErr("scanning pep", err)
	}
	return p, nil
}

func (r *SQLitePEPRepo) ListByActivity(ctx context.Context, activityID int64) ([]*domain.PEP, error) {
	return r.list(ctx, "activity_id", activityID)
}

func (r *SQLitePEPRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.PEP, error) {
	return r.list(ctx, "project_id", projectID)
}

func (r *SQLitePEPRepo) list(ctx context.Context, col string, parentID int64) ([]*domain.PEP, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+pepColumns+` FROM peps WHERE `+col+` = ? ORDER BY id`, parentID)
	if err != nil {
		return nil, storageErr("listing peps", err)
	}
	defer rows.Close()

	var out []*domain.PEP
	for rows.Next() {
		p, err := scanPEP(rows.Scan)
		if err != nil {
			return nil, storageErr("scanning pep row", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating peps", err)
	}
	return out, nil
}

func scanPEP(scan func(dest ...any) error) (*domain.PEP, error) {
	var p domain.PEP
	var createdAtStr, updatedAtStr string
	if err := scan(&p.ID, &p.ActivityID, &p.ProjectID, &p.Title, &p.Year, &p.AmountBRL,
		&createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
