package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mfigueiredo/capx/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database. Every call
// runs as its own implicit transaction; the repo never exposes a shared one.
type SQLiteProjectRepo struct {
	db *sql.DB
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(db *sql.DB) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

const projectColumns = `id, title, budget_brl, status, unit, location, classification,
	start_date, end_date, kpi, description, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) (int64, error) {
	query := `INSERT INTO projects (title, budget_brl, status, unit, location, classification,
		start_date, end_date, kpi, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := nowUTC()
	res, err := r.db.ExecContext(ctx, query,
		p.Title,
		p.BudgetBRL,
		string(p.Status),
		p.Unit,
		p.Location,
		p.Classification,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		p.KPI,
		p.Description,
		now,
		now,
	)
	if err != nil {
		return 0, storageErr("inserting project", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("reading project insert id", err)
	}
	return id, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, id int64, p *domain.Project) error {
	query := `UPDATE projects SET title = ?, budget_brl = ?, status = ?, unit = ?, location = ?,
		classification = ?, start_date = ?, end_date = ?, kpi = ?, description = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Title,
		p.BudgetBRL,
		string(p.Status),
		p.Unit,
		p.Location,
		p.Classification,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		p.KPI,
		p.Description,
		nowUTC(),
		id,
	)
	if err != nil {
		return storageErr("updating project", err)
	}
	return checkAffected(res, "project", id)
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return storageErr("deleting project", err)
	}
	return checkAffected(res, "project", id)
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row.Scan)
	if err == sql.ErrNoRows {
		return nil, notFoundErr("project", id)
	}
	if err != nil {
		return nil, storageErr("scanning project", err)
	}
	return p, nil
}

func (r *SQLiteProjectRepo) GetPage(ctx context.Context, req PageRequest) (*ProjectPage, error) {
	size := req.PageSize
	if size <= 0 {
		size = 50
	}

	sortCol := "id"
	if req.Sort == "title" {
		sortCol = "title"
	}

	sortVal, lastID, err := decodePageToken(req.PageToken)
	if err != nil {
		return nil, &RepositoryError{Status: 400, Message: err.Error()}
	}

	var conds []string
	var args []any
	if len(req.Statuses) > 0 {
		marks := make([]string, len(req.Statuses))
		for i, s := range req.Statuses {
			marks[i] = "?"
			args = append(args, string(s))
		}
		conds = append(conds, fmt.Sprintf("status IN (%s)", strings.Join(marks, ", ")))
	}
	if req.PageToken != "" {
		if sortCol == "id" {
			conds = append(conds, "id > ?")
			args = append(args, lastID)
		} else {
			conds = append(conds, "(title, id) > (?, ?)")
			args = append(args, sortVal, lastID)
		}
	}

	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s, id LIMIT ?", sortCol)
	args = append(args, size+1)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("paging projects", err)
	}
	defer rows.Close()

	var items []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, storageErr("scanning project page", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating project page", err)
	}

	page := &ProjectPage{}
	if len(items) > size {
		items = items[:size]
		last := items[len(items)-1]
		page.NextPageToken = encodePageToken(last.Title, last.ID)
	}
	page.Items = items
	return page, nil
}

// scanProject scans one project row via the given Scan function, so it works
// for both *sql.Row and *sql.Rows.
func scanProject(scan func(dest ...any) error) (*domain.Project, error) {
	var p domain.Project
	var statusStr, createdAtStr, updatedAtStr string
	var startDateStr, endDateStr sql.NullString

	err := scan(
		&p.ID, &p.Title, &p.BudgetBRL, &statusStr,
		&p.Unit, &p.Location, &p.Classification,
		&startDateStr, &endDateStr,
		&p.KPI, &p.Description,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	p.Status = domain.ProjectStatus(statusStr)
	p.StartDate = parseNullableTime(startDateStr, dateLayout)
	p.EndDate = parseNullableTime(endDateStr, dateLayout)
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

// checkAffected turns a zero-row update/delete into a 404.
func checkAffected(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("reading rows affected", err)
	}
	if n == 0 {
		return notFoundErr(kind, id)
	}
	return nil
}
