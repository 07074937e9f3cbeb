package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// additions tolerate re-runs via the duplicate-column check.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Children reference parents with ON DELETE RESTRICT: the backend modeled
// here never cascades, so every delete must be issued explicitly. The commit
// engine's rollback ordering (peps, activities, milestones, project) depends
// on that.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		title          TEXT NOT NULL,
		budget_brl     INTEGER NOT NULL DEFAULT 0 CHECK(budget_brl >= 0),
		status         TEXT NOT NULL DEFAULT ''
		               CHECK(status IN ('', 'Rascunho', 'Em aprovação', 'Aprovado', 'Reprovado')),
		unit           TEXT NOT NULL DEFAULT '',
		location       TEXT NOT NULL DEFAULT '',
		classification TEXT NOT NULL DEFAULT '',
		start_date     TEXT,
		end_date       TEXT,
		kpi            TEXT NOT NULL DEFAULT '',
		description    TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE RESTRICT,
		title      TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		milestone_id INTEGER NOT NULL REFERENCES milestones(id) ON DELETE RESTRICT,
		project_id   INTEGER NOT NULL REFERENCES projects(id) ON DELETE RESTRICT,
		title        TEXT NOT NULL,
		supplier     TEXT NOT NULL DEFAULT '',
		start_date   TEXT,
		end_date     TEXT,
		description  TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS peps (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		activity_id INTEGER NOT NULL REFERENCES activities(id) ON DELETE RESTRICT,
		project_id  INTEGER NOT NULL REFERENCES projects(id) ON DELETE RESTRICT,
		title       TEXT NOT NULL,
		year        INTEGER NOT NULL DEFAULT 0,
		amount_brl  INTEGER NOT NULL CHECK(amount_brl > 0),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_milestone ON activities(milestone_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_project ON activities(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_peps_activity ON peps(activity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_peps_project ON peps(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_title ON projects(title, id)`,
}
