package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/mfigueiredo/capx/internal/cli"
	"github.com/mfigueiredo/capx/internal/commit"
	"github.com/mfigueiredo/capx/internal/db"
	"github.com/mfigueiredo/capx/internal/repository"
	"github.com/mfigueiredo/capx/internal/service"
	"github.com/mfigueiredo/capx/internal/workflow"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.capx/capx.db
	dbPath := os.Getenv("CAPX_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".capx", "capx.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)
	pepRepo := repository.NewSQLitePEPRepo(database)

	// Use-case logging goes to stderr only when it won't pollute an
	// interactive session's output; CAPX_LOG=1 forces it on.
	var logWriter io.Writer
	if os.Getenv("CAPX_LOG") == "1" || !isatty.IsTerminal(os.Stderr.Fd()) {
		logWriter = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(logWriter)

	orch := commit.NewOrchestrator(projectRepo, milestoneRepo, activityRepo, pepRepo)
	transitions := workflow.NewService(projectRepo)

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo, milestoneRepo, activityRepo, pepRepo),
		Commits:  service.NewCommitService(orch, observer),
		Workflow: service.NewWorkflowService(transitions, projectRepo, milestoneRepo, activityRepo, pepRepo, observer),
	}

	return cli.NewRootCmd(app).Execute()
}
