package cli

import (
	"github.com/mfigueiredo/capx/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Commits  service.CommitService
	Workflow service.WorkflowService
}

// NewRootCmd creates the top-level "capx" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "capx",
		Short: "CAPEX project management and approval workflow",
	}

	root.AddCommand(
		newProjectCmd(app),
		newCommitCmd(app),
		newChecksCmd(app),
		newSubmitCmd(app),
		newReviseCmd(app),
	)

	return root
}
