package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfigueiredo/capx/internal/cli/formatter"
	"github.com/mfigueiredo/capx/internal/commit"
	"github.com/mfigueiredo/capx/internal/draftfile"
	"github.com/spf13/cobra"
)

// newCommitCmd loads a draft file and commits it through the engine. On
// failure the rollback report is printed so the operator sees exactly what
// was and was not cleaned up.
func newCommitCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "commit <draft-file>",
		Short: "Validate and persist a project draft (JSON or YAML)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := draftfile.Load(args[0])
			if err != nil {
				return err
			}
			d, err := draftfile.ToDraft(f)
			if err != nil {
				return err
			}
			if projectID > 0 {
				d.Project.ID = projectID
			}

			res, err := app.Commits.CommitDraft(context.Background(), d)
			if err != nil {
				var cse *commit.CommitStructureError
				if errors.As(err, &cse) {
					fmt.Print(formatter.RenderCommitFailure(cse))
				}
				return err
			}

			fmt.Print(formatter.RenderCommitResult(res))
			return nil
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Update this existing project instead of creating a new one")
	return cmd
}
