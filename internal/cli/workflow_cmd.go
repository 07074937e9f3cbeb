package cli

import (
	"context"
	"fmt"

	"github.com/mfigueiredo/capx/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newChecksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "checks <id>",
		Short: "Run the approval checklist against a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			report, err := app.Workflow.EvaluateChecks(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderRuleResults(report.Results, report.Summary))
			return nil
		},
	}
}

func newSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id>",
		Short: "Send a project to approval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			status, err := app.Workflow.SendToApproval(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Projeto %d: %s\n", id, formatter.StatusBadge(status))
			return nil
		},
	}
}

func newReviseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "revise <id>",
		Short: "Return a project to draft for revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			status, err := app.Workflow.BackToDraft(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Projeto %d: %s\n", id, formatter.StatusBadge(status))
			return nil
		},
	}
}
