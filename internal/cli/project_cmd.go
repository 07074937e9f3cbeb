package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mfigueiredo/capx/internal/cli/formatter"
	"github.com/mfigueiredo/capx/internal/domain"
	"github.com/mfigueiredo/capx/internal/repository"
	"github.com/spf13/cobra"
)

func parseProjectID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project id %q", arg)
	}
	return id, nil
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectNewCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var statuses []string
	var sort, pageToken string
	var pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects (cursor-paged)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := repository.PageRequest{
				Sort:      sort,
				PageSize:  pageSize,
				PageToken: pageToken,
			}
			for _, s := range statuses {
				req.Statuses = append(req.Statuses, domain.ProjectStatus(s))
			}

			page, err := app.Projects.GetPage(context.Background(), req)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(page.Items))
			for _, p := range page.Items {
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10),
					p.Title,
					formatter.MoneyBRL(p.BudgetBRL),
					formatter.StatusBadge(p.Status),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "TÍTULO", "ORÇAMENTO", "STATUS"}, rows))

			if page.NextPageToken != "" {
				fmt.Printf("\nNext page: capx project list --page-token %s\n", page.NextPageToken)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status (repeatable)")
	cmd.Flags().StringVar(&sort, "sort", "id", "Sort order: id or title")
	cmd.Flags().IntVar(&pageSize, "page-size", 50, "Page size")
	cmd.Flags().StringVar(&pageToken, "page-token", "", "Cursor from a previous page")
	return cmd
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <id>",
		Short: "Show a project and its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()

			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			st, err := app.Projects.Structure(ctx, id)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header(p.Title))
			fmt.Printf("%s  %s\n", formatter.StatusBadge(p.Status), formatter.StyleDim.Render(formatter.MoneyBRL(p.BudgetBRL)))
			if p.Unit != "" || p.Location != "" {
				fmt.Println(formatter.StyleDim.Render(p.Unit + " - " + p.Location))
			}
			fmt.Println()

			activitiesByMilestone := make(map[int64][]*domain.Activity)
			for _, a := range st.Activities {
				activitiesByMilestone[a.MilestoneID] = append(activitiesByMilestone[a.MilestoneID], a)
			}
			pepsByActivity := make(map[int64][]*domain.PEP)
			for _, pep := range st.PEPs {
				pepsByActivity[pep.ActivityID] = append(pepsByActivity[pep.ActivityID], pep)
			}

			for _, m := range st.Milestones {
				fmt.Println(formatter.StyleBold.Render(m.Title))
				for _, a := range activitiesByMilestone[m.ID] {
					fmt.Printf("  %s\n", a.Title)
					for _, pep := range pepsByActivity[a.ID] {
						fmt.Printf("    %s (%d): %s\n", pep.Title, pep.Year, formatter.MoneyBRL(pep.AmountBRL))
					}
				}
			}
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a project and its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(context.Background(), id, force); err != nil {
				return err
			}
			fmt.Printf("Removed project %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even when the project is in approval or approved")
	return cmd
}
