package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/mfigueiredo/capx/internal/cli/formatter"
	"github.com/mfigueiredo/capx/internal/domain"
	"github.com/mfigueiredo/capx/internal/draft"
	"github.com/spf13/cobra"
)

func validatePositiveInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("valor obrigatório")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("informe um número inteiro positivo")
	}
	return nil
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("campo obrigatório")
	}
	return nil
}

// newProjectNewCmd runs an interactive wizard for small projects: below the
// structure threshold the engine synthesizes the technical structure, so a
// single PEP covering the whole budget is enough to commit. Larger projects
// need a draft file with real milestones and activities.
func newProjectNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a small project interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			var title, budgetStr, unit, location, yearStr string
			yearStr = strconv.Itoa(time.Now().Year())

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Título do projeto").
						Value(&title).
						Validate(validateRequired),
					huh.NewInput().
						Title("Orçamento (R$, inteiro)").
						Placeholder("500000").
						Value(&budgetStr).
						Validate(validatePositiveInt),
					huh.NewInput().
						Title("Unidade").
						Value(&unit),
					huh.NewInput().
						Title("Localização").
						Value(&location),
					huh.NewInput().
						Title("Ano do investimento").
						Value(&yearStr).
						Validate(validatePositiveInt),
				),
			).WithShowHelp(false)

			if err := form.Run(); err != nil {
				return fmt.Errorf("wizard aborted: %w", err)
			}

			budget, err := strconv.ParseInt(strings.TrimSpace(budgetStr), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid budget %q: %w", budgetStr, err)
			}
			if budget >= domain.StructureThresholdBRL {
				return fmt.Errorf(
					"projects with budget >= %s need milestones and activities; use 'capx commit <draft-file>' instead",
					formatter.MoneyBRL(domain.StructureThresholdBRL))
			}
			year, err := strconv.Atoi(strings.TrimSpace(yearStr))
			if err != nil {
				return fmt.Errorf("invalid year %q: %w", yearStr, err)
			}

			d := draft.New(strings.TrimSpace(title), budget)
			d.Project.Unit = strings.TrimSpace(unit)
			d.Project.Location = strings.TrimSpace(location)
			if _, err := d.AddPEP("", d.Project.Title, year, float64(budget)); err != nil {
				return err
			}

			res, err := app.Commits.CommitDraft(context.Background(), d)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderCommitResult(res))
			return nil
		},
	}
}
