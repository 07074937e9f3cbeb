package formatter

import (
	"fmt"
	"strings"

	"github.com/mfigueiredo/capx/internal/commit"
	"github.com/mfigueiredo/capx/internal/rules"
)

// RenderRuleResults renders the approval checklist, one line per rule, with
// a pass/fail summary footer.
func RenderRuleResults(results []rules.RuleResult, summary rules.Summary) string {
	var b strings.Builder

	for _, r := range results {
		switch r.Severity {
		case rules.SeverityError:
			b.WriteString(StyleRed.Render("✗ " + r.Message))
		case rules.SeverityWarn:
			b.WriteString(StyleYellow.Render("! " + r.Message))
		default:
			b.WriteString(StyleGreen.Render("✓ " + r.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if summary.OK {
		b.WriteString(StyleGreen.Render("Projeto pronto para envio."))
	} else {
		b.WriteString(StyleRed.Render(fmt.Sprintf("Envio bloqueado: %d pendência(s).", len(summary.Errors))))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderCommitResult renders a successful commit: the project id and how
// many entities the attempt created.
func RenderCommitResult(res *commit.Result) string {
	j := res.Journal
	var b strings.Builder
	b.WriteString(StyleGreen.Render(fmt.Sprintf("Projeto %d salvo.", res.ProjectID)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf(
		"Criados: %d marco(s), %d atividade(s), %d PEP(s).",
		len(j.MilestoneIDs), len(j.ActivityIDs), len(j.PEPIDs))))
	b.WriteString("\n")
	return b.String()
}

// RenderCommitFailure renders a failed commit with its rollback outcome,
// listing every compensating delete that failed so the operator knows which
// records were left behind.
func RenderCommitFailure(cse *commit.CommitStructureError) string {
	var b strings.Builder
	b.WriteString(StyleRed.Render(fmt.Sprintf("Falha ao salvar (fase %s): %v", cse.Phase, cse.Cause)))
	b.WriteString("\n")

	switch cse.Rollback.Status {
	case commit.RollbackComplete:
		if cse.Rollback.Attempts > 0 {
			b.WriteString(StyleGreen.Render(fmt.Sprintf(
				"Rollback completo: %d registro(s) removido(s).", cse.Rollback.Attempts)))
			b.WriteString("\n")
		}
	case commit.RollbackPartial:
		b.WriteString(StyleYellow.Render(fmt.Sprintf(
			"Rollback parcial: %d de %d remoções falharam. Registros órfãos:",
			len(cse.Rollback.Failures), cse.Rollback.Attempts)))
		b.WriteString("\n")
		for _, f := range cse.Rollback.Failures {
			b.WriteString(StyleYellow.Render(fmt.Sprintf("  - %s %d: %s", f.Entity, f.ID, f.Message)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
