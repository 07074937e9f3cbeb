// Package rules evaluates the advisory approval checklist over a flattened
// project snapshot. Evaluation is pure: the same snapshot always produces the
// same ordered results. The workflow layer independently re-checks the
// minimal subset (title, status) before writing, so a stale snapshot here can
// never corrupt a transition.
package rules

import (
	"math"
	"strings"

	"github.com/mfigueiredo/capx/internal/domain"
)

type Severity string

const (
	SeverityOK    Severity = "ok"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Snapshot is the flattened view of a draft the rule engine consumes.
type Snapshot struct {
	Title      string
	Status     domain.ProjectStatus
	Milestones int
	Activities int
	PEPs       int
	TotalBRL   float64
	Unit       string
	Location   string
}

// RuleResult is one check's outcome. ID is stable across releases; Message is
// what the user sees.
type RuleResult struct {
	ID       string
	Severity Severity
	Message  string
}

// Summary partitions rule results. OK is true iff no result carries
// SeverityError; warnings never block.
type Summary struct {
	OK     bool
	OKs    []RuleResult
	Warns  []RuleResult
	Errors []RuleResult
}

// submittableStatuses are the statuses from which a project may be sent to
// approval.
var submittableStatuses = map[domain.ProjectStatus]bool{
	"":                    true,
	domain.StatusDraft:    true,
	domain.StatusRejected: true,
}

// EvaluateApprovalRules runs every check in its fixed order and returns one
// result per rule.
func EvaluateApprovalRules(s Snapshot) []RuleResult {
	results := make([]RuleResult, 0, 7)

	if strings.TrimSpace(s.Title) == "" {
		results = append(results, RuleResult{"title", SeverityError, "Título do projeto não informado."})
	} else {
		results = append(results, RuleResult{"title", SeverityOK, "Título informado."})
	}

	if !submittableStatuses[s.Status] {
		results = append(results, RuleResult{"status", SeverityError,
			"Status \"" + string(s.Status) + "\" bloqueia o envio para aprovação."})
	} else {
		results = append(results, RuleResult{"status", SeverityOK, "Status permite envio."})
	}

	results = append(results, countRule("milestones", s.Milestones, "Nenhum marco cadastrado.", "Marcos cadastrados."))
	results = append(results, countRule("activities", s.Activities, "Nenhuma atividade cadastrada.", "Atividades cadastradas."))
	results = append(results, countRule("peps", s.PEPs, "Nenhum elemento de custo (PEP) cadastrado.", "Elementos de custo cadastrados."))

	if s.TotalBRL <= 0 || math.IsNaN(s.TotalBRL) || math.IsInf(s.TotalBRL, 0) {
		results = append(results, RuleResult{"total", SeverityError, "Valor total do projeto é inválido."})
	} else {
		results = append(results, RuleResult{"total", SeverityOK, "Valor total informado."})
	}

	if strings.TrimSpace(s.Unit) == "" || strings.TrimSpace(s.Location) == "" {
		results = append(results, RuleResult{"unit_location", SeverityWarn, "Unidade ou localização não informada."})
	} else {
		results = append(results, RuleResult{"unit_location", SeverityOK, "Unidade e localização informadas."})
	}

	return results
}

func countRule(id string, count int, missing, present string) RuleResult {
	if count == 0 {
		return RuleResult{id, SeverityError, missing}
	}
	return RuleResult{id, SeverityOK, present}
}

// Summarize buckets results by severity and reports overall pass.
func Summarize(results []RuleResult) Summary {
	s := Summary{}
	for _, r := range results {
		switch r.Severity {
		case SeverityError:
			s.Errors = append(s.Errors, r)
		case SeverityWarn:
			s.Warns = append(s.Warns, r)
		default:
			s.OKs = append(s.OKs, r)
		}
	}
	s.OK = len(s.Errors) == 0
	return s
}
