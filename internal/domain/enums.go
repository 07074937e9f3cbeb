package domain

type ProjectStatus string

// Persisted status values. The empty string means the project was never
// submitted to the workflow; new projects start as StatusDraft.
const (
	StatusDraft      ProjectStatus = "Rascunho"
	StatusInApproval ProjectStatus = "Em aprovação"
	StatusApproved   ProjectStatus = "Aprovado"
	StatusRejected   ProjectStatus = "Reprovado"
)

// ValidStatuses is the canonical set of accepted persisted status strings.
var ValidStatuses = map[ProjectStatus]bool{
	StatusDraft:      true,
	StatusInApproval: true,
	StatusApproved:   true,
	StatusRejected:   true,
}

// StructureThresholdBRL is the budget at which a project must carry real
// milestone/activity structure instead of the synthetic technical pair.
const StructureThresholdBRL int64 = 1_000_000

// Sentinel titles for the synthetic structure created for small projects.
const (
	SyntheticMilestoneTitle = "Marco técnico"
	SyntheticActivityTitle  = "Atividade técnica"
)
