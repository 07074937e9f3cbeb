package testutil

import (
	"testing"

	"github.com/mfigueiredo/capx/internal/draft"
)

// SmallDraft is a valid draft below the structure threshold: 500k budget,
// one PEP, no milestones or activities.
func SmallDraft(t *testing.T) *draft.Draft {
	t.Helper()
	d := draft.New("Troca de compressores", 500_000)
	d.Project.Unit = "Planta Sul"
	d.Project.Location = "Curitiba"
	if _, err := d.AddPEP("", "Compressores", 2026, 500_000); err != nil {
		t.Fatalf("building small draft: %v", err)
	}
	return d
}

// StructuredDraft is a valid draft above the structure threshold: 2M budget,
// two milestones, three activities, three PEPs summing exactly to the budget.
func StructuredDraft(t *testing.T) *draft.Draft {
	t.Helper()
	d := draft.New("Ampliação da linha 3", 2_000_000)
	d.Project.Unit = "Planta Norte"
	d.Project.Location = "Manaus"

	m1 := d.AddMilestone("Obras civis")
	m2 := d.AddMilestone("Montagem eletromecânica")

	a1, err := d.AddActivity(m1, "Fundações")
	if err != nil {
		t.Fatalf("building structured draft: %v", err)
	}
	a2, err := d.AddActivity(m1, "Estrutura metálica")
	if err != nil {
		t.Fatalf("building structured draft: %v", err)
	}
	a3, err := d.AddActivity(m2, "Instalação de equipamentos")
	if err != nil {
		t.Fatalf("building structured draft: %v", err)
	}

	for _, pep := range []struct {
		activity string
		title    string
		amount   float64
	}{
		{a1, "Concreto e aço", 600_000},
		{a2, "Estruturas", 650_000},
		{a3, "Equipamentos", 750_000},
	} {
		if _, err := d.AddPEP(pep.activity, pep.title, 2026, pep.amount); err != nil {
			t.Fatalf("building structured draft: %v", err)
		}
	}
	return d
}
