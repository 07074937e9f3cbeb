package domain

import (
	"math"
	"time"
)

// Milestone belongs to exactly one project.
type Milestone struct {
	ID        int64
	ProjectID int64
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Activity belongs to exactly one milestone and transitively to one project.
type Activity struct {
	ID          int64
	MilestoneID int64
	ProjectID   int64
	Title       string
	Supplier    string
	StartDate   *time.Time
	EndDate     *time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PEP is a cost element, the leaf financial unit attached to an activity.
// AmountBRL is in whole reais; draft-side fractional amounts are rounded
// through RoundBRL before they reach the repository.
type PEP struct {
	ID         int64
	ActivityID int64
	ProjectID  int64
	Title      string
	Year       int
	AmountBRL  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RoundBRL rounds a fractional amount of reais to the nearest whole real,
// half away from zero. Rounding here and at validation time must agree or
// the budget-equality invariant breaks after write.
func RoundBRL(amount float64) int64 {
	return int64(math.Round(amount))
}
