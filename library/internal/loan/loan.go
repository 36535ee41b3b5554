// Package loan holds the pure rules of the loan lifecycle: the per-activity
// state machine, overdue classification and the fine formula.
package loan

import (
	"math"
	"time"

	"github.com/Astemirdum/smart-library/library/internal/model"
)

const Day = 24 * time.Hour

type Policy struct {
	MaxActiveLoans int           `envconfig:"LOAN_MAX_ACTIVE" default:"3"`
	LoanPeriod     time.Duration `envconfig:"LOAN_PERIOD" default:"336h"`
	FinePerDay     float64       `envconfig:"LOAN_FINE_PER_DAY" default:"1"`
}

func DefaultPolicy() Policy {
	return Policy{
		MaxActiveLoans: 3,
		LoanPeriod:     14 * Day,
		FinePerDay:     1,
	}
}

func (p Policy) DueDate(issued time.Time) time.Time {
	return issued.Add(p.LoanPeriod)
}

// Fine is the canonical fine for a loan due at due and returned at returnedAt.
func (p Policy) Fine(due, returnedAt time.Time) float64 {
	return Fine(due, returnedAt, p.FinePerDay)
}

// DaysOverdue counts started days past due; zero on or before the due date.
func DaysOverdue(due, at time.Time) int {
	late := at.Sub(due)
	if late <= 0 {
		return 0
	}
	return int(math.Ceil(float64(late) / float64(Day)))
}

func Fine(due, at time.Time, perDay float64) float64 {
	return float64(DaysOverdue(due, at)) * perDay
}

// Classify returns the status a read at now must report for a.
func Classify(a model.Activity, now time.Time) model.Status {
	if a.Status == model.StatusActive && a.DueDate != nil && now.After(*a.DueDate) {
		return model.StatusOverdue
	}
	return a.Status
}

var transitions = map[model.Status][]model.Status{
	model.StatusActive:  {model.StatusOverdue, model.StatusReturned},
	model.StatusOverdue: {model.StatusReturned},
}

func CanTransition(from, to model.Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
