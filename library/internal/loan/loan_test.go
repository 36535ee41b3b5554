package loan_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/smart-library/library/internal/loan"
	"github.com/Astemirdum/smart-library/library/internal/model"
	"github.com/stretchr/testify/require"
)

func TestFine(t *testing.T) {
	t.Parallel()
	due := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		returned time.Time
		wantDays int
		wantFine float64
	}{
		{name: "early", returned: due.Add(-48 * time.Hour), wantDays: 0, wantFine: 0},
		{name: "exactly on due date", returned: due, wantDays: 0, wantFine: 0},
		{name: "one second late", returned: due.Add(time.Second), wantDays: 1, wantFine: 1},
		{name: "one day late", returned: due.Add(loan.Day), wantDays: 1, wantFine: 1},
		{name: "one day and an hour late", returned: due.Add(loan.Day + time.Hour), wantDays: 2, wantFine: 2},
		{name: "five days late", returned: due.Add(5 * loan.Day), wantDays: 5, wantFine: 5},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.wantDays, loan.DaysOverdue(due, tt.returned))
			require.Equal(t, tt.wantFine, loan.Fine(due, tt.returned, 1))
			require.Equal(t, tt.wantFine, loan.DefaultPolicy().Fine(due, tt.returned))
		})
	}

	require.Equal(t, 12.5, loan.Fine(due, due.Add(5*loan.Day), 2.5))
}

func TestPolicy_DueDate(t *testing.T) {
	issued := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 5, 15, 9, 30, 0, 0, time.UTC), loan.DefaultPolicy().DueDate(issued))
}

func TestClassify(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name   string
		status model.Status
		due    *time.Time
		want   model.Status
	}{
		{name: "active past due", status: model.StatusActive, due: &past, want: model.StatusOverdue},
		{name: "active due now", status: model.StatusActive, due: &now, want: model.StatusActive},
		{name: "active not due", status: model.StatusActive, due: &future, want: model.StatusActive},
		{name: "active without due date", status: model.StatusActive, want: model.StatusActive},
		{name: "overdue stays overdue", status: model.StatusOverdue, due: &past, want: model.StatusOverdue},
		{name: "returned is terminal", status: model.StatusReturned, due: &past, want: model.StatusReturned},
		{name: "lost is terminal", status: model.StatusLost, due: &past, want: model.StatusLost},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := model.Activity{Status: tt.status, DueDate: tt.due}
			require.Equal(t, tt.want, loan.Classify(a, now))
		})
	}
}

func TestCanTransition(t *testing.T) {
	t.Parallel()
	allowed := map[[2]model.Status]bool{
		{model.StatusActive, model.StatusOverdue}:   true,
		{model.StatusActive, model.StatusReturned}:  true,
		{model.StatusOverdue, model.StatusReturned}: true,
	}
	statuses := []model.Status{model.StatusActive, model.StatusOverdue, model.StatusReturned, model.StatusLost}
	for _, from := range statuses {
		for _, to := range statuses {
			require.Equal(t, allowed[[2]model.Status{from, to}], loan.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}
