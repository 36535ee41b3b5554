package model

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionBorrow  Action = "borrow"
	ActionReturn  Action = "return"
	ActionRenew   Action = "renew"
	ActionReserve Action = "reserve"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusReturned Status = "returned"
	StatusOverdue  Status = "overdue"
	StatusLost     Status = "lost"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusReturned, StatusOverdue, StatusLost:
		return true
	}
	return false
}

// Open reports whether the loan still holds the book.
func (s Status) Open() bool {
	return s == StatusActive || s == StatusOverdue
}

var OpenStatuses = []Status{StatusActive, StatusOverdue}

// Activity is one Loan Ledger record.
type Activity struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	UserID         uuid.UUID  `json:"userId" db:"user_id"`
	BookID         uuid.UUID  `json:"bookId" db:"book_id"`
	Action         Action     `json:"action" db:"action"`
	IssueDate      time.Time  `json:"issueDate" db:"issue_date"`
	DueDate        *time.Time `json:"dueDate,omitempty" db:"due_date"`
	ReturnDate     *time.Time `json:"returnDate,omitempty" db:"return_date"`
	Status         Status     `json:"status" db:"status"`
	Fine           float64    `json:"fine" db:"fine"`
	FineOverridden bool       `json:"fineOverridden" db:"fine_overridden"`
	Notes          string     `json:"notes" db:"notes"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// ActivityView is an activity joined with the book and user it refers to.
type ActivityView struct {
	Activity     `json:",inline"`
	BookTitle    string   `json:"bookTitle" db:"book_title"`
	BookAuthor   string   `json:"bookAuthor" db:"book_author"`
	BookCategory Category `json:"bookCategory" db:"book_category"`
	UserName     string   `json:"userName" db:"user_name"`
	UserEmail    string   `json:"userEmail" db:"user_email"`
}

// ReturnInfo closes an open loan.
type ReturnInfo struct {
	ReturnDate     time.Time
	Fine           float64
	FineOverridden bool
	Notes          *string
}

type ActivityFilter struct {
	UserID *uuid.UUID
	// Status is empty for all statuses.
	Status    Status
	UserQuery string
	BookQuery string
	From      *time.Time
	To        *time.Time
}

// AdminActivityQuery is the admin ledger search; User matches name or email,
// Book matches title or author.
type AdminActivityQuery struct {
	Status string
	User   string
	Book   string
	From   *time.Time
	To     *time.Time
	Page   int
}

type StatusSummary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Returned int `json:"returned"`
	Overdue  int `json:"overdue"`
	Lost     int `json:"lost"`
}

// Add counts n records of status s.
func (s *StatusSummary) Add(status Status, n int) {
	switch status {
	case StatusActive:
		s.Active += n
	case StatusReturned:
		s.Returned += n
	case StatusOverdue:
		s.Overdue += n
	case StatusLost:
		s.Lost += n
	}
	s.Total += n
}

type ListActivities struct {
	Paging  `json:",inline"`
	Items   []ActivityView `json:"items"`
	Summary StatusSummary  `json:"summary"`
}

type ForceReturnRequest struct {
	UserID uuid.UUID `json:"-"`
	BookID uuid.UUID `json:"-"`
	Fine   *float64  `json:"fine" validate:"omitempty,min=0"`
	Notes  string    `json:"notes"`
}

// LoanReceipt is the outcome of a lifecycle operation.
type LoanReceipt struct {
	Book        Book       `json:"book"`
	Loan        Activity   `json:"loan"`
	ReturnEvent *Activity  `json:"returnEvent,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Fine        float64    `json:"fine"`
	DaysOverdue int        `json:"daysOverdue"`
	Message     string     `json:"message"`
}
