package model

import (
	"time"

	"github.com/google/uuid"
)

type DashboardCounts struct {
	TotalUsers     int `json:"totalUsers"`
	TotalBooks     int `json:"totalBooks"`
	AvailableBooks int `json:"availableBooks"`
	BorrowedBooks  int `json:"borrowedBooks"`
	ActiveLoans    int `json:"activeLoans"`
	OverdueLoans   int `json:"overdueLoans"`
}

type PopularBook struct {
	BookID      uuid.UUID `json:"bookId" db:"book_id"`
	Title       string    `json:"title" db:"title"`
	Author      string    `json:"author" db:"author"`
	BorrowCount int       `json:"borrowCount" db:"borrow_count"`
}

type ActiveUser struct {
	UserID        uuid.UUID `json:"userId" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	ActivityCount int       `json:"activityCount" db:"activity_count"`
}

type Dashboard struct {
	Stats             DashboardCounts `json:"stats"`
	RecentActivities  []ActivityView  `json:"recentActivities"`
	OverdueActivities []ActivityView  `json:"overdueActivities"`
	// MonthlyBorrows has 12 buckets, January first.
	MonthlyBorrows []int         `json:"monthlyData"`
	PopularBooks   []PopularBook `json:"popularBooks"`
	ActiveUsers    []ActiveUser  `json:"activeUsers"`
	CurrentYear    int           `json:"currentYear"`
}

type UserCounts struct {
	Total  int `json:"total" db:"total"`
	Active int `json:"active" db:"active"`
	Admins int `json:"admins" db:"admins"`
}

type BookCounts struct {
	Total     int `json:"total" db:"total"`
	Available int `json:"available" db:"available"`
	Borrowed  int `json:"borrowed" db:"borrowed"`
}

type SystemStats struct {
	Users      UserCounts    `json:"users"`
	Books      BookCounts    `json:"books"`
	Activities StatusSummary `json:"activities"`
}

// LoanEventRecord is a row of the loan event audit feed.
type LoanEventRecord struct {
	ID             int64     `json:"id" db:"id"`
	OccurredAt     time.Time `json:"occurredAt" db:"occurred_at"`
	EventType      string    `json:"eventType" db:"event_type"`
	ActivityID     uuid.UUID `json:"activityId" db:"activity_id"`
	UserID         uuid.UUID `json:"userId" db:"user_id"`
	BookID         uuid.UUID `json:"bookId" db:"book_id"`
	Fine           float64   `json:"fine" db:"fine"`
	ComputedFine   float64   `json:"computedFine" db:"computed_fine"`
	FineOverridden bool      `json:"fineOverridden" db:"fine_overridden"`
	Notes          string    `json:"notes" db:"notes"`
}

type LoanEventStats struct {
	UserID      uuid.UUID `json:"userId" db:"user_id"`
	LastUpdated time.Time `json:"lastUpdated" db:"last_updated"`
	Borrows     int       `json:"borrows" db:"borrows"`
	Returns     int       `json:"returns" db:"returns"`
	Overrides   int       `json:"overrides" db:"overrides"`
	TotalFines  float64   `json:"totalFines" db:"total_fines"`
}
