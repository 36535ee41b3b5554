package repository

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Astemirdum/smart-library/library/internal/model"
)

// TxManager runs fn as one unit of work across every store. Repository calls
// made with the ctx passed to fn join the transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookRepository is the Catalog Store.
type BookRepository interface {
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	UpdateBook(ctx context.Context, book model.Book) (model.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	GetBook(ctx context.Context, id uuid.UUID) (model.BookView, error)
	// GetBookForUpdate locks the row until the surrounding transaction ends.
	GetBookForUpdate(ctx context.Context, id uuid.UUID) (model.Book, error)
	// SetBorrower keeps availability == (borrower == nil).
	SetBorrower(ctx context.Context, bookID uuid.UUID, borrower *uuid.UUID, at time.Time) error
	ListBooks(ctx context.Context, filter model.BookFilter, paging model.Paging) ([]model.BookView, int, error)
	ISBNTaken(ctx context.Context, isbn string, exclude *uuid.UUID) (bool, error)
	Categories(ctx context.Context) ([]model.Category, error)
	CountBooks(ctx context.Context) (model.BookCounts, error)
}

// UserRepository is the Account Store.
type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserForUpdate(ctx context.Context, id uuid.UUID) (model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req model.ProfileRequest, at time.Time) (model.User, error)
	SetUserActive(ctx context.Context, id uuid.UUID, active bool, at time.Time) (model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	AddIssuedBook(ctx context.Context, userID, bookID uuid.UUID, at time.Time) error
	RemoveIssuedBook(ctx context.Context, userID, bookID uuid.UUID) error
	ListUsers(ctx context.Context, filter model.UserFilter, paging model.Paging) ([]model.User, int, error)
	CountUsers(ctx context.Context) (model.UserCounts, error)
}

// ActivityRepository is the Loan Ledger.
type ActivityRepository interface {
	// InsertActivity appends a ledger record.
	InsertActivity(ctx context.Context, a model.Activity) (model.Activity, error)
	// FindOpenLoan returns the active or overdue loan of (user, book), locked.
	FindOpenLoan(ctx context.Context, userID, bookID uuid.UUID) (model.Activity, error)
	CountOpenLoans(ctx context.Context, userID uuid.UUID) (int, error)
	// CloseLoan moves an open loan to returned.
	CloseLoan(ctx context.Context, id uuid.UUID, info model.ReturnInfo) (model.Activity, error)
	// PromoteOverdue persists active -> overdue for every loan due before now,
	// for one user when userID is set.
	PromoteOverdue(ctx context.Context, now time.Time, userID *uuid.UUID) (int64, error)
	ListActivities(ctx context.Context, filter model.ActivityFilter, paging model.Paging) ([]model.ActivityView, int, error)
	ListOpenLoans(ctx context.Context, userID uuid.UUID) ([]model.ActivityView, error)
	ListOverdue(ctx context.Context, limit int) ([]model.ActivityView, error)
	ListDueBetween(ctx context.Context, from, to time.Time) ([]model.ActivityView, error)
	StatusSummary(ctx context.Context, userID *uuid.UUID) (model.StatusSummary, error)
	MonthlyBorrows(ctx context.Context, year int) ([]int, error)
	PopularBooks(ctx context.Context, limit int) ([]model.PopularBook, error)
	ActiveUsers(ctx context.Context, limit int) ([]model.ActiveUser, error)
}

type LoanEventRepository interface {
	InsertLoanEvent(ctx context.Context, ev model.LoanEventRecord) error
	ListLoanEvents(ctx context.Context, limit int) ([]model.LoanEventRecord, error)
	LoanEventStats(ctx context.Context) ([]model.LoanEventStats, error)
}

type Repository interface {
	TxManager
	BookRepository
	UserRepository
	ActivityRepository
	LoanEventRepository
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

var _ Repository = (*repository)(nil)

const (
	usersTableName       = `users`
	booksTableName       = `books`
	issuedBooksTableName = `user_issued_books`
	activitiesTableName  = `activities`
	loanEventsTableName  = `loan_events`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// q returns the transaction carried by ctx, or the pool.
func (r *repository) q(ctx context.Context) querier {
	if tx, ok := txFromCtx(ctx); ok {
		return tx
	}
	return r.db
}

func (r *repository) count(ctx context.Context, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.q(ctx).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func withPaging(b sq.SelectBuilder, paging model.Paging) sq.SelectBuilder {
	if paging.PageSize > 0 {
		b = b.Limit(uint64(paging.PageSize)).Offset(uint64(paging.Offset()))
	}
	return b
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
