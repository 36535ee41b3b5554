package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/Astemirdum/smart-library/library/internal/model"
	"github.com/Astemirdum/smart-library/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	BorrowBook(ctx context.Context, userID, bookID uuid.UUID) (model.LoanReceipt, error)
	ReturnBook(ctx context.Context, userID, bookID uuid.UUID) (model.LoanReceipt, error)
	ForceReturn(ctx context.Context, req model.ForceReturnRequest) (model.LoanReceipt, error)

	GetUserActivity(ctx context.Context, userID uuid.UUID, status string, page int) (model.ListActivities, error)
	AdminListActivities(ctx context.Context, q model.AdminActivityQuery) (model.ListActivities, error)
	OverdueActivities(ctx context.Context) ([]model.ActivityView, error)
	DueSoon(ctx context.Context, days int) ([]model.ActivityView, error)
	Dashboard(ctx context.Context) (model.Dashboard, error)
	SystemStats(ctx context.Context) (model.SystemStats, error)

	AddBook(ctx context.Context, req model.BookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req model.BookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	GetBook(ctx context.Context, id uuid.UUID) (model.BookView, error)
	ExploreBooks(ctx context.Context, filter model.BookFilter, page int, admin bool) (model.ListBooks, error)
	Categories(ctx context.Context) ([]model.Category, error)

	Register(ctx context.Context, req model.RegisterRequest) (model.User, error)
	Authenticate(ctx context.Context, req model.LoginRequest) (model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req model.ProfileRequest) (model.User, error)
	AdminListUsers(ctx context.Context, filter model.UserFilter, page int) (model.ListUsers, error)
	AdminUserDetails(ctx context.Context, id uuid.UUID) (model.UserDetails, error)
	SetUserStatus(ctx context.Context, id uuid.UUID, active bool) (model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	ListLoanEvents(ctx context.Context, limit int) ([]model.LoanEventRecord, error)
	LoanEventStats(ctx context.Context) ([]model.LoanEventStats, error)
}

var _ LibraryService = (*service.Service)(nil)
