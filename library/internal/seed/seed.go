// Package seed fills an empty library with sample readers, books and loans.
package seed

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/smart-library/library/internal/loan"
	"github.com/Astemirdum/smart-library/library/internal/model"
	"github.com/Astemirdum/smart-library/library/internal/repository"
	"github.com/Astemirdum/smart-library/library/internal/service"
)

// Clock is a settable time source so loans can be backdated.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type Options struct {
	AdminEmail    string
	AdminPassword string
	// Password is shared by every sample reader.
	Password string
}

type Result struct {
	Admin   model.User
	Readers []model.User
	Books   []model.Book
	Loans   int
}

var readers = []model.RegisterRequest{
	{Name: "Alice Reader", Email: "alice@library.local"},
	{Name: "Bob Borrower", Email: "bob@library.local"},
	{Name: "Carol Catalog", Email: "carol@library.local"},
}

func intp(v int) *int { return &v }

var books = []model.BookRequest{
	{Title: "Dune", Author: "Frank Herbert", Category: model.CategoryFiction, ISBN: "9780441172719", PublishedYear: intp(1965), Pages: intp(412)},
	{Title: "A Brief History of Time", Author: "Stephen Hawking", Category: model.CategoryScience, ISBN: "9780553380163", PublishedYear: intp(1988)},
	{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Category: model.CategoryTechnology, ISBN: "9780201616224", PublishedYear: intp(1999)},
	{Title: "SPQR", Author: "Mary Beard", Category: model.CategoryHistory, PublishedYear: intp(2015)},
	{Title: "Steve Jobs", Author: "Walter Isaacson", Category: model.CategoryBiography},
	{Title: "The Hound of the Baskervilles", Author: "Arthur Conan Doyle", Category: model.CategoryMystery},
	{Title: "Pride and Prejudice", Author: "Jane Austen", Category: model.CategoryRomance},
	{Title: "The Hobbit", Author: "J. R. R. Tolkien", Category: model.CategoryFantasy},
	{Title: "Atomic Habits", Author: "James Clear", Category: model.CategorySelfHelp},
	{Title: "Library Handbook", Author: "Staff", Description: "House rules and opening hours."},
}

// loans are (reader, book, days ago borrowed, days ago returned or -1).
var loans = []struct {
	reader, book       int
	borrowed, returned int
}{
	{reader: 2, book: 7, borrowed: 40, returned: 22},
	{reader: 1, book: 5, borrowed: 30, returned: 25},
	{reader: 0, book: 0, borrowed: 20, returned: -1},
	{reader: 1, book: 1, borrowed: 16, returned: 1},
	{reader: 0, book: 3, borrowed: 13, returned: -1},
	{reader: 2, book: 2, borrowed: 3, returned: -1},
}

// Run writes the sample data through the service so every record obeys the
// loan lifecycle. clock must be the time source svc was built with.
func Run(ctx context.Context, svc *service.Service, clock *Clock, opts Options, log *zap.Logger) (Result, error) {
	var res Result
	now := clock.Now()
	start := now.Add(-60 * loan.Day)
	clock.Set(start)
	defer clock.Set(now)

	admin, err := svc.CreateAccount(ctx, model.RegisterRequest{
		Name:     "Administrator",
		Email:    opts.AdminEmail,
		Password: opts.AdminPassword,
	}, model.RoleAdmin)
	if err != nil {
		return res, errors.Wrap(err, "create admin")
	}
	res.Admin = admin

	for _, r := range readers {
		r.Password = opts.Password
		u, err := svc.Register(ctx, r)
		if err != nil {
			return res, errors.Wrapf(err, "register %s", r.Email)
		}
		res.Readers = append(res.Readers, u)
	}
	for _, b := range books {
		book, err := svc.AddBook(ctx, b)
		if err != nil {
			return res, errors.Wrapf(err, "add %q", b.Title)
		}
		res.Books = append(res.Books, book)
	}

	for _, l := range loans {
		userID, bookID := res.Readers[l.reader].ID, res.Books[l.book].ID
		clock.Set(now.Add(-time.Duration(l.borrowed) * loan.Day))
		if _, err := svc.BorrowBook(ctx, userID, bookID); err != nil {
			return res, errors.Wrap(err, "borrow")
		}
		res.Loans++
		if l.returned < 0 {
			continue
		}
		clock.Set(now.Add(-time.Duration(l.returned) * loan.Day))
		if _, err := svc.ReturnBook(ctx, userID, bookID); err != nil {
			return res, errors.Wrap(err, "return")
		}
	}
	log.Info("seeded",
		zap.String("admin", admin.Email),
		zap.Int("readers", len(res.Readers)),
		zap.Int("books", len(res.Books)),
		zap.Int("loans", res.Loans))
	return res, nil
}

// NewService builds a service over repo whose clock is driven by the seeder.
func NewService(repo repository.Repository, policy loan.Policy, log *zap.Logger, now time.Time) (*service.Service, *Clock) {
	clock := NewClock(now)
	return service.NewService(repo, log, service.WithPolicy(policy), service.WithClock(clock.Now)), clock
}
