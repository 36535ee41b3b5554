package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/smart-library/library/internal/errs"
	"github.com/Astemirdum/smart-library/library/internal/loan"
	"github.com/Astemirdum/smart-library/library/internal/model"
	"github.com/Astemirdum/smart-library/library/internal/repository"
	"github.com/Astemirdum/smart-library/library/internal/repository/memory"
	"github.com/Astemirdum/smart-library/pkg/kafka"
)

var start = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recorder struct {
	mu     sync.Mutex
	events []kafka.LoanEvent
	err    error
}

func (r *recorder) Publish(_ context.Context, ev kafka.LoanEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) last() kafka.LoanEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type fixture struct {
	svc   *Service
	store *memory.Store
	clock *fakeClock
	pub   *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithRepo(t, memory.New())
}

func newFixtureWithRepo(t *testing.T, repo repository.Repository) *fixture {
	t.Helper()
	f := &fixture{clock: &fakeClock{t: start}, pub: &recorder{}}
	if store, ok := repo.(*memory.Store); ok {
		f.store = store
	}
	f.svc = NewService(repo, zap.NewExample(),
		WithClock(f.clock.Now),
		WithPublisher(f.pub),
		WithPolicy(loan.DefaultPolicy()))
	return f
}

func addUser(t *testing.T, repo repository.Repository, name string) model.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), model.User{
		ID: uuid.New(), Name: name, Email: name + "@example.com", PasswordHash: "-",
		Role: model.RoleUser, JoinDate: start, IsActive: true, CreatedAt: start, UpdatedAt: start,
	})
	require.NoError(t, err)
	return u
}

func addBook(t *testing.T, repo repository.Repository, title string) model.Book {
	t.Helper()
	b, err := repo.CreateBook(context.Background(), model.Book{
		ID: uuid.New(), Title: title, Author: "Author", Category: model.CategoryFiction,
		AddedDate: start, CreatedAt: start, UpdatedAt: start,
	})
	require.NoError(t, err)
	return b
}

func requireConsistent(t *testing.T, repo repository.Repository, bookID uuid.UUID) model.BookView {
	t.Helper()
	b, err := repo.GetBook(context.Background(), bookID)
	require.NoError(t, err)
	require.Equal(t, b.Availability, b.CurrentBorrower == nil)
	return b
}

func TestService_LoanScenario(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	u := addUser(t, f.store, "u")
	b := addBook(t, f.store, "B")

	receipt, err := f.svc.BorrowBook(ctx, u.ID, b.ID)
	require.NoError(t, err)
	require.Equal(t, start.Add(14*loan.Day), *receipt.DueDate)
	require.Contains(t, receipt.Message, `Successfully borrowed "B"`)

	book := requireConsistent(t, f.store, b.ID)
	require.False(t, book.Availability)
	require.Equal(t, u.ID, *book.CurrentBorrower)
	user, err := f.svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{b.ID}, user.IssuedBooks)
	require.Equal(t, kafka.EventBorrow, f.pub.last().EventType)

	f.clock.Advance(14*loan.Day + time.Minute)
	list, err := f.svc.GetUserActivity(ctx, u.ID, "all", 1)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.Equal(t, model.StatusOverdue, list.Items[0].Status)

	f.clock.Advance(2*loan.Day - time.Minute)
	ret, err := f.svc.ReturnBook(ctx, u.ID, b.ID)
	require.NoError(t, err)
	require.InDelta(t, 2.0, ret.Fine, 1e-9)
	require.Equal(t, 2, ret.DaysOverdue)
	require.Equal(t, `Successfully returned "B". Fine: $2 (2 days overdue)`, ret.Message)

	book = requireConsistent(t, f.store, b.ID)
	require.True(t, book.Availability)
	user, err = f.svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotContains(t, user.IssuedBooks, b.ID)

	list, err = f.svc.GetUserActivity(ctx, u.ID, "", 1)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	byAction := map[model.Action]model.ActivityView{}
	for _, it := range list.Items {
		byAction[it.Action] = it
	}
	require.Equal(t, model.StatusReturned, byAction[model.ActionBorrow].Status)
	require.Equal(t, model.StatusReturned, byAction[model.ActionReturn].Status)
	require.InDelta(t, 2.0, byAction[model.ActionReturn].Fine, 1e-9)
	require.Equal(t, model.StatusSummary{Total: 2, Returned: 2}, list.Summary)
}

func TestService_ReturnFines(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		late     time.Duration
		wantFine float64
	}{
		{name: "on due date", late: 0, wantFine: 0},
		{name: "early", late: -3 * loan.Day, wantFine: 0},
		{name: "one hour late", late: time.Hour, wantFine: 1},
		{name: "one day late", late: loan.Day, wantFine: 1},
		{name: "five days late", late: 5 * loan.Day, wantFine: 5},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			ctx := context.Background()
			u := addUser(t, f.store, "u")
			b := addBook(t, f.store, "B")

			_, err := f.svc.BorrowBook(ctx, u.ID, b.ID)
			require.NoError(t, err)
			f.clock.Advance(14*loan.Day + tt.late)

			ret, err := f.svc.ReturnBook(ctx, u.ID, b.ID)
			require.NoError(t, err)
			require.InDelta(t, tt.wantFine, ret.Fine, 1e-9)
			require.InDelta(t, tt.wantFine, ret.ReturnEvent.Fine, 1e-9)
			require.InDelta(t, tt.wantFine, f.pub.last().Fine, 1e-9)
		})
	}
}

func TestService_BorrowPreconditions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("book not found", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		u := addUser(t, f.store, "u")
		_, err := f.svc.BorrowBook(ctx, u.ID, uuid.New())
		require.ErrorIs(t, err, errs.ErrBookNotFound)
	})

	t.Run("book unavailable", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		u1, u2 := addUser(t, f.store, "u1"), addUser(t, f.store, "u2")
		b := addBook(t, f.store, "B")
		_, err := f.svc.BorrowBook(ctx, u1.ID, b.ID)
		require.NoError(t, err)
		_, err = f.svc.BorrowBook(ctx, u2.ID, b.ID)
		require.ErrorIs(t, err, errs.ErrBookUnavailable)
	})

	t.Run("user not found", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		b := addBook(t, f.store, "B")
		_, err := f.svc.BorrowBook(ctx, uuid.New(), b.ID)
		require.ErrorIs(t, err, errs.ErrUserNotFound)
		requireConsistent(t, f.store, b.ID)
	})

	t.Run("user inactive", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		u := addUser(t, f.store, "u")
		b := addBook(t, f.store, "B")
		_, err := f.svc.SetUserStatus(ctx, u.ID, false)
		require.NoError(t, err)
		_, err = f.svc.BorrowBook(ctx, u.ID, b.ID)
		require.ErrorIs(t, err, errs.ErrUserInactive)
	})

	t.Run("loan limit", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		u := addUser(t, f.store, "u")
		for i := 0; i < 3; i++ {
			_, err := f.svc.BorrowBook(ctx, u.ID, addBook(t, f.store, "B").ID)
			require.NoError(t, err, "borrow %d", i+1)
		}
		extra := addBook(t, f.store, "Extra")
		_, err := f.svc.BorrowBook(ctx, u.ID, extra.ID)
		require.ErrorIs(t, err, errs.ErrLoanLimit)
		book := requireConsistent(t, f.store, extra.ID)
		require.True(t, book.Availability)
	})

	t.Run("overdue loans count toward the limit", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		u := addUser(t, f.store, "u")
		for i := 0; i < 3; i++ {
			_, err := f.svc.BorrowBook(ctx, u.ID, addBook(t, f.store, "B").ID)
			require.NoError(t, err)
		}
		f.clock.Advance(20 * loan.Day)
		_, err := f.svc.OverdueActivities(ctx)
		require.NoError(t, err)
		_, err = f.svc.BorrowBook(ctx, u.ID, addBook(t, f.store, "Extra").ID)
		require.ErrorIs(t, err, errs.ErrLoanLimit)
	})

	t.Run("duplicate open loan", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		u := addUser(t, f.store, "u")
		b := addBook(t, f.store, "B")
		due := start.Add(loan.Day)
		_, err := f.store.InsertActivity(ctx, model.Activity{
			ID: uuid.New(), UserID: u.ID, BookID: b.ID, Action: model.ActionBorrow,
			IssueDate: start, DueDate: &due, Status: model.StatusActive, CreatedAt: start,
		})
		require.NoError(t, err)
		_, err = f.svc.BorrowBook(ctx, u.ID, b.ID)
		require.ErrorIs(t, err, errs.ErrDuplicateLoan)
	})
}

func TestService_ReturnPreconditions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	u := addUser(t, f.store, "u")
	b := addBook(t, f.store, "B")

	_, err := f.svc.ReturnBook(ctx, u.ID, uuid.New())
	require.ErrorIs(t, err, errs.ErrBookNotFound)

	_, err = f.svc.ReturnBook(ctx, u.ID, b.ID)
	require.ErrorIs(t, err, errs.ErrNoActiveLoan)

	_, err = f.svc.ForceReturn(ctx, model.ForceReturnRequest{UserID: u.ID, BookID: b.ID})
	require.ErrorIs(t, err, errs.ErrNoActiveLoan)
}

func TestService_ForceReturnOverride(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	u := addUser(t, f.store, "u")
	b := addBook(t, f.store, "B")

	_, err := f.svc.BorrowBook(ctx, u.ID, b.ID)
	require.NoError(t, err)
	f.clock.Advance(17 * loan.Day)

	fine := 1.5
	receipt, err := f.svc.ForceReturn(ctx, model.ForceReturnRequest{
		UserID: u.ID, BookID: b.ID, Fine: &fine, Notes: " damaged cover ",
	})
	require.NoError(t, err)
	require.InDelta(t, 1.5, receipt.Fine, 1e-9)
	require.True(t, receipt.Loan.FineOverridden)
	require.Equal(t, "damaged cover", receipt.Loan.Notes)
	require.True(t, receipt.ReturnEvent.FineOverridden)
	require.Equal(t, "Admin forced return: damaged cover", receipt.ReturnEvent.Notes)
	require.Equal(t, `Book "B" has been returned by admin`, receipt.Message)

	ev := f.pub.last()
	require.Equal(t, kafka.EventForceReturn, ev.EventType)
	require.True(t, ev.FineOverridden)
	require.InDelta(t, 3.0, ev.ComputedFine, 1e-9)
	require.InDelta(t, 1.5, ev.Fine, 1e-9)

	book := requireConsistent(t, f.store, b.ID)
	require.True(t, book.Availability)
}

func TestService_ForceReturnDefaultsToZero(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	u := addUser(t, f.store, "u")
	b := addBook(t, f.store, "B")

	_, err := f.svc.BorrowBook(ctx, u.ID, b.ID)
	require.NoError(t, err)
	f.clock.Advance(30 * loan.Day)

	receipt, err := f.svc.ForceReturn(ctx, model.ForceReturnRequest{UserID: u.ID, BookID: b.ID})
	require.NoError(t, err)
	require.Zero(t, receipt.Fine)
	require.Equal(t, "Admin forced return:", receipt.ReturnEvent.Notes)

	neg := -1.0
	_, err = f.svc.ForceReturn(ctx, model.ForceReturnRequest{UserID: u.ID, BookID: b.ID, Fine: &neg})
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestService_PromotionIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	u := addUser(t, f.store, "u")
	b := addBook(t, f.store, "B")

	_, err := f.svc.BorrowBook(ctx, u.ID, b.ID)
	require.NoError(t, err)
	f.clock.Advance(15 * loan.Day)

	first, err := f.svc.GetUserActivity(ctx, u.ID, "all", 1)
	require.NoError(t, err)
	second, err := f.svc.GetUserActivity(ctx, u.ID, "all", 1)
	require.NoError(t, err)
	require.Equal(t, first.Summary, second.Summary)
	require.Equal(t, model.StatusSummary{Total: 1, Overdue: 1}, second.Summary)
	require.Equal(t, model.StatusOverdue, second.Items[0].Status)

	n, err := f.store.PromoteOverdue(ctx, f.clock.Now(), nil)
	require.NoError(t, err)
	require.Zero(t, n)

	overdue, err := f.svc.GetUserActivity(ctx, u.ID, "overdue", 1)
	require.NoError(t, err)
	require.Equal(t, 1, overdue.TotalElements)
}

func TestService_SummaryZeroBuckets(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	u := addUser(t, f.store, "u")

	list, err := f.svc.GetUserActivity(context.Background(), u.ID, "all", 1)
	require.NoError(t, err)
	require.Equal(t, model.StatusSummary{}, list.Summary)
	require.NotNil(t, list.Items)
	require.Empty(t, list.Items)
	require.Equal(t, 1, list.TotalPages)

	_, err = f.svc.GetUserActivity(context.Background(), u.ID, "bogus", 1)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestService_DueSoon(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	u := addUser(t, f.store, "u")
	b1, b2 := addBook(t, f.store, "Soon"), addBook(t, f.store, "Later")

	_, err := f.svc.BorrowBook(ctx, u.ID, b1.ID)
	require.NoError(t, err)
	f.clock.Advance(5 * loan.Day)
	_, err = f.svc.BorrowBook(ctx, u.ID, b2.ID)
	require.NoError(t, err)
	f.clock.Advance(8 * loan.Day)

	soon, err := f.svc.DueSoon(ctx, 0)
	require.NoError(t, err)
	require.Len(t, soon, 1)
	require.Equal(t, "Soon", soon[0].BookTitle)

	soon, err = f.svc.DueSoon(ctx, 7)
	require.NoError(t, err)
	require.Len(t, soon, 2)
}

func TestService_DeleteGuards(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	u := addUser(t, f.store, "u")
	b := addBook(t, f.store, "B")
	free := addBook(t, f.store, "Free")

	_, err := f.svc.BorrowBook(ctx, u.ID, b.ID)
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.DeleteBook(ctx, b.ID), errs.ErrBookBorrowed)
	require.NoError(t, f.svc.DeleteBook(ctx, free.ID))
	_, err = f.svc.GetBook(ctx, free.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.ErrorIs(t, f.svc.DeleteUser(ctx, u.ID), errs.ErrUserHasLoans)

	_, err = f.svc.ReturnBook(ctx, u.ID, b.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteUser(ctx, u.ID))
	_, err = f.svc.GetUser(ctx, u.ID)
	require.ErrorIs(t, err, errs.ErrUserNotFound)
	require.ErrorIs(t, f.svc.DeleteUser(ctx, u.ID), errs.ErrUserNotFound)
}

func TestService_DeleteKeepsLoanHistory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	u := addUser(t, f.store, "u")
	b := addBook(t, f.store, "B")

	_, err := f.svc.BorrowBook(ctx, u.ID, b.ID)
	require.NoError(t, err)
	f.clock.Advance(loan.Day)
	_, err = f.svc.ReturnBook(ctx, u.ID, b.ID)
	require.NoError(t, err)

	ledger := func() model.ListActivities {
		t.Helper()
		list, err := f.svc.AdminListActivities(ctx, model.AdminActivityQuery{Status: "all"})
		require.NoError(t, err)
		return list
	}
	require.Equal(t, 2, ledger().TotalElements)

	require.NoError(t, f.svc.DeleteBook(ctx, b.ID))
	require.Equal(t, 2, ledger().TotalElements)

	require.NoError(t, f.svc.DeleteUser(ctx, u.ID))
	list := ledger()
	require.Equal(t, 2, list.TotalElements)
	require.Equal(t, model.StatusSummary{Total: 2, Returned: 2}, list.Summary)
	for _, it := range list.Items {
		require.Equal(t, u.ID, it.UserID)
		require.Equal(t, b.ID, it.BookID)
		require.Empty(t, it.BookTitle)
		require.Empty(t, it.UserName)
	}

	dash, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Empty(t, dash.PopularBooks)
	require.Empty(t, dash.ActiveUsers)
}

type failingLedger struct {
	*memory.Store
}

func (failingLedger) InsertActivity(context.Context, model.Activity) (model.Activity, error) {
	return model.Activity{}, errors.New("disk full")
}

func TestService_BorrowRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.New()
	f := newFixtureWithRepo(t, failingLedger{Store: store})
	u := addUser(t, store, "u")
	b := addBook(t, store, "B")

	_, err := f.svc.BorrowBook(ctx, u.ID, b.ID)
	require.EqualError(t, err, "disk full")

	book := requireConsistent(t, store, b.ID)
	require.True(t, book.Availability)
	user, err := store.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, user.IssuedBooks)
	require.Empty(t, f.pub.events)
}

func TestService_ConcurrentBorrowSingleWinner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	b := addBook(t, f.store, "B")

	const n = 8
	users := make([]model.User, n)
	for i := range users {
		users[i] = addUser(t, f.store, uuid.NewString())
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for _, u := range users {
		u := u
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.BorrowBook(ctx, u.ID, b.ID)
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, errs.ErrBookUnavailable)
		}()
	}
	wg.Wait()
	require.Equal(t, 1, wins)
	requireConsistent(t, f.store, b.ID)
}

func TestService_PublishFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.pub.err = errors.New("broker down")
	u := addUser(t, f.store, "u")
	b := addBook(t, f.store, "B")

	_, err := f.svc.BorrowBook(context.Background(), u.ID, b.ID)
	require.NoError(t, err)
}

func TestService_Dashboard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	u1, u2 := addUser(t, f.store, "alice"), addUser(t, f.store, "bob")
	b1, b2 := addBook(t, f.store, "One"), addBook(t, f.store, "Two")

	_, err := f.svc.BorrowBook(ctx, u1.ID, b1.ID)
	require.NoError(t, err)
	_, err = f.svc.ReturnBook(ctx, u1.ID, b1.ID)
	require.NoError(t, err)
	_, err = f.svc.BorrowBook(ctx, u2.ID, b1.ID)
	require.NoError(t, err)
	_, err = f.svc.BorrowBook(ctx, u1.ID, b2.ID)
	require.NoError(t, err)
	f.clock.Advance(15 * loan.Day)

	d, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, model.DashboardCounts{
		TotalUsers: 2, TotalBooks: 2, AvailableBooks: 0, BorrowedBooks: 2, ActiveLoans: 0, OverdueLoans: 2,
	}, d.Stats)
	require.Len(t, d.MonthlyBorrows, 12)
	require.Equal(t, 3, d.MonthlyBorrows[int(time.March)-1])
	require.Equal(t, 2025, d.CurrentYear)
	require.Equal(t, "One", d.PopularBooks[0].Title)
	require.Equal(t, 2, d.PopularBooks[0].BorrowCount)
	require.Equal(t, u1.ID, d.ActiveUsers[0].UserID)
	require.Len(t, d.OverdueActivities, 2)
	require.Len(t, d.RecentActivities, 4)

	st, err := f.svc.SystemStats(ctx)
	require.NoError(t, err)
	require.Equal(t, model.BookCounts{Total: 2, Borrowed: 2}, st.Books)
	require.Equal(t, model.StatusSummary{Total: 4, Returned: 2, Overdue: 2}, st.Activities)
}

func TestService_Accounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.svc.Register(ctx, model.RegisterRequest{Name: "Ann", Email: " Ann@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", u.Email)
	require.Equal(t, model.RoleUser, u.Role)
	require.NotEqual(t, "secret1", u.PasswordHash)

	_, err = f.svc.Register(ctx, model.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "x"})
	require.ErrorIs(t, err, errs.ErrEmailTaken)

	got, err := f.svc.Authenticate(ctx, model.LoginRequest{Email: "ANN@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = f.svc.Authenticate(ctx, model.LoginRequest{Email: "ann@example.com", Password: "wrong"})
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)
	_, err = f.svc.Authenticate(ctx, model.LoginRequest{Email: "nobody@example.com", Password: "x"})
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = f.svc.SetUserStatus(ctx, u.ID, false)
	require.NoError(t, err)
	_, err = f.svc.Authenticate(ctx, model.LoginRequest{Email: "ann@example.com", Password: "secret1"})
	require.ErrorIs(t, err, errs.ErrUserInactive)

	updated, err := f.svc.UpdateProfile(ctx, u.ID, model.ProfileRequest{Name: "Ann B", Phone: "123"})
	require.NoError(t, err)
	require.Equal(t, "Ann B", updated.Name)

	inactive := false
	list, err := f.svc.AdminListUsers(ctx, model.UserFilter{Active: &inactive}, 1)
	require.NoError(t, err)
	require.Equal(t, 1, list.TotalElements)
	require.Equal(t, 15, list.PageSize)
}

func TestService_AdminUserDetails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	u := addUser(t, f.store, "u")
	b1, b2 := addBook(t, f.store, "First"), addBook(t, f.store, "Second")

	_, err := f.svc.BorrowBook(ctx, u.ID, b1.ID)
	require.NoError(t, err)
	f.clock.Advance(loan.Day)
	_, err = f.svc.BorrowBook(ctx, u.ID, b2.ID)
	require.NoError(t, err)

	d, err := f.svc.AdminUserDetails(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, d.Activities, 2)
	require.Len(t, d.CurrentBorrows, 2)
	require.Equal(t, "First", d.CurrentBorrows[0].BookTitle)
	require.ElementsMatch(t, []uuid.UUID{b1.ID, b2.ID}, d.User.IssuedBooks)
}

func TestService_Catalog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	year := 1965
	b, err := f.svc.AddBook(ctx, model.BookRequest{
		Title: "Dune", Author: "Frank Herbert", Category: model.CategoryFiction,
		ISBN: "978-0441013593", PublishedYear: &year,
	})
	require.NoError(t, err)
	require.True(t, b.Availability)

	_, err = f.svc.AddBook(ctx, model.BookRequest{Title: "Copy", Author: "X", ISBN: "978-0441013593"})
	require.ErrorIs(t, err, errs.ErrAlreadyExists)

	_, err = f.svc.AddBook(ctx, model.BookRequest{Title: "Bad", Author: "X", Category: "Poetry"})
	require.ErrorIs(t, err, errs.ErrValidation)

	future := f.clock.Now().Year() + 2
	_, err = f.svc.AddBook(ctx, model.BookRequest{Title: "Bad", Author: "X", PublishedYear: &future})
	require.ErrorIs(t, err, errs.ErrValidation)

	updated, err := f.svc.UpdateBook(ctx, b.ID, model.BookRequest{
		Title: "Dune", Author: "Frank Herbert", Category: model.CategoryScience, ISBN: "978-0441013593",
	})
	require.NoError(t, err)
	require.Equal(t, model.CategoryScience, updated.Category)

	for i := 0; i < 13; i++ {
		_, err := f.svc.AddBook(ctx, model.BookRequest{Title: "Filler", Author: "Anon"})
		require.NoError(t, err)
	}
	page, err := f.svc.ExploreBooks(ctx, model.BookFilter{}, 1, false)
	require.NoError(t, err)
	require.Len(t, page.Items, 12)
	require.Equal(t, 14, page.TotalElements)
	require.Equal(t, 2, page.TotalPages)

	found, err := f.svc.ExploreBooks(ctx, model.BookFilter{Search: "herbert"}, 1, true)
	require.NoError(t, err)
	require.Equal(t, 1, found.TotalElements)

	cats, err := f.svc.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Category{model.CategoryGeneral, model.CategoryScience}, cats)
}

func TestService_LoanEvents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	userID := uuid.New()

	err := f.svc.RecordLoanEvent(ctx, kafka.LoanEvent{
		Timestamp: start, EventType: kafka.EventBorrow,
		ActivityUid: uuid.NewString(), UserUid: userID.String(), BookUid: uuid.NewString(),
	})
	require.NoError(t, err)
	err = f.svc.RecordLoanEvent(ctx, kafka.LoanEvent{
		Timestamp: start.Add(time.Hour), EventType: kafka.EventReturn, Fine: 2, ComputedFine: 2,
		ActivityUid: uuid.NewString(), UserUid: userID.String(), BookUid: uuid.NewString(),
	})
	require.NoError(t, err)

	err = f.svc.RecordLoanEvent(ctx, kafka.LoanEvent{ActivityUid: "nope"})
	require.ErrorIs(t, err, errs.ErrValidation)

	events, err := f.svc.ListLoanEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	stats, err := f.svc.LoanEventStats(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.LoanEventStats{{
		UserID: userID, LastUpdated: start.Add(time.Hour), Borrows: 1, Returns: 1, TotalFines: 2,
	}}, stats)
}

func TestService_AdminListActivities(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	ann, bob := addUser(t, f.store, "ann"), addUser(t, f.store, "bob")
	dune, emma := addBook(t, f.store, "Dune"), addBook(t, f.store, "Emma")

	_, err := f.svc.BorrowBook(ctx, ann.ID, dune.ID)
	require.NoError(t, err)
	f.clock.Advance(3 * loan.Day)
	_, err = f.svc.BorrowBook(ctx, bob.ID, emma.ID)
	require.NoError(t, err)
	f.clock.Advance(20 * loan.Day)
	_, err = f.svc.ReturnBook(ctx, ann.ID, dune.ID)
	require.NoError(t, err)

	all, err := f.svc.AdminListActivities(ctx, model.AdminActivityQuery{Status: "all"})
	require.NoError(t, err)
	require.Equal(t, 3, all.TotalElements)
	require.Equal(t, model.StatusSummary{Total: 3, Returned: 2, Overdue: 1}, all.Summary)

	overdue, err := f.svc.AdminListActivities(ctx, model.AdminActivityQuery{Status: string(model.StatusOverdue)})
	require.NoError(t, err)
	require.Len(t, overdue.Items, 1)
	require.Equal(t, bob.ID, overdue.Items[0].UserID)

	byUser, err := f.svc.AdminListActivities(ctx, model.AdminActivityQuery{User: "ann"})
	require.NoError(t, err)
	require.Len(t, byUser.Items, 2)

	byBook, err := f.svc.AdminListActivities(ctx, model.AdminActivityQuery{Book: "emma"})
	require.NoError(t, err)
	require.Len(t, byBook.Items, 1)

	from, to := start.Add(loan.Day), start.Add(loan.Day)
	after, err := f.svc.AdminListActivities(ctx, model.AdminActivityQuery{From: &from})
	require.NoError(t, err)
	require.Len(t, after.Items, 2)
	before, err := f.svc.AdminListActivities(ctx, model.AdminActivityQuery{To: &to})
	require.NoError(t, err)
	require.Len(t, before.Items, 1)
	require.Equal(t, model.ActionBorrow, before.Items[0].Action)

	_, err = f.svc.AdminListActivities(ctx, model.AdminActivityQuery{Status: "late"})
	require.ErrorIs(t, err, errs.ErrValidation)
}
