// Package memory is an in-process Repository used by service tests and local
// runs without PostgreSQL. Transactions are serialised and roll back to a
// snapshot on error.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Astemirdum/smart-library/library/internal/errs"
	"github.com/Astemirdum/smart-library/library/internal/model"
	"github.com/Astemirdum/smart-library/library/internal/repository"
)

type state struct {
	books      map[uuid.UUID]model.Book
	users      map[uuid.UUID]model.User
	activities map[uuid.UUID]model.Activity
	events     []model.LoanEventRecord
	eventSeq   int64
}

func (s state) clone() state {
	c := state{
		books:      maps.Clone(s.books),
		users:      make(map[uuid.UUID]model.User, len(s.users)),
		activities: maps.Clone(s.activities),
		events:     slices.Clone(s.events),
		eventSeq:   s.eventSeq,
	}
	for id, u := range s.users {
		u.IssuedBooks = slices.Clone(u.IssuedBooks)
		c.users[id] = u
	}
	return c
}

type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   state
}

var _ repository.Repository = (*Store)(nil)

func New() *Store {
	return &Store{st: state{
		books:      map[uuid.UUID]model.Book{},
		users:      map[uuid.UUID]model.User{},
		activities: map[uuid.UUID]model.Activity{},
	}}
}

type txKey struct{}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	rollback := func() {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
	}
	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		rollback()
		return err
	}
	return nil
}

// lockWrite takes the write lock. Outside RunInTx it also waits for the running
// transaction, so a rollback to that transaction's snapshot cannot drop the write.
func (s *Store) lockWrite(ctx context.Context) (unlock func()) {
	if ctx.Value(txKey{}) != nil {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func contains(s, query string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(query)))
}

func page[T any](items []T, paging model.Paging) []T {
	if paging.PageSize <= 0 {
		return items
	}
	from := min(paging.Offset(), len(items))
	to := min(from+paging.PageSize, len(items))
	return items[from:to]
}

// Books.

func (s *Store) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	defer s.lockWrite(ctx)()
	if _, ok := s.st.books[book.ID]; ok {
		return model.Book{}, errs.ErrAlreadyExists
	}
	if book.ISBN != nil && s.isbnTaken(*book.ISBN, nil) {
		return model.Book{}, errs.ErrISBNTaken
	}
	book.Availability = true
	book.CurrentBorrower = nil
	s.st.books[book.ID] = book
	return book, nil
}

func (s *Store) UpdateBook(ctx context.Context, book model.Book) (model.Book, error) {
	defer s.lockWrite(ctx)()
	cur, ok := s.st.books[book.ID]
	if !ok {
		return model.Book{}, errs.ErrBookNotFound
	}
	if book.ISBN != nil && s.isbnTaken(*book.ISBN, &book.ID) {
		return model.Book{}, errs.ErrISBNTaken
	}
	cur.Title, cur.Author, cur.ISBN = book.Title, book.Author, book.ISBN
	cur.Description, cur.Category = book.Description, book.Category
	cur.PublishedYear, cur.Pages = book.PublishedYear, book.Pages
	cur.UpdatedAt = book.UpdatedAt
	s.st.books[book.ID] = cur
	return cur, nil
}

func (s *Store) DeleteBook(ctx context.Context, id uuid.UUID) error {
	defer s.lockWrite(ctx)()
	if _, ok := s.st.books[id]; !ok {
		return errs.ErrBookNotFound
	}
	delete(s.st.books, id)
	return nil
}

func (s *Store) bookView(b model.Book) model.BookView {
	v := model.BookView{Book: b}
	if b.CurrentBorrower != nil {
		if u, ok := s.st.users[*b.CurrentBorrower]; ok {
			name := u.Name
			v.BorrowerName = &name
		}
	}
	return v
}

func (s *Store) GetBook(_ context.Context, id uuid.UUID) (model.BookView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.st.books[id]
	if !ok {
		return model.BookView{}, errs.ErrBookNotFound
	}
	return s.bookView(b), nil
}

func (s *Store) GetBookForUpdate(_ context.Context, id uuid.UUID) (model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.st.books[id]
	if !ok {
		return model.Book{}, errs.ErrBookNotFound
	}
	return b, nil
}

func (s *Store) SetBorrower(ctx context.Context, bookID uuid.UUID, borrower *uuid.UUID, at time.Time) error {
	defer s.lockWrite(ctx)()
	b, ok := s.st.books[bookID]
	if !ok {
		return errs.ErrBookNotFound
	}
	if borrower != nil {
		if _, ok := s.st.users[*borrower]; !ok {
			return errs.ErrUserNotFound
		}
		id := *borrower
		borrower = &id
	}
	b.CurrentBorrower = borrower
	b.Availability = borrower == nil
	b.UpdatedAt = at
	s.st.books[bookID] = b
	return nil
}

func (s *Store) ListBooks(_ context.Context, filter model.BookFilter, paging model.Paging) ([]model.BookView, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.BookView
	for _, b := range s.st.books {
		if filter.Search != "" && !contains(b.Title, filter.Search) &&
			!contains(b.Author, filter.Search) && !contains(b.Description, filter.Search) {
			continue
		}
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.Availability != nil && b.Availability != *filter.Availability {
			continue
		}
		out = append(out, s.bookView(b))
	}
	slices.SortFunc(out, func(a, b model.BookView) int {
		if c := b.AddedDate.Compare(a.AddedDate); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return page(out, paging), len(out), nil
}

func (s *Store) isbnTaken(isbn string, exclude *uuid.UUID) bool {
	for _, b := range s.st.books {
		if b.ISBN != nil && *b.ISBN == isbn && (exclude == nil || b.ID != *exclude) {
			return true
		}
	}
	return false
}

func (s *Store) ISBNTaken(_ context.Context, isbn string, exclude *uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isbnTaken(isbn, exclude), nil
}

func (s *Store) Categories(_ context.Context) ([]model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[model.Category]struct{}{}
	for _, b := range s.st.books {
		seen[b.Category] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen)), nil
}

func (s *Store) CountBooks(_ context.Context) (model.BookCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var c model.BookCounts
	for _, b := range s.st.books {
		c.Total++
		if b.Availability {
			c.Available++
		} else {
			c.Borrowed++
		}
	}
	return c, nil
}

// Users.

func cloneUser(u model.User) model.User {
	u.IssuedBooks = slices.Clone(u.IssuedBooks)
	if u.IssuedBooks == nil {
		u.IssuedBooks = []uuid.UUID{}
	}
	return u
}

func (s *Store) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	defer s.lockWrite(ctx)()
	for _, u := range s.st.users {
		if u.Email == user.Email {
			return model.User{}, errs.ErrEmailTaken
		}
	}
	user.IssuedBooks = []uuid.UUID{}
	s.st.users[user.ID] = user
	return cloneUser(user), nil
}

func (s *Store) GetUser(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.st.users[id]
	if !ok {
		return model.User{}, errs.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.st.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return model.User{}, errs.ErrUserNotFound
}

func (s *Store) GetUserForUpdate(ctx context.Context, id uuid.UUID) (model.User, error) {
	return s.GetUser(ctx, id)
}

func (s *Store) mutateUser(ctx context.Context, id uuid.UUID, fn func(u *model.User)) (model.User, error) {
	defer s.lockWrite(ctx)()
	u, ok := s.st.users[id]
	if !ok {
		return model.User{}, errs.ErrUserNotFound
	}
	fn(&u)
	s.st.users[id] = u
	return cloneUser(u), nil
}

func (s *Store) UpdateProfile(ctx context.Context, id uuid.UUID, req model.ProfileRequest, at time.Time) (model.User, error) {
	return s.mutateUser(ctx, id, func(u *model.User) {
		u.Name, u.Phone, u.Address = req.Name, req.Phone, req.Address
		u.UpdatedAt = at
	})
}

func (s *Store) SetUserActive(ctx context.Context, id uuid.UUID, active bool, at time.Time) (model.User, error) {
	return s.mutateUser(ctx, id, func(u *model.User) {
		u.IsActive = active
		u.UpdatedAt = at
	})
}

func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	defer s.lockWrite(ctx)()
	if _, ok := s.st.users[id]; !ok {
		return errs.ErrUserNotFound
	}
	delete(s.st.users, id)
	return nil
}

func (s *Store) AddIssuedBook(ctx context.Context, userID, bookID uuid.UUID, _ time.Time) error {
	defer s.lockWrite(ctx)()
	u, ok := s.st.users[userID]
	if !ok {
		return errs.ErrUserNotFound
	}
	if slices.Contains(u.IssuedBooks, bookID) {
		return errs.ErrAlreadyExists
	}
	u.IssuedBooks = append(slices.Clone(u.IssuedBooks), bookID)
	s.st.users[userID] = u
	return nil
}

func (s *Store) RemoveIssuedBook(ctx context.Context, userID, bookID uuid.UUID) error {
	defer s.lockWrite(ctx)()
	u, ok := s.st.users[userID]
	if !ok {
		return nil
	}
	u.IssuedBooks = slices.DeleteFunc(slices.Clone(u.IssuedBooks), func(id uuid.UUID) bool { return id == bookID })
	s.st.users[userID] = u
	return nil
}

func (s *Store) ListUsers(_ context.Context, filter model.UserFilter, paging model.Paging) ([]model.User, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.User
	for _, u := range s.st.users {
		if filter.Search != "" && !contains(u.Name, filter.Search) && !contains(u.Email, filter.Search) {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Active != nil && u.IsActive != *filter.Active {
			continue
		}
		out = append(out, cloneUser(u))
	}
	slices.SortFunc(out, func(a, b model.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return page(out, paging), len(out), nil
}

func (s *Store) CountUsers(_ context.Context) (model.UserCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var c model.UserCounts
	for _, u := range s.st.users {
		c.Total++
		if u.IsActive {
			c.Active++
		}
		if u.IsAdmin() {
			c.Admins++
		}
	}
	return c, nil
}

// Loan ledger.

func (s *Store) InsertActivity(ctx context.Context, a model.Activity) (model.Activity, error) {
	defer s.lockWrite(ctx)()
	if _, ok := s.st.users[a.UserID]; !ok {
		return model.Activity{}, errs.ErrUserNotFound
	}
	if _, ok := s.st.books[a.BookID]; !ok {
		return model.Activity{}, errs.ErrBookNotFound
	}
	if _, ok := s.st.activities[a.ID]; ok {
		return model.Activity{}, errs.ErrAlreadyExists
	}
	s.st.activities[a.ID] = a
	return a, nil
}

func (s *Store) FindOpenLoan(_ context.Context, userID, bookID uuid.UUID) (model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var (
		found model.Activity
		ok    bool
	)
	for _, a := range s.st.activities {
		if a.UserID == userID && a.BookID == bookID && a.Status.Open() {
			if !ok || a.IssueDate.After(found.IssueDate) {
				found, ok = a, true
			}
		}
	}
	if !ok {
		return model.Activity{}, errs.ErrNoActiveLoan
	}
	return found, nil
}

func (s *Store) CountOpenLoans(_ context.Context, userID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, a := range s.st.activities {
		if a.UserID == userID && a.Status.Open() {
			n++
		}
	}
	return n, nil
}

func (s *Store) CloseLoan(ctx context.Context, id uuid.UUID, info model.ReturnInfo) (model.Activity, error) {
	defer s.lockWrite(ctx)()
	a, ok := s.st.activities[id]
	if !ok || !a.Status.Open() {
		return model.Activity{}, errs.ErrNoActiveLoan
	}
	ret := info.ReturnDate
	a.Status = model.StatusReturned
	a.ReturnDate = &ret
	a.Fine = info.Fine
	a.FineOverridden = info.FineOverridden
	if info.Notes != nil {
		a.Notes = *info.Notes
	}
	a.UpdatedAt = info.ReturnDate
	s.st.activities[id] = a
	return a, nil
}

func (s *Store) PromoteOverdue(ctx context.Context, now time.Time, userID *uuid.UUID) (int64, error) {
	defer s.lockWrite(ctx)()
	var n int64
	for id, a := range s.st.activities {
		if userID != nil && a.UserID != *userID {
			continue
		}
		if a.Status == model.StatusActive && a.DueDate != nil && a.DueDate.Before(now) {
			a.Status = model.StatusOverdue
			a.UpdatedAt = now
			s.st.activities[id] = a
			n++
		}
	}
	return n, nil
}

func (s *Store) view(a model.Activity) model.ActivityView {
	v := model.ActivityView{Activity: a}
	if b, ok := s.st.books[a.BookID]; ok {
		v.BookTitle, v.BookAuthor, v.BookCategory = b.Title, b.Author, b.Category
	}
	if u, ok := s.st.users[a.UserID]; ok {
		v.UserName, v.UserEmail = u.Name, u.Email
	}
	return v
}

func (s *Store) views(keep func(a model.Activity) bool) []model.ActivityView {
	var out []model.ActivityView
	for _, a := range s.st.activities {
		if keep(a) {
			out = append(out, s.view(a))
		}
	}
	return out
}

func byCreatedDesc(a, b model.ActivityView) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}

func byDueAsc(a, b model.ActivityView) int {
	var da, db time.Time
	if a.DueDate != nil {
		da = *a.DueDate
	}
	if b.DueDate != nil {
		db = *b.DueDate
	}
	return cmp.Or(da.Compare(db), strings.Compare(a.ID.String(), b.ID.String()))
}

func (s *Store) ListActivities(_ context.Context, filter model.ActivityFilter, paging model.Paging) ([]model.ActivityView, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.views(func(model.Activity) bool { return true })
	out = slices.DeleteFunc(out, func(v model.ActivityView) bool {
		switch {
		case filter.UserID != nil && v.UserID != *filter.UserID,
			filter.Status != "" && v.Status != filter.Status,
			filter.UserQuery != "" && !contains(v.UserName, filter.UserQuery) && !contains(v.UserEmail, filter.UserQuery),
			filter.BookQuery != "" && !contains(v.BookTitle, filter.BookQuery) && !contains(v.BookAuthor, filter.BookQuery),
			filter.From != nil && v.CreatedAt.Before(*filter.From),
			filter.To != nil && v.CreatedAt.After(*filter.To):
			return true
		}
		return false
	})
	slices.SortFunc(out, byCreatedDesc)
	return page(out, paging), len(out), nil
}

func (s *Store) ListOpenLoans(_ context.Context, userID uuid.UUID) ([]model.ActivityView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.views(func(a model.Activity) bool { return a.UserID == userID && a.Status.Open() })
	slices.SortFunc(out, byDueAsc)
	return out, nil
}

func (s *Store) ListOverdue(_ context.Context, limit int) ([]model.ActivityView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.views(func(a model.Activity) bool { return a.Status == model.StatusOverdue })
	slices.SortFunc(out, byDueAsc)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListDueBetween(_ context.Context, from, to time.Time) ([]model.ActivityView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.views(func(a model.Activity) bool {
		return a.Status == model.StatusActive && a.DueDate != nil &&
			!a.DueDate.Before(from) && !a.DueDate.After(to)
	})
	slices.SortFunc(out, byDueAsc)
	return out, nil
}

func (s *Store) StatusSummary(_ context.Context, userID *uuid.UUID) (model.StatusSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum model.StatusSummary
	for _, a := range s.st.activities {
		if userID == nil || a.UserID == *userID {
			sum.Add(a.Status, 1)
		}
	}
	return sum, nil
}

func (s *Store) MonthlyBorrows(_ context.Context, year int) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	months := make([]int, 12)
	for _, a := range s.st.activities {
		created := a.CreatedAt.UTC()
		if a.Action == model.ActionBorrow && created.Year() == year {
			months[created.Month()-1]++
		}
	}
	return months, nil
}

func (s *Store) PopularBooks(_ context.Context, limit int) ([]model.PopularBook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[uuid.UUID]int{}
	for _, a := range s.st.activities {
		if a.Action == model.ActionBorrow {
			counts[a.BookID]++
		}
	}
	out := make([]model.PopularBook, 0, len(counts))
	for id, n := range counts {
		b, ok := s.st.books[id]
		if !ok {
			continue
		}
		out = append(out, model.PopularBook{BookID: id, Title: b.Title, Author: b.Author, BorrowCount: n})
	}
	slices.SortFunc(out, func(a, b model.PopularBook) int {
		return cmp.Or(cmp.Compare(b.BorrowCount, a.BorrowCount), strings.Compare(a.Title, b.Title))
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ActiveUsers(_ context.Context, limit int) ([]model.ActiveUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[uuid.UUID]int{}
	for _, a := range s.st.activities {
		counts[a.UserID]++
	}
	out := make([]model.ActiveUser, 0, len(counts))
	for id, n := range counts {
		u, ok := s.st.users[id]
		if !ok {
			continue
		}
		out = append(out, model.ActiveUser{UserID: id, Name: u.Name, Email: u.Email, ActivityCount: n})
	}
	slices.SortFunc(out, func(a, b model.ActiveUser) int {
		return cmp.Or(cmp.Compare(b.ActivityCount, a.ActivityCount), strings.Compare(a.Name, b.Name))
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Loan event feed.

func (s *Store) InsertLoanEvent(ctx context.Context, ev model.LoanEventRecord) error {
	defer s.lockWrite(ctx)()
	for _, cur := range s.st.events {
		if cur.ActivityID == ev.ActivityID && cur.EventType == ev.EventType {
			return nil
		}
	}
	s.st.eventSeq++
	ev.ID = s.st.eventSeq
	s.st.events = append(s.st.events, ev)
	return nil
}

func (s *Store) ListLoanEvents(_ context.Context, limit int) ([]model.LoanEventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.st.events)
	slices.SortFunc(out, func(a, b model.LoanEventRecord) int {
		return cmp.Or(b.OccurredAt.Compare(a.OccurredAt), cmp.Compare(b.ID, a.ID))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) LoanEventStats(_ context.Context) ([]model.LoanEventStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byUser := map[uuid.UUID]*model.LoanEventStats{}
	for _, ev := range s.st.events {
		st, ok := byUser[ev.UserID]
		if !ok {
			st = &model.LoanEventStats{UserID: ev.UserID}
			byUser[ev.UserID] = st
		}
		if ev.OccurredAt.After(st.LastUpdated) {
			st.LastUpdated = ev.OccurredAt
		}
		switch ev.EventType {
		case "BORROW":
			st.Borrows++
		case "RETURN", "FORCE_RETURN":
			st.Returns++
		}
		if ev.FineOverridden {
			st.Overrides++
		}
		st.TotalFines += ev.Fine
	}
	out := make([]model.LoanEventStats, 0, len(byUser))
	for _, st := range byUser {
		out = append(out, *st)
	}
	slices.SortFunc(out, func(a, b model.LoanEventStats) int {
		return b.LastUpdated.Compare(a.LastUpdated)
	})
	return out, nil
}
