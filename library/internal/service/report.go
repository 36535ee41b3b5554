package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/smart-library/library/internal/model"
)

const (
	dashboardRecent  = 10
	dashboardOverdue = 5
	dashboardTop     = 5
)

// Dashboard builds the admin overview. The sub-queries are independent reads
// and run concurrently.
func (s *Service) Dashboard(ctx context.Context) (model.Dashboard, error) {
	now := s.clock()
	if err := s.promote(ctx, now, nil); err != nil {
		return model.Dashboard{}, err
	}

	var (
		d       = model.Dashboard{CurrentYear: now.Year()}
		users   model.UserCounts
		books   model.BookCounts
		summary model.StatusSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.repo.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		books, err = s.repo.CountBooks(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary, err = s.repo.StatusSummary(gctx, nil)
		return err
	})
	g.Go(func() error {
		items, _, err := s.repo.ListActivities(gctx, model.ActivityFilter{}, model.Paging{Page: 1, PageSize: dashboardRecent})
		d.RecentActivities = items
		return err
	})
	g.Go(func() (err error) {
		d.OverdueActivities, err = s.repo.ListOverdue(gctx, dashboardOverdue)
		return err
	})
	g.Go(func() (err error) {
		d.MonthlyBorrows, err = s.repo.MonthlyBorrows(gctx, now.Year())
		return err
	})
	g.Go(func() (err error) {
		d.PopularBooks, err = s.repo.PopularBooks(gctx, dashboardTop)
		return err
	})
	g.Go(func() (err error) {
		d.ActiveUsers, err = s.repo.ActiveUsers(gctx, dashboardTop)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Dashboard{}, err
	}

	d.Stats = model.DashboardCounts{
		TotalUsers:     users.Total - users.Admins,
		TotalBooks:     books.Total,
		AvailableBooks: books.Available,
		BorrowedBooks:  books.Borrowed,
		ActiveLoans:    summary.Active,
		OverdueLoans:   summary.Overdue,
	}
	d.RecentActivities = classify(d.RecentActivities, now)
	d.OverdueActivities = classify(d.OverdueActivities, now)
	if d.PopularBooks == nil {
		d.PopularBooks = []model.PopularBook{}
	}
	if d.ActiveUsers == nil {
		d.ActiveUsers = []model.ActiveUser{}
	}
	return d, nil
}

func (s *Service) SystemStats(ctx context.Context) (model.SystemStats, error) {
	if err := s.promote(ctx, s.clock(), nil); err != nil {
		return model.SystemStats{}, err
	}
	var st model.SystemStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.Users, err = s.repo.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.Books, err = s.repo.CountBooks(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.Activities, err = s.repo.StatusSummary(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.SystemStats{}, err
	}
	return st, nil
}
