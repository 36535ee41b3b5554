package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Astemirdum/smart-library/library/internal/errs"
	"github.com/Astemirdum/smart-library/library/internal/loan"
	"github.com/Astemirdum/smart-library/library/internal/model"
)

// promote persists overdue promotion before a read; userID scopes it.
func (s *Service) promote(ctx context.Context, now time.Time, userID *uuid.UUID) error {
	n, err := s.repo.PromoteOverdue(ctx, now, userID)
	if err != nil {
		return errors.Wrap(err, "promote overdue")
	}
	if n > 0 {
		s.log.Debug("loans promoted to overdue")
	}
	return nil
}

func classify(items []model.ActivityView, now time.Time) []model.ActivityView {
	for i := range items {
		items[i].Status = loan.Classify(items[i].Activity, now)
	}
	if items == nil {
		return []model.ActivityView{}
	}
	return items
}

func parseStatus(status string) (model.Status, error) {
	if status == "" || status == "all" {
		return "", nil
	}
	st := model.Status(status)
	if !st.Valid() {
		return "", errors.Wrapf(errs.ErrValidation, "unknown status %q", status)
	}
	return st, nil
}

// GetUserActivity returns one page of the user's ledger, newest first, with
// the status summary over the user's whole history.
func (s *Service) GetUserActivity(ctx context.Context, userID uuid.UUID, status string, page int) (model.ListActivities, error) {
	st, err := parseStatus(status)
	if err != nil {
		return model.ListActivities{}, err
	}
	now := s.clock()
	if err := s.promote(ctx, now, &userID); err != nil {
		return model.ListActivities{}, err
	}
	return s.listActivities(ctx, now, model.ActivityFilter{UserID: &userID, Status: st}, page, userActivityPageSize)
}

func (s *Service) AdminListActivities(ctx context.Context, q model.AdminActivityQuery) (model.ListActivities, error) {
	st, err := parseStatus(q.Status)
	if err != nil {
		return model.ListActivities{}, err
	}
	now := s.clock()
	if err := s.promote(ctx, now, nil); err != nil {
		return model.ListActivities{}, err
	}
	return s.listActivities(ctx, now, model.ActivityFilter{
		Status:    st,
		UserQuery: q.User,
		BookQuery: q.Book,
		From:      q.From,
		To:        q.To,
	}, q.Page, adminActivityPageSize)
}

func (s *Service) listActivities(
	ctx context.Context, now time.Time, filter model.ActivityFilter, page, size int,
) (model.ListActivities, error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.repo.ListActivities(ctx, filter, model.Paging{Page: page, PageSize: size})
	if err != nil {
		return model.ListActivities{}, err
	}
	summary, err := s.repo.StatusSummary(ctx, filter.UserID)
	if err != nil {
		return model.ListActivities{}, err
	}
	return model.ListActivities{
		Paging:  model.NewPaging(page, size, total),
		Items:   classify(items, now),
		Summary: summary,
	}, nil
}

func (s *Service) OverdueActivities(ctx context.Context) ([]model.ActivityView, error) {
	now := s.clock()
	if err := s.promote(ctx, now, nil); err != nil {
		return nil, err
	}
	items, err := s.repo.ListOverdue(ctx, 0)
	if err != nil {
		return nil, err
	}
	return classify(items, now), nil
}

// DueSoon lists active loans due within days (2 when days <= 0).
func (s *Service) DueSoon(ctx context.Context, days int) ([]model.ActivityView, error) {
	if days <= 0 {
		days = defaultDueSoonDays
	}
	now := s.clock()
	if err := s.promote(ctx, now, nil); err != nil {
		return nil, err
	}
	items, err := s.repo.ListDueBetween(ctx, now, now.Add(time.Duration(days)*loan.Day))
	if err != nil {
		return nil, err
	}
	return classify(items, now), nil
}
