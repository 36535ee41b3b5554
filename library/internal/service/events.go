package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Astemirdum/smart-library/library/internal/errs"
	"github.com/Astemirdum/smart-library/library/internal/model"
	"github.com/Astemirdum/smart-library/pkg/kafka"
)

// RecordLoanEvent stores one event of the loan feed in the audit table.
func (s *Service) RecordLoanEvent(ctx context.Context, ev kafka.LoanEvent) error {
	activityID, err := uuid.Parse(ev.ActivityUid)
	if err != nil {
		return errors.Wrap(errs.ErrValidation, "activityUid")
	}
	userID, err := uuid.Parse(ev.UserUid)
	if err != nil {
		return errors.Wrap(errs.ErrValidation, "userUid")
	}
	bookID, err := uuid.Parse(ev.BookUid)
	if err != nil {
		return errors.Wrap(errs.ErrValidation, "bookUid")
	}
	return s.repo.InsertLoanEvent(ctx, model.LoanEventRecord{
		OccurredAt:     ev.Timestamp,
		EventType:      string(ev.EventType),
		ActivityID:     activityID,
		UserID:         userID,
		BookID:         bookID,
		Fine:           ev.Fine,
		ComputedFine:   ev.ComputedFine,
		FineOverridden: ev.FineOverridden,
		Notes:          ev.Notes,
	})
}

func (s *Service) ListLoanEvents(ctx context.Context, limit int) ([]model.LoanEventRecord, error) {
	if limit <= 0 {
		limit = defaultEventsLimit
	}
	events, err := s.repo.ListLoanEvents(ctx, limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.LoanEventRecord{}
	}
	return events, nil
}

func (s *Service) LoanEventStats(ctx context.Context) ([]model.LoanEventStats, error) {
	stats, err := s.repo.LoanEventStats(ctx)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []model.LoanEventStats{}
	}
	return stats, nil
}
