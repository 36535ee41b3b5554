package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/Astemirdum/smart-library/library/internal/model"
)

func (r *repository) InsertLoanEvent(ctx context.Context, ev model.LoanEventRecord) error {
	query := `insert into loan_events (occurred_at, event_type, activity_id, user_id, book_id,
		fine, computed_fine, fine_overridden, notes)
	values (@occurred_at, @event_type, @activity_id, @user_id, @book_id,
		@fine, @computed_fine, @fine_overridden, @notes)
	on conflict (activity_id, event_type) do nothing`
	args := pgx.NamedArgs{
		"occurred_at":     ev.OccurredAt,
		"event_type":      ev.EventType,
		"activity_id":     ev.ActivityID,
		"user_id":         ev.UserID,
		"book_id":         ev.BookID,
		"fine":            ev.Fine,
		"computed_fine":   ev.ComputedFine,
		"fine_overridden": ev.FineOverridden,
		"notes":           ev.Notes,
	}
	if _, err := r.q(ctx).Exec(ctx, query, args); err != nil {
		return errors.Wrap(err, "insert loan event")
	}
	return nil
}

func (r *repository) ListLoanEvents(ctx context.Context, limit int) ([]model.LoanEventRecord, error) {
	b := qb.Select("id", "occurred_at", "event_type", "activity_id", "user_id", "book_id",
		"fine", "computed_fine", "fine_overridden", "notes").
		From(loanEventsTableName).
		OrderBy("occurred_at desc", "id desc")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list loan events")
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.LoanEventRecord])
}

func (r *repository) LoanEventStats(ctx context.Context) ([]model.LoanEventStats, error) {
	query := `select user_id,
		max(occurred_at) as last_updated,
		count(*) filter (where event_type = 'BORROW') as borrows,
		count(*) filter (where event_type in ('RETURN', 'FORCE_RETURN')) as returns,
		count(*) filter (where fine_overridden) as overrides,
		coalesce(sum(fine), 0)::float8 as total_fines
	from loan_events
	group by user_id
	order by last_updated desc`
	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "loan event stats")
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.LoanEventStats])
}
