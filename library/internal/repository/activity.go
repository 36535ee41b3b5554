package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/Astemirdum/smart-library/library/internal/errs"
	"github.com/Astemirdum/smart-library/library/internal/model"
)

var activityColumns = []string{
	"a.id", "a.user_id", "a.book_id", "a.action", "a.issue_date", "a.due_date",
	"a.return_date", "a.status", "a.fine", "a.fine_overridden", "a.notes",
	"a.created_at", "a.updated_at",
}

func activityViewSelect() sq.SelectBuilder {
	return qb.Select(activityColumns...).
		Columns(
			"coalesce(b.title, '') as book_title", "coalesce(b.author, '') as book_author",
			"coalesce(b.category, '') as book_category",
			"coalesce(u.name, '') as user_name", "coalesce(u.email, '') as user_email",
		).
		From(activitiesTableName + " a").
		LeftJoin(booksTableName + " b on b.id = a.book_id").
		LeftJoin(usersTableName + " u on u.id = a.user_id")
}

func openStatuses() []string {
	out := make([]string, 0, len(model.OpenStatuses))
	for _, s := range model.OpenStatuses {
		out = append(out, string(s))
	}
	return out
}

func (r *repository) InsertActivity(ctx context.Context, a model.Activity) (model.Activity, error) {
	query := `insert into activities (id, user_id, book_id, action, issue_date, due_date,
		return_date, status, fine, fine_overridden, notes, created_at, updated_at)
	values (@id, @user_id, @book_id, @action, @issue_date, @due_date,
		@return_date, @status, @fine, @fine_overridden, @notes, @created_at, @updated_at)`
	args := pgx.NamedArgs{
		"id":              a.ID,
		"user_id":         a.UserID,
		"book_id":         a.BookID,
		"action":          a.Action,
		"issue_date":      a.IssueDate,
		"due_date":        a.DueDate,
		"return_date":     a.ReturnDate,
		"status":          a.Status,
		"fine":            a.Fine,
		"fine_overridden": a.FineOverridden,
		"notes":           a.Notes,
		"created_at":      a.CreatedAt,
		"updated_at":      a.UpdatedAt,
	}
	if _, err := r.q(ctx).Exec(ctx, query, args); err != nil {
		return model.Activity{}, mapError(err, errs.ErrNotFound, "insert activity")
	}
	return a, nil
}

func (r *repository) FindOpenLoan(ctx context.Context, userID, bookID uuid.UUID) (model.Activity, error) {
	query, args, err := qb.Select(activityColumns...).
		From(activitiesTableName + " a").
		Where(sq.Eq{
			"a.user_id": userID,
			"a.book_id": bookID,
			"a.status":  openStatuses(),
		}).
		OrderBy("a.issue_date desc").
		Limit(1).
		Suffix("for update").
		ToSql()
	if err != nil {
		return model.Activity{}, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return model.Activity{}, mapError(err, errs.ErrNoActiveLoan, "find open loan")
	}
	a, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[model.Activity])
	if err != nil {
		return model.Activity{}, mapError(err, errs.ErrNoActiveLoan, "find open loan")
	}
	return a, nil
}

func (r *repository) CountOpenLoans(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := r.count(ctx, qb.Select("count(*)").
		From(activitiesTableName).
		Where(sq.Eq{"user_id": userID, "status": openStatuses()}))
	if err != nil {
		return 0, errors.Wrap(err, "count open loans")
	}
	return n, nil
}

func (r *repository) CloseLoan(ctx context.Context, id uuid.UUID, info model.ReturnInfo) (model.Activity, error) {
	b := qb.Update(activitiesTableName+" a").
		Set("status", model.StatusReturned).
		Set("return_date", info.ReturnDate).
		Set("fine", info.Fine).
		Set("fine_overridden", info.FineOverridden).
		Set("updated_at", info.ReturnDate).
		Where(sq.Eq{"a.id": id, "a.status": openStatuses()}).
		Suffix("returning " + joinColumns(activityColumns))
	if info.Notes != nil {
		b = b.Set("notes", *info.Notes)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return model.Activity{}, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return model.Activity{}, mapError(err, errs.ErrNoActiveLoan, "close loan")
	}
	a, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[model.Activity])
	if err != nil {
		return model.Activity{}, mapError(err, errs.ErrNoActiveLoan, "close loan")
	}
	return a, nil
}

func (r *repository) PromoteOverdue(ctx context.Context, now time.Time, userID *uuid.UUID) (int64, error) {
	b := qb.Update(activitiesTableName).
		Set("status", model.StatusOverdue).
		Set("updated_at", now).
		Where(sq.Eq{"status": model.StatusActive}).
		Where(sq.Lt{"due_date": now})
	if userID != nil {
		b = b.Where(sq.Eq{"user_id": *userID})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "promote overdue")
	}
	return tag.RowsAffected(), nil
}

func activityWhere(filter model.ActivityFilter) sq.And {
	where := sq.And{}
	if filter.UserID != nil {
		where = append(where, sq.Eq{"a.user_id": *filter.UserID})
	}
	if filter.Status != "" {
		where = append(where, sq.Eq{"a.status": filter.Status})
	}
	if filter.UserQuery != "" {
		p := likePattern(filter.UserQuery)
		where = append(where, sq.Or{sq.ILike{"u.name": p}, sq.ILike{"u.email": p}})
	}
	if filter.BookQuery != "" {
		p := likePattern(filter.BookQuery)
		where = append(where, sq.Or{sq.ILike{"b.title": p}, sq.ILike{"b.author": p}})
	}
	if filter.From != nil {
		where = append(where, sq.GtOrEq{"a.created_at": *filter.From})
	}
	if filter.To != nil {
		where = append(where, sq.LtOrEq{"a.created_at": *filter.To})
	}
	return where
}

func (r *repository) ListActivities(ctx context.Context, filter model.ActivityFilter, paging model.Paging) ([]model.ActivityView, int, error) {
	where := activityWhere(filter)

	total, err := r.count(ctx, qb.Select("count(*)").
		From(activitiesTableName+" a").
		LeftJoin(booksTableName+" b on b.id = a.book_id").
		LeftJoin(usersTableName+" u on u.id = a.user_id").
		Where(where))
	if err != nil {
		return nil, 0, errors.Wrap(err, "count activities")
	}

	items, err := r.listViews(ctx, withPaging(
		activityViewSelect().Where(where).OrderBy("a.created_at desc", "a.id"),
		paging,
	))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) listViews(ctx context.Context, b sq.SelectBuilder) ([]model.ActivityView, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list activities")
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[model.ActivityView])
	if err != nil {
		return nil, errors.Wrap(err, "list activities")
	}
	return items, nil
}

func (r *repository) ListOpenLoans(ctx context.Context, userID uuid.UUID) ([]model.ActivityView, error) {
	return r.listViews(ctx, activityViewSelect().
		Where(sq.Eq{"a.user_id": userID, "a.status": openStatuses()}).
		OrderBy("a.due_date asc"))
}

func (r *repository) ListOverdue(ctx context.Context, limit int) ([]model.ActivityView, error) {
	b := activityViewSelect().
		Where(sq.Eq{"a.status": model.StatusOverdue}).
		OrderBy("a.due_date asc")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	return r.listViews(ctx, b)
}

func (r *repository) ListDueBetween(ctx context.Context, from, to time.Time) ([]model.ActivityView, error) {
	return r.listViews(ctx, activityViewSelect().
		Where(sq.Eq{"a.status": model.StatusActive}).
		Where(sq.GtOrEq{"a.due_date": from}).
		Where(sq.LtOrEq{"a.due_date": to}).
		OrderBy("a.due_date asc"))
}

type statusCount struct {
	Status model.Status `db:"status"`
	Count  int          `db:"count"`
}

func (r *repository) StatusSummary(ctx context.Context, userID *uuid.UUID) (model.StatusSummary, error) {
	b := qb.Select("status", "count(*) as count").From(activitiesTableName).GroupBy("status")
	if userID != nil {
		b = b.Where(sq.Eq{"user_id": *userID})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return model.StatusSummary{}, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return model.StatusSummary{}, errors.Wrap(err, "status summary")
	}
	counts, err := pgx.CollectRows(rows, pgx.RowToStructByName[statusCount])
	if err != nil {
		return model.StatusSummary{}, errors.Wrap(err, "status summary")
	}
	var summary model.StatusSummary
	for _, c := range counts {
		summary.Add(c.Status, c.Count)
	}
	return summary, nil
}

type monthCount struct {
	Month int `db:"month"`
	Count int `db:"count"`
}

func (r *repository) MonthlyBorrows(ctx context.Context, year int) ([]int, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := qb.Select("extract(month from created_at at time zone 'UTC')::int as month", "count(*) as count").
		From(activitiesTableName).
		Where(sq.Eq{"action": model.ActionBorrow}).
		Where(sq.GtOrEq{"created_at": from}).
		Where(sq.Lt{"created_at": from.AddDate(1, 0, 0)}).
		GroupBy("1").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "monthly borrows")
	}
	counts, err := pgx.CollectRows(rows, pgx.RowToStructByName[monthCount])
	if err != nil {
		return nil, errors.Wrap(err, "monthly borrows")
	}
	months := make([]int, 12)
	for _, c := range counts {
		if c.Month >= 1 && c.Month <= 12 {
			months[c.Month-1] = c.Count
		}
	}
	return months, nil
}

func (r *repository) PopularBooks(ctx context.Context, limit int) ([]model.PopularBook, error) {
	query, args, err := qb.Select("a.book_id", "b.title", "b.author", "count(*) as borrow_count").
		From(activitiesTableName+" a").
		Join(booksTableName+" b on b.id = a.book_id").
		Where(sq.Eq{"a.action": model.ActionBorrow}).
		GroupBy("a.book_id", "b.title", "b.author").
		OrderBy("borrow_count desc", "b.title").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "popular books")
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.PopularBook])
}

func (r *repository) ActiveUsers(ctx context.Context, limit int) ([]model.ActiveUser, error) {
	query, args, err := qb.Select("a.user_id", "u.name", "u.email", "count(*) as activity_count").
		From(activitiesTableName+" a").
		Join(usersTableName+" u on u.id = a.user_id").
		GroupBy("a.user_id", "u.name", "u.email").
		OrderBy("activity_count desc", "u.name").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "active users")
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.ActiveUser])
}
