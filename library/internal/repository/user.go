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

var userColumns = []string{
	"id", "name", "email", "password_hash", "role", "phone", "address",
	"join_date", "is_active", "created_at", "updated_at",
}

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	query := `insert into users (id, name, email, password_hash, role, phone, address,
		join_date, is_active, created_at, updated_at)
	values (@id, @name, @email, @password_hash, @role, @phone, @address,
		@join_date, @is_active, @created_at, @updated_at)`
	args := pgx.NamedArgs{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"phone":         user.Phone,
		"address":       user.Address,
		"join_date":     user.JoinDate,
		"is_active":     user.IsActive,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}
	if _, err := r.q(ctx).Exec(ctx, query, args); err != nil {
		return model.User{}, mapError(err, errs.ErrUserNotFound, "create user")
	}
	user.IssuedBooks = []uuid.UUID{}
	return user, nil
}

func (r *repository) getUser(ctx context.Context, where sq.Sqlizer, lock bool) (model.User, error) {
	b := qb.Select(userColumns...).From(usersTableName).Where(where)
	if lock {
		b = b.Suffix("for update")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return model.User{}, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return model.User{}, mapError(err, errs.ErrUserNotFound, "get user")
	}
	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[model.User])
	if err != nil {
		return model.User{}, mapError(err, errs.ErrUserNotFound, "get user")
	}
	issued, err := r.issuedBooks(ctx, []uuid.UUID{user.ID})
	if err != nil {
		return model.User{}, err
	}
	user.IssuedBooks = issued[user.ID]
	if user.IssuedBooks == nil {
		user.IssuedBooks = []uuid.UUID{}
	}
	return user, nil
}

func (r *repository) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"id": id}, false)
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"email": email}, false)
}

func (r *repository) GetUserForUpdate(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"id": id}, true)
}

type issuedRow struct {
	UserID uuid.UUID `db:"user_id"`
	BookID uuid.UUID `db:"book_id"`
}

func (r *repository) issuedBooks(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := make(map[uuid.UUID][]uuid.UUID, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	query, args, err := qb.Select("user_id", "book_id").
		From(issuedBooksTableName).
		Where(sq.Eq{"user_id": userIDs}).
		OrderBy("issued_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "issued books")
	}
	issued, err := pgx.CollectRows(rows, pgx.RowToStructByName[issuedRow])
	if err != nil {
		return nil, errors.Wrap(err, "issued books")
	}
	for _, row := range issued {
		out[row.UserID] = append(out[row.UserID], row.BookID)
	}
	return out, nil
}

func (r *repository) updateUser(ctx context.Context, id uuid.UUID, set map[string]any) (model.User, error) {
	query, args, err := qb.Update(usersTableName).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return model.User{}, mapError(err, errs.ErrUserNotFound, "update user")
	}
	if tag.RowsAffected() == 0 {
		return model.User{}, errs.ErrUserNotFound
	}
	return r.GetUser(ctx, id)
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, req model.ProfileRequest, at time.Time) (model.User, error) {
	return r.updateUser(ctx, id, map[string]any{
		"name":       req.Name,
		"phone":      req.Phone,
		"address":    req.Address,
		"updated_at": at,
	})
}

func (r *repository) SetUserActive(ctx context.Context, id uuid.UUID, active bool, at time.Time) (model.User, error) {
	return r.updateUser(ctx, id, map[string]any{
		"is_active":  active,
		"updated_at": at,
	})
}

func (r *repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	query, args, err := qb.Delete(usersTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, errs.ErrUserNotFound, "delete user")
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

func (r *repository) AddIssuedBook(ctx context.Context, userID, bookID uuid.UUID, at time.Time) error {
	query, args, err := qb.Insert(issuedBooksTableName).
		Columns("user_id", "book_id", "issued_at").
		Values(userID, bookID, at).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q(ctx).Exec(ctx, query, args...); err != nil {
		return mapError(err, errs.ErrUserNotFound, "add issued book")
	}
	return nil
}

// RemoveIssuedBook is a no-op when the book is not in the list.
func (r *repository) RemoveIssuedBook(ctx context.Context, userID, bookID uuid.UUID) error {
	query, args, err := qb.Delete(issuedBooksTableName).
		Where(sq.Eq{"user_id": userID, "book_id": bookID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q(ctx).Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "remove issued book")
	}
	return nil
}

func userWhere(filter model.UserFilter) sq.And {
	where := sq.And{}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		where = append(where, sq.Or{sq.ILike{"name": p}, sq.ILike{"email": p}})
	}
	if filter.Role != "" {
		where = append(where, sq.Eq{"role": filter.Role})
	}
	if filter.Active != nil {
		where = append(where, sq.Eq{"is_active": *filter.Active})
	}
	return where
}

func (r *repository) ListUsers(ctx context.Context, filter model.UserFilter, paging model.Paging) ([]model.User, int, error) {
	where := userWhere(filter)

	total, err := r.count(ctx, qb.Select("count(*)").From(usersTableName).Where(where))
	if err != nil {
		return nil, 0, errors.Wrap(err, "count users")
	}

	query, args, err := withPaging(
		qb.Select(userColumns...).From(usersTableName).Where(where).OrderBy("created_at desc", "id"),
		paging,
	).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list users")
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[model.User])
	if err != nil {
		return nil, 0, errors.Wrap(err, "list users")
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	issued, err := r.issuedBooks(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].IssuedBooks = issued[users[i].ID]
		if users[i].IssuedBooks == nil {
			users[i].IssuedBooks = []uuid.UUID{}
		}
	}
	return users, total, nil
}

func (r *repository) CountUsers(ctx context.Context) (model.UserCounts, error) {
	query := `select count(*) as total,
		count(*) filter (where is_active) as active,
		count(*) filter (where role = 'admin') as admins
	from users`
	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		return model.UserCounts{}, errors.Wrap(err, "count users")
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[model.UserCounts])
}
