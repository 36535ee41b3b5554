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

var bookColumns = []string{
	"b.id", "b.title", "b.author", "b.isbn", "b.description", "b.category",
	"b.availability", "b.current_borrower", "b.published_year", "b.pages",
	"b.added_date", "b.created_at", "b.updated_at",
}

func bookViewSelect() sq.SelectBuilder {
	return qb.Select(bookColumns...).
		Column("u.name as borrower_name").
		From(booksTableName + " b").
		LeftJoin(usersTableName + " u on u.id = b.current_borrower")
}

func bookWhere(filter model.BookFilter) sq.And {
	where := sq.And{}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		where = append(where, sq.Or{
			sq.ILike{"b.title": p},
			sq.ILike{"b.author": p},
			sq.ILike{"b.description": p},
		})
	}
	if filter.Category != "" {
		where = append(where, sq.Eq{"b.category": filter.Category})
	}
	if filter.Availability != nil {
		where = append(where, sq.Eq{"b.availability": *filter.Availability})
	}
	return where
}

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	query := `insert into books (id, title, author, isbn, description, category, availability,
		current_borrower, published_year, pages, added_date, created_at, updated_at)
	values (@id, @title, @author, @isbn, @description, @category, true,
		null, @published_year, @pages, @added_date, @created_at, @updated_at)`
	args := pgx.NamedArgs{
		"id":             book.ID,
		"title":          book.Title,
		"author":         book.Author,
		"isbn":           book.ISBN,
		"description":    book.Description,
		"category":       book.Category,
		"published_year": book.PublishedYear,
		"pages":          book.Pages,
		"added_date":     book.AddedDate,
		"created_at":     book.CreatedAt,
		"updated_at":     book.UpdatedAt,
	}
	if _, err := r.q(ctx).Exec(ctx, query, args); err != nil {
		return model.Book{}, mapError(err, errs.ErrBookNotFound, "create book")
	}
	book.Availability = true
	book.CurrentBorrower = nil
	return book, nil
}

// UpdateBook rewrites catalog fields only; borrower state is owned by the loan flow.
func (r *repository) UpdateBook(ctx context.Context, book model.Book) (model.Book, error) {
	query, args, err := qb.Update(booksTableName + " b").
		SetMap(map[string]any{
			"title":          book.Title,
			"author":         book.Author,
			"isbn":           book.ISBN,
			"description":    book.Description,
			"category":       book.Category,
			"published_year": book.PublishedYear,
			"pages":          book.Pages,
			"updated_at":     book.UpdatedAt,
		}).
		Where(sq.Eq{"b.id": book.ID}).
		Suffix("returning " + joinColumns(bookColumns)).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return model.Book{}, mapError(err, errs.ErrBookNotFound, "update book")
	}
	updated, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[model.Book])
	if err != nil {
		return model.Book{}, mapError(err, errs.ErrBookNotFound, "update book")
	}
	return updated, nil
}

func (r *repository) DeleteBook(ctx context.Context, id uuid.UUID) error {
	query, args, err := qb.Delete(booksTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, errs.ErrBookNotFound, "delete book")
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrBookNotFound
	}
	return nil
}

func (r *repository) GetBook(ctx context.Context, id uuid.UUID) (model.BookView, error) {
	query, args, err := bookViewSelect().Where(sq.Eq{"b.id": id}).ToSql()
	if err != nil {
		return model.BookView{}, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return model.BookView{}, mapError(err, errs.ErrBookNotFound, "get book")
	}
	book, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[model.BookView])
	if err != nil {
		return model.BookView{}, mapError(err, errs.ErrBookNotFound, "get book")
	}
	return book, nil
}

func (r *repository) GetBookForUpdate(ctx context.Context, id uuid.UUID) (model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName + " b").
		Where(sq.Eq{"b.id": id}).
		Suffix("for update").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return model.Book{}, mapError(err, errs.ErrBookNotFound, "lock book")
	}
	book, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[model.Book])
	if err != nil {
		return model.Book{}, mapError(err, errs.ErrBookNotFound, "lock book")
	}
	return book, nil
}

func (r *repository) SetBorrower(ctx context.Context, bookID uuid.UUID, borrower *uuid.UUID, at time.Time) error {
	query, args, err := qb.Update(booksTableName).
		Set("current_borrower", borrower).
		Set("availability", borrower == nil).
		Set("updated_at", at).
		Where(sq.Eq{"id": bookID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, errs.ErrBookNotFound, "set borrower")
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrBookNotFound
	}
	return nil
}

func (r *repository) ListBooks(ctx context.Context, filter model.BookFilter, paging model.Paging) ([]model.BookView, int, error) {
	where := bookWhere(filter)

	total, err := r.count(ctx, qb.Select("count(*)").From(booksTableName+" b").Where(where))
	if err != nil {
		return nil, 0, errors.Wrap(err, "count books")
	}

	query, args, err := withPaging(bookViewSelect().Where(where).OrderBy("b.added_date desc", "b.id"), paging).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list books")
	}
	books, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[model.BookView])
	if err != nil {
		return nil, 0, errors.Wrap(err, "list books")
	}
	return books, total, nil
}

func (r *repository) ISBNTaken(ctx context.Context, isbn string, exclude *uuid.UUID) (bool, error) {
	b := qb.Select("count(*)").From(booksTableName).Where(sq.Eq{"isbn": isbn})
	if exclude != nil {
		b = b.Where(sq.NotEq{"id": *exclude})
	}
	n, err := r.count(ctx, b)
	if err != nil {
		return false, errors.Wrap(err, "isbn lookup")
	}
	return n > 0, nil
}

func (r *repository) Categories(ctx context.Context) ([]model.Category, error) {
	query, args, err := qb.Select("distinct category").From(booksTableName).OrderBy("category").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "categories")
	}
	return pgx.CollectRows(rows, pgx.RowTo[model.Category])
}

func (r *repository) CountBooks(ctx context.Context) (model.BookCounts, error) {
	query := `select count(*) as total,
		count(*) filter (where availability) as available,
		count(*) filter (where not availability) as borrowed
	from books`
	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		return model.BookCounts{}, errors.Wrap(err, "count books")
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[model.BookCounts])
}
