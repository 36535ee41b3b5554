package repository

import (
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/Astemirdum/smart-library/library/internal/errs"
)

// mapError turns driver errors into errs sentinels; notFound replaces pgx.ErrNoRows.
func mapError(err error, notFound error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			switch {
			case strings.Contains(pgErr.ConstraintName, "email"):
				return errs.ErrEmailTaken
			case strings.Contains(pgErr.ConstraintName, "isbn"):
				return errs.ErrISBNTaken
			}
			return errors.Wrap(errs.ErrAlreadyExists, op)
		case pgerrcode.ForeignKeyViolation:
			return errors.Wrap(errs.ErrNotFound, op)
		case pgerrcode.CheckViolation:
			return errors.Wrapf(errs.ErrValidation, "%s: %s", op, pgErr.ConstraintName)
		}
	}
	return errors.Wrap(err, op)
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}
