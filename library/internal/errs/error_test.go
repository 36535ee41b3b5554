package errs_test

import (
	"testing"

	"github.com/Astemirdum/smart-library/library/internal/errs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestTaxonomy(t *testing.T) {
	require.ErrorIs(t, errs.ErrBookNotFound, errs.ErrNotFound)
	require.ErrorIs(t, errs.ErrUserNotFound, errs.ErrNotFound)
	require.Equal(t, "book not found", errs.ErrBookNotFound.Error())
	require.ErrorIs(t, errs.ErrEmailTaken, errs.ErrAlreadyExists)

	require.True(t, errs.IsPrecondition(errors.Wrap(errs.ErrLoanLimit, "borrow")))
	require.True(t, errs.IsPrecondition(errs.ErrISBNTaken))
	require.False(t, errs.IsPrecondition(errs.ErrBookNotFound))
	require.False(t, errs.IsPrecondition(errors.New("connection refused")))
}
