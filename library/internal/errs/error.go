package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrBookNotFound = fmt.Errorf("book %w", ErrNotFound)
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

	ErrBookUnavailable = errors.New("book is currently unavailable")
	ErrLoanLimit       = errors.New("maximum number of borrowed books reached")
	ErrDuplicateLoan   = errors.New("you have already borrowed this book")
	ErrNoActiveLoan    = errors.New("no active borrowing record found for this book")
	ErrUserInactive    = errors.New("account is deactivated")

	ErrBookBorrowed = errors.New("cannot delete book that is currently borrowed")
	ErrUserHasLoans = errors.New("cannot delete user with active book borrows")

	ErrAlreadyExists      = errors.New("already exists")
	ErrEmailTaken         = fmt.Errorf("email %w", ErrAlreadyExists)
	ErrISBNTaken          = fmt.Errorf("book with this isbn %w", ErrAlreadyExists)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("validation failed")
)

// IsPrecondition reports whether err is a user-visible rule violation.
func IsPrecondition(err error) bool {
	for _, target := range []error{
		ErrBookUnavailable, ErrLoanLimit, ErrDuplicateLoan, ErrNoActiveLoan,
		ErrUserInactive, ErrBookBorrowed, ErrUserHasLoans, ErrAlreadyExists,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
