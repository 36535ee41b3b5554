package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/smart-library/library/internal/errs"
	"github.com/Astemirdum/smart-library/library/internal/loan"
	"github.com/Astemirdum/smart-library/library/internal/model"
	"github.com/Astemirdum/smart-library/pkg/kafka"
)

const dateLayout = "Mon Jan 02 2006"

// BorrowBook lends bookID to userID for the policy loan period. Every
// precondition is checked under row locks inside one transaction.
func (s *Service) BorrowBook(ctx context.Context, userID, bookID uuid.UUID) (model.LoanReceipt, error) {
	now := s.clock()
	var receipt model.LoanReceipt

	err := s.repo.RunInTx(ctx, func(ctx context.Context) error {
		book, err := s.repo.GetBookForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		if !book.Availability {
			return errs.ErrBookUnavailable
		}

		user, err := s.repo.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if !user.IsActive {
			return errs.ErrUserInactive
		}

		open, err := s.repo.CountOpenLoans(ctx, userID)
		if err != nil {
			return err
		}
		if open >= s.policy.MaxActiveLoans {
			return errs.ErrLoanLimit
		}

		switch _, err := s.repo.FindOpenLoan(ctx, userID, bookID); {
		case err == nil:
			return errs.ErrDuplicateLoan
		case !errors.Is(err, errs.ErrNoActiveLoan):
			return err
		}

		due := s.policy.DueDate(now)
		if err := s.repo.SetBorrower(ctx, bookID, &userID, now); err != nil {
			return err
		}
		if err := s.repo.AddIssuedBook(ctx, userID, bookID, now); err != nil {
			return err
		}
		activity, err := s.repo.InsertActivity(ctx, model.Activity{
			ID:        uuid.New(),
			UserID:    userID,
			BookID:    bookID,
			Action:    model.ActionBorrow,
			IssueDate: now,
			DueDate:   &due,
			Status:    model.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}

		book.Availability = false
		book.CurrentBorrower = &userID
		book.UpdatedAt = now
		receipt = model.LoanReceipt{
			Book:    book,
			Loan:    activity,
			DueDate: &due,
			Message: fmt.Sprintf("Successfully borrowed %q. Due date: %s", book.Title, due.Format(dateLayout)),
		}
		return nil
	})
	if err != nil {
		return model.LoanReceipt{}, err
	}

	s.publish(ctx, kafka.LoanEvent{
		Timestamp:   now,
		EventType:   kafka.EventBorrow,
		ActivityUid: receipt.Loan.ID.String(),
		UserUid:     userID.String(),
		BookUid:     bookID.String(),
		DueDate:     receipt.DueDate,
	})
	return receipt, nil
}

// ReturnBook closes the open loan of (userID, bookID) with the canonical fine
// and appends a discrete return event to the ledger.
func (s *Service) ReturnBook(ctx context.Context, userID, bookID uuid.UUID) (model.LoanReceipt, error) {
	receipt, err := s.closeLoan(ctx, userID, bookID, nil, "")
	if err != nil {
		return model.LoanReceipt{}, err
	}

	if receipt.Fine > 0 {
		receipt.Message = fmt.Sprintf("Successfully returned %q. Fine: $%s (%d days overdue)",
			receipt.Book.Title, formatMoney(receipt.Fine), receipt.DaysOverdue)
	} else {
		receipt.Message = fmt.Sprintf("Successfully returned %q.", receipt.Book.Title)
	}

	s.publish(ctx, kafka.LoanEvent{
		Timestamp:    *receipt.ReturnEvent.ReturnDate,
		EventType:    kafka.EventReturn,
		ActivityUid:  receipt.Loan.ID.String(),
		UserUid:      userID.String(),
		BookUid:      bookID.String(),
		DueDate:      receipt.DueDate,
		Fine:         receipt.Fine,
		ComputedFine: receipt.Fine,
	})
	return receipt, nil
}

// ForceReturn is the administrator return. The supplied fine (0 when absent)
// replaces the canonical one and both ledger records are flagged as overridden.
func (s *Service) ForceReturn(ctx context.Context, req model.ForceReturnRequest) (model.LoanReceipt, error) {
	fine := 0.0
	if req.Fine != nil {
		fine = *req.Fine
	}
	if fine < 0 {
		return model.LoanReceipt{}, errors.Wrap(errs.ErrValidation, "fine must not be negative")
	}

	receipt, err := s.closeLoan(ctx, req.UserID, req.BookID, &fine, req.Notes)
	if err != nil {
		return model.LoanReceipt{}, err
	}
	receipt.Message = fmt.Sprintf("Book %q has been returned by admin", receipt.Book.Title)

	computed := 0.0
	if receipt.DueDate != nil {
		computed = s.policy.Fine(*receipt.DueDate, *receipt.Loan.ReturnDate)
	}
	s.log.Info("fine override",
		zap.String("activity", receipt.Loan.ID.String()),
		zap.Float64("fine", fine),
		zap.Float64("computed", computed))

	s.publish(ctx, kafka.LoanEvent{
		Timestamp:      *receipt.Loan.ReturnDate,
		EventType:      kafka.EventForceReturn,
		ActivityUid:    receipt.Loan.ID.String(),
		UserUid:        req.UserID.String(),
		BookUid:        req.BookID.String(),
		DueDate:        receipt.DueDate,
		Fine:           fine,
		ComputedFine:   computed,
		FineOverridden: true,
		Notes:          req.Notes,
	})
	return receipt, nil
}

// closeLoan runs the two-step ledger return: close the open loan, then append
// the return event. override, when set, replaces the canonical fine.
func (s *Service) closeLoan(
	ctx context.Context, userID, bookID uuid.UUID, override *float64, notes string,
) (model.LoanReceipt, error) {
	now := s.clock()
	var receipt model.LoanReceipt

	err := s.repo.RunInTx(ctx, func(ctx context.Context) error {
		book, err := s.repo.GetBookForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		open, err := s.repo.FindOpenLoan(ctx, userID, bookID)
		if err != nil {
			return err
		}
		if !loan.CanTransition(open.Status, model.StatusReturned) {
			return errs.ErrNoActiveLoan
		}

		var days int
		fine := 0.0
		if open.DueDate != nil {
			days = loan.DaysOverdue(*open.DueDate, now)
			fine = s.policy.Fine(*open.DueDate, now)
		}
		info := model.ReturnInfo{ReturnDate: now, Fine: fine}
		event := model.Activity{
			ID:         uuid.New(),
			UserID:     userID,
			BookID:     bookID,
			Action:     model.ActionReturn,
			IssueDate:  now,
			ReturnDate: &now,
			Status:     model.StatusReturned,
			Fine:       fine,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if override != nil {
			trimmed := strings.TrimSpace(notes)
			info.Fine, info.FineOverridden, info.Notes = *override, true, &trimmed
			event.Fine, event.FineOverridden = *override, true
			event.Notes = strings.TrimSpace("Admin forced return: " + trimmed)
		}

		closed, err := s.repo.CloseLoan(ctx, open.ID, info)
		if err != nil {
			return err
		}
		event, err = s.repo.InsertActivity(ctx, event)
		if err != nil {
			return err
		}
		if err := s.repo.SetBorrower(ctx, bookID, nil, now); err != nil {
			return err
		}
		if err := s.repo.RemoveIssuedBook(ctx, userID, bookID); err != nil {
			return err
		}

		book.Availability = true
		book.CurrentBorrower = nil
		book.UpdatedAt = now
		receipt = model.LoanReceipt{
			Book:        book,
			Loan:        closed,
			ReturnEvent: &event,
			DueDate:     closed.DueDate,
			Fine:        closed.Fine,
			DaysOverdue: days,
		}
		return nil
	})
	if err != nil {
		return model.LoanReceipt{}, err
	}
	return receipt, nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
