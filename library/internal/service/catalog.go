package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Astemirdum/smart-library/library/internal/errs"
	"github.com/Astemirdum/smart-library/library/internal/model"
)

func (s *Service) bookFromRequest(req model.BookRequest) (model.Book, error) {
	b := model.Book{
		Title:         strings.TrimSpace(req.Title),
		Author:        strings.TrimSpace(req.Author),
		Description:   strings.TrimSpace(req.Description),
		Category:      req.Category,
		PublishedYear: req.PublishedYear,
		Pages:         req.Pages,
	}
	if b.Category == "" {
		b.Category = model.CategoryGeneral
	}
	switch {
	case b.Title == "" || b.Author == "":
		return model.Book{}, errors.Wrap(errs.ErrValidation, "title and author are required")
	case !b.Category.Valid():
		return model.Book{}, errors.Wrapf(errs.ErrValidation, "unknown category %q", b.Category)
	case b.PublishedYear != nil && (*b.PublishedYear < 1000 || *b.PublishedYear > s.clock().Year()+1):
		return model.Book{}, errors.Wrap(errs.ErrValidation, "published year out of range")
	case b.Pages != nil && *b.Pages < 1:
		return model.Book{}, errors.Wrap(errs.ErrValidation, "pages must be positive")
	}
	if isbn := strings.TrimSpace(req.ISBN); isbn != "" {
		b.ISBN = &isbn
	}
	return b, nil
}

func (s *Service) AddBook(ctx context.Context, req model.BookRequest) (model.Book, error) {
	book, err := s.bookFromRequest(req)
	if err != nil {
		return model.Book{}, err
	}
	if book.ISBN != nil {
		taken, err := s.repo.ISBNTaken(ctx, *book.ISBN, nil)
		if err != nil {
			return model.Book{}, err
		}
		if taken {
			return model.Book{}, errs.ErrISBNTaken
		}
	}
	now := s.clock()
	book.ID = uuid.New()
	book.AddedDate, book.CreatedAt, book.UpdatedAt = now, now, now
	return s.repo.CreateBook(ctx, book)
}

// UpdateBook edits catalog fields; availability stays with the loan lifecycle.
func (s *Service) UpdateBook(ctx context.Context, id uuid.UUID, req model.BookRequest) (model.Book, error) {
	book, err := s.bookFromRequest(req)
	if err != nil {
		return model.Book{}, err
	}
	if book.ISBN != nil {
		taken, err := s.repo.ISBNTaken(ctx, *book.ISBN, &id)
		if err != nil {
			return model.Book{}, err
		}
		if taken {
			return model.Book{}, errs.ErrISBNTaken
		}
	}
	book.ID = id
	book.UpdatedAt = s.clock()
	return s.repo.UpdateBook(ctx, book)
}

// DeleteBook refuses to remove a book that is lent out.
func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return s.repo.RunInTx(ctx, func(ctx context.Context) error {
		book, err := s.repo.GetBookForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !book.Availability {
			return errs.ErrBookBorrowed
		}
		return s.repo.DeleteBook(ctx, id)
	})
}

func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (model.BookView, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) ExploreBooks(ctx context.Context, filter model.BookFilter, page int, admin bool) (model.ListBooks, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return model.ListBooks{}, errors.Wrapf(errs.ErrValidation, "unknown category %q", filter.Category)
	}
	size := userBooksPageSize
	if admin {
		size = adminBooksPageSize
	}
	if page < 1 {
		page = 1
	}
	items, total, err := s.repo.ListBooks(ctx, filter, model.Paging{Page: page, PageSize: size})
	if err != nil {
		return model.ListBooks{}, err
	}
	if items == nil {
		items = []model.BookView{}
	}
	return model.ListBooks{
		Paging: model.NewPaging(page, size, total),
		Items:  items,
	}, nil
}

func (s *Service) Categories(ctx context.Context) ([]model.Category, error) {
	cats, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []model.Category{}
	}
	return cats, nil
}
