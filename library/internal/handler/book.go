package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/smart-library/library/internal/model"
)

func bookFilter(c echo.Context) (model.BookFilter, error) {
	filter := model.BookFilter{
		Search:   c.QueryParam("search"),
		Category: model.Category(c.QueryParam("category")),
	}
	if filter.Category == "all" {
		filter.Category = ""
	}
	switch c.QueryParam("availability") {
	case "", "all":
	case "available":
		v := true
		filter.Availability = &v
	case "borrowed", "unavailable":
		v := false
		filter.Availability = &v
	default:
		return model.BookFilter{}, echo.NewHTTPError(http.StatusBadRequest, "availability is invalid")
	}
	return filter, nil
}

func (h *Handler) exploreBooks(c echo.Context, admin bool) error {
	filter, err := bookFilter(c)
	if err != nil {
		return err
	}
	page, err := intQuery(c, "page")
	if err != nil {
		return err
	}
	books, err := h.librarySvc.ExploreBooks(c.Request().Context(), filter, page, admin)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) ExploreBooks(c echo.Context) error {
	return h.exploreBooks(c, false)
}

func (h *Handler) Categories(c echo.Context) error {
	cats, err := h.librarySvc.Categories(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *Handler) GetBook(c echo.Context) error {
	bookID, err := uuidParam(c, "bookId")
	if err != nil {
		return err
	}
	book, err := h.librarySvc.GetBook(c.Request().Context(), bookID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) BorrowBook(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	bookID, err := uuidParam(c, "bookId")
	if err != nil {
		return err
	}
	receipt, err := h.librarySvc.BorrowBook(c.Request().Context(), userID, bookID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

func (h *Handler) ReturnBook(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	bookID, err := uuidParam(c, "bookId")
	if err != nil {
		return err
	}
	receipt, err := h.librarySvc.ReturnBook(c.Request().Context(), userID, bookID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, receipt)
}
