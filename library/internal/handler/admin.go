package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/smart-library/library/internal/model"
)

const dateLayout = "2006-01-02"

func (h *Handler) Dashboard(c echo.Context) error {
	d, err := h.librarySvc.Dashboard(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) SystemStats(c echo.Context) error {
	st, err := h.librarySvc.SystemStats(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) AdminBooks(c echo.Context) error {
	return h.exploreBooks(c, true)
}

func (h *Handler) AddBook(c echo.Context) error {
	var req model.BookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	book, err := h.librarySvc.AddBook(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	bookID, err := uuidParam(c, "bookId")
	if err != nil {
		return err
	}
	var req model.BookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	book, err := h.librarySvc.UpdateBook(c.Request().Context(), bookID, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	bookID, err := uuidParam(c, "bookId")
	if err != nil {
		return err
	}
	if err := h.librarySvc.DeleteBook(c.Request().Context(), bookID); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AdminUsers(c echo.Context) error {
	filter := model.UserFilter{Search: c.QueryParam("search")}
	switch role := c.QueryParam("role"); role {
	case "", "all":
	case string(model.RoleUser), string(model.RoleAdmin):
		filter.Role = model.Role(role)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "role is invalid")
	}
	switch c.QueryParam("status") {
	case "", "all":
	case "active":
		v := true
		filter.Active = &v
	case "inactive":
		v := false
		filter.Active = &v
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
	}
	page, err := intQuery(c, "page")
	if err != nil {
		return err
	}
	users, err := h.librarySvc.AdminListUsers(c.Request().Context(), filter, page)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) AdminUserDetails(c echo.Context) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	details, err := h.librarySvc.AdminUserDetails(c.Request().Context(), userID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, details)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	if err := h.librarySvc.DeleteUser(c.Request().Context(), userID); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SetUserStatus(c echo.Context) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	type Req struct {
		IsActive *bool `json:"isActive" validate:"required"`
	}
	var req Req
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.SetUserStatus(c.Request().Context(), userID, *req.IsActive)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) ForceReturn(c echo.Context) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	bookID, err := uuidParam(c, "bookId")
	if err != nil {
		return err
	}
	var req model.ForceReturnRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	req.UserID, req.BookID = userID, bookID
	receipt, err := h.librarySvc.ForceReturn(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, receipt)
}

func dateQuery(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return &t, nil
}

func (h *Handler) AdminActivities(c echo.Context) error {
	from, err := dateQuery(c, "startDate")
	if err != nil {
		return err
	}
	to, err := dateQuery(c, "endDate")
	if err != nil {
		return err
	}
	if to != nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	page, err := intQuery(c, "page")
	if err != nil {
		return err
	}
	list, err := h.librarySvc.AdminListActivities(c.Request().Context(), model.AdminActivityQuery{
		Status: c.QueryParam("status"),
		User:   c.QueryParam("user"),
		Book:   c.QueryParam("book"),
		From:   from,
		To:     to,
		Page:   page,
	})
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) LoanEvents(c echo.Context) error {
	limit, err := intQuery(c, "limit")
	if err != nil {
		return err
	}
	events, err := h.librarySvc.ListLoanEvents(c.Request().Context(), limit)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, events)
}

func (h *Handler) LoanEventStats(c echo.Context) error {
	stats, err := h.librarySvc.LoanEventStats(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
