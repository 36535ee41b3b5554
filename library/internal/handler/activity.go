package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) GetUserActivity(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	page, err := intQuery(c, "page")
	if err != nil {
		return err
	}
	list, err := h.librarySvc.GetUserActivity(c.Request().Context(), userID, c.QueryParam("status"), page)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) OverdueActivities(c echo.Context) error {
	items, err := h.librarySvc.OverdueActivities(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DueSoon(c echo.Context) error {
	days, err := intQuery(c, "days")
	if err != nil {
		return err
	}
	items, err := h.librarySvc.DueSoon(c.Request().Context(), days)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}
