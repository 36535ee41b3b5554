package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/smart-library/library/internal/model"
	"github.com/Astemirdum/smart-library/pkg/auth"
)

func (h *Handler) Register(c echo.Context) error {
	var req model.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.Register(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.Authenticate(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	token, expiresAt, err := h.tokens.Issue(auth.Profile{
		UserID: user.ID.String(),
		Role:   string(user.Role),
	}, user.Email)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	})
}

func (h *Handler) GetProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.librarySvc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req model.ProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}
