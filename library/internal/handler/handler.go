package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/Astemirdum/smart-library/library/internal/errs"
	"github.com/Astemirdum/smart-library/pkg/auth"
	md "github.com/Astemirdum/smart-library/pkg/middleware"
	"github.com/Astemirdum/smart-library/pkg/validate"
	_ "github.com/Astemirdum/smart-library/swagger"
)

type TokenIssuer interface {
	Issue(profile auth.Profile, email string) (string, time.Time, error)
	Parse(token string) (*auth.Claims, error)
}

type Handler struct {
	librarySvc LibraryService
	tokens     TokenIssuer
	log        *zap.Logger
}

func New(librarySvc LibraryService, tokens TokenIssuer, log *zap.Logger) *Handler {
	return &Handler{
		librarySvc: librarySvc,
		tokens:     tokens,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	user := api.Group("", md.JwtAuthentication(h.tokens))
	user.GET("/profile", h.GetProfile)
	user.PUT("/profile", h.UpdateProfile)

	user.GET("/books", h.ExploreBooks)
	user.GET("/books/categories", h.Categories)
	user.GET("/books/:bookId", h.GetBook)
	user.POST("/books/:bookId/borrow", h.BorrowBook)
	user.POST("/books/:bookId/return", h.ReturnBook)

	user.GET("/activity", h.GetUserActivity)
	user.GET("/activity/overdue", h.OverdueActivities, md.AdminOnly)
	user.GET("/activity/due-soon", h.DueSoon, md.AdminOnly)

	admin := user.Group("/admin", md.AdminOnly)
	admin.GET("/dashboard", h.Dashboard)
	admin.GET("/stats", h.SystemStats)

	admin.GET("/books", h.AdminBooks)
	admin.POST("/books", h.AddBook)
	admin.PUT("/books/:bookId", h.UpdateBook)
	admin.DELETE("/books/:bookId", h.DeleteBook)

	admin.GET("/users", h.AdminUsers)
	admin.GET("/users/:userId", h.AdminUserDetails)
	admin.DELETE("/users/:userId", h.DeleteUser)
	admin.PUT("/users/:userId/status", h.SetUserStatus)
	admin.POST("/users/:userId/return/:bookId", h.ForceReturn)

	admin.GET("/activities", h.AdminActivities)
	admin.GET("/events", h.LoanEvents)
	admin.GET("/events/stats", h.LoanEventStats)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps service errors onto status codes. Unexpected errors are
// logged and reported without detail.
func (h *Handler) httpError(err error) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errs.IsPrecondition(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	h.log.Error("request failed", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return id, nil
}

func intQuery(c echo.Context, name string) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return n, nil
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	profile, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(profile.UserID)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
