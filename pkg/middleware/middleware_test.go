package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Astemirdum/smart-library/pkg/auth"
	md "github.com/Astemirdum/smart-library/pkg/middleware"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestJwtAuthentication(t *testing.T) {
	t.Parallel()
	iss := auth.NewIssuer(auth.Config{Secret: "secret", TTL: time.Hour})
	adminToken, _, err := iss.Issue(auth.Profile{UserID: "admin-1", Role: auth.RoleAdmin}, "")
	require.NoError(t, err)
	userToken, _, err := iss.Issue(auth.Profile{UserID: "user-1", Role: auth.RoleUser}, "")
	require.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		expectedCode int
	}{
		{name: "no header", header: "", expectedCode: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", expectedCode: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer abc", expectedCode: http.StatusUnauthorized},
		{name: "user on admin route", header: "Bearer " + userToken, expectedCode: http.StatusForbidden},
		{name: "admin", header: "Bearer " + adminToken, expectedCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			e.GET("/admin", func(c echo.Context) error {
				p, _ := auth.FromContext(c.Request().Context())
				return c.String(http.StatusOK, p.UserID)
			}, md.JwtAuthentication(iss), md.AdminOnly)

			r := httptest.NewRequest(http.MethodGet, "/admin", http.NoBody)
			if tt.header != "" {
				r.Header.Set(md.AuthorizationHeader, tt.header)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				require.Equal(t, "admin-1", w.Body.String())
			}
		})
	}
}
