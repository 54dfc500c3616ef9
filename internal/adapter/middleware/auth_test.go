package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agrocredito/pkg/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func registered(userID string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{Subject: userID}
}

func authEcho(m *auth.JWTManager, roles ...auth.Role) *echo.Echo {
	e := echo.New()
	g := e.Group("", JWTAuth(m))
	if len(roles) > 0 {
		g.Use(RequireRole(roles...))
	}
	g.GET("/me", func(c echo.Context) error {
		cl := ClaimsFrom(c)
		return c.JSON(http.StatusOK, map[string]string{"user": cl.UserID(), "role": string(cl.Role)})
	})
	return e
}

func get(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	m := auth.NewJWTManager("0123456789abcdef0123", time.Hour)
	e := authEcho(m)

	if rec := get(e, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token => want 401, got %d", rec.Code)
	}
	if rec := get(e, "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token => want 401, got %d", rec.Code)
	}

	tok, err := m.GenerateToken("farmer-1", auth.RoleApplicant, "")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	rec := get(e, tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token => want 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"user":"farmer-1"`) {
		t.Fatalf("claims not exposed: %s", body)
	}
}

func TestRequireRole(t *testing.T) {
	m := auth.NewJWTManager("0123456789abcdef0123", time.Hour)
	e := authEcho(m, auth.RoleInstitution, auth.RoleAdmin)

	applicant, _ := m.GenerateToken("farmer-1", auth.RoleApplicant, "")
	if rec := get(e, applicant); rec.Code != http.StatusForbidden {
		t.Fatalf("applicant => want 403, got %d", rec.Code)
	}
	staff, _ := m.GenerateToken("officer-1", auth.RoleInstitution, "bank-1")
	if rec := get(e, staff); rec.Code != http.StatusOK {
		t.Fatalf("staff => want 200, got %d", rec.Code)
	}
}

func TestRequireRole_WithoutClaims(t *testing.T) {
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireRole(auth.RoleAdmin))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}
