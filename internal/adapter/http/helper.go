package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"agrocredito/internal/adapter/middleware"
	"agrocredito/internal/domain"
	"agrocredito/pkg/auth"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

func caller(c echo.Context) (*auth.Claims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return claims, nil
}

// mayRead lets the owner or any staff member through.
func mayRead(claims *auth.Claims, ownerID string) error {
	if claims.IsStaff() || claims.UserID() == ownerID {
		return nil
	}
	return fmt.Errorf("%w: not the owner of this resource", domain.ErrForbidden)
}

// mustOwn is stricter: staff cannot act on the applicant's behalf.
func mustOwn(claims *auth.Claims, ownerID string) error {
	if claims.UserID() == ownerID {
		return nil
	}
	return fmt.Errorf("%w: only the applicant may do this", domain.ErrForbidden)
}

// actingInstitution is the institution a staff caller acts for; empty for admins.
func actingInstitution(claims *auth.Claims) (string, error) {
	switch claims.Role {
	case auth.RoleAdmin:
		return "", nil
	case auth.RoleInstitution:
		if claims.InstitutionID != "" {
			return claims.InstitutionID, nil
		}
	}
	return "", fmt.Errorf("%w: token carries no institution", domain.ErrForbidden)
}

// queryInt reads an optional non-negative integer query parameter.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrValidation, name)
	}
	return n, nil
}

// queryTime accepts RFC3339 or a plain date (YYYY-MM-DD, UTC midnight). Empty means unbounded.
func queryTime(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s must be RFC3339 or YYYY-MM-DD", domain.ErrValidation, name)
}
