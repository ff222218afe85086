package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

// ctxIdentity extracts the identity bound by the Auth middleware and
// fast-fails before any service call: a missing username means the request
// somehow bypassed the gate, which is always a bug worth rejecting.
func ctxIdentity(c echo.Context) (username, role string, err error) {
	username, _ = c.Get("username").(string)
	if username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication identity")
	}
	role, _ = c.Get("role").(string)
	return username, role, nil
}

// requireSelfOrAdmin allows a mutation only for the account owner or an
// admin.
func requireSelfOrAdmin(c echo.Context, target string) error {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if username != target && role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}
