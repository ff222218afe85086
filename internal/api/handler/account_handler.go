package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/accounts-api/internal/api/metrics"
	"github.com/teamhub/accounts-api/internal/api/middleware"
	"github.com/teamhub/accounts-api/internal/core/domain"
	"github.com/teamhub/accounts-api/internal/core/ports"
)

type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=admin member"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type detailsRequest struct {
	Age             int    `json:"age" validate:"gte=0,lte=150"`
	Contact         string `json:"contact" validate:"required,max=10"`
	Address         string `json:"address" validate:"omitempty,max=100"`
	Company         string `json:"company" validate:"omitempty,max=50"`
	YearsExperience int    `json:"years_experience" validate:"gte=0"`
}

type updateAccountRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,max=72"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin member"`
	Active   *bool   `json:"active"`
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /auth/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusBadRequest, err.Error(), nil)
	}

	account, err := h.accounts.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return respond(c, http.StatusCreated, "account created successfully", account)
}

// Login authenticates an account and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      429   {object}  Envelope
// @Router       /auth/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusBadRequest, err.Error(), nil)
	}

	token, err := h.accounts.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return respond(c, http.StatusOK, "login successful", tokenResponse{Token: token})
}

// Logout deactivates the session behind the presented token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Param        username       path    string  true  "Account username"
// @Param        Authorization  header  string  true  "Bearer token"
// @Success      200  {object}  Envelope
// @Failure      401  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Router       /auth/logout/{username} [post]
func (h *AccountHandler) Logout(c echo.Context) error {
	username := c.Param("username")
	token := middleware.ExtractBearer(c.Request().Header.Get("Authorization"))

	err := h.accounts.Logout(c.Request().Context(), username, token)
	if err != nil {
		// Repeat logout is not a failure for the caller.
		if errors.Is(err, domain.ErrAlreadyLoggedOut) {
			return respond(c, http.StatusOK, "already logged out", nil)
		}
		return err
	}

	metrics.SessionsRevokedTotal.WithLabelValues("logout").Inc()
	return respond(c, http.StatusOK, "logged out successfully", nil)
}

// List returns all non-deleted accounts.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /users [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.accounts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "accounts fetched successfully", accounts)
}

// Get returns a single account by username.
//
// @Summary      Get account
// @Tags         accounts
// @Produce      json
// @Param        username  path  string  true  "Account username"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /users/{username} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	account, err := h.accounts.Get(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "account retrieved successfully", account)
}

// Update applies a partial profile update.
//
// @Summary      Update account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        username  path  string                true  "Account username"
// @Param        body      body  updateAccountRequest  true  "Fields to change"
// @Success      200  {object}  Envelope
// @Failure      400  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /users/{username} [patch]
func (h *AccountHandler) Update(c echo.Context) error {
	if err := requireSelfOrAdmin(c, c.Param("username")); err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusBadRequest, err.Error(), nil)
	}

	account, err := h.accounts.Update(c.Request().Context(), c.Param("username"), domain.AccountUpdate{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Active:   req.Active,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "account updated successfully", account)
}

// GetDetails returns the profile sheet attached to an account.
//
// @Summary      Get account details
// @Tags         accounts
// @Produce      json
// @Param        username  path  string  true  "Account username"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /users/{username}/details [get]
func (h *AccountHandler) GetDetails(c echo.Context) error {
	details, err := h.accounts.GetDetails(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "account details retrieved successfully", details)
}

// SaveDetails creates or replaces the profile sheet for an account.
//
// @Summary      Save account details
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        username  path  string          true  "Account username"
// @Param        body      body  detailsRequest  true  "Profile details"
// @Success      200  {object}  Envelope
// @Failure      400  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Failure      409  {object}  Envelope
// @Router       /users/{username}/details [put]
func (h *AccountHandler) SaveDetails(c echo.Context) error {
	if err := requireSelfOrAdmin(c, c.Param("username")); err != nil {
		return err
	}

	var req detailsRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusBadRequest, err.Error(), nil)
	}

	details, err := h.accounts.SaveDetails(c.Request().Context(), c.Param("username"), domain.AccountDetails{
		Age:             req.Age,
		Contact:         req.Contact,
		Address:         req.Address,
		Company:         req.Company,
		YearsExperience: req.YearsExperience,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "account details saved successfully", details)
}

// Delete soft-deletes an account; the row persists for session and team
// referential integrity.
//
// @Summary      Delete account
// @Tags         accounts
// @Produce      json
// @Param        username  path  string  true  "Account username"
// @Success      200  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /users/{username} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	if err := requireSelfOrAdmin(c, c.Param("username")); err != nil {
		return err
	}
	if err := h.accounts.SoftDelete(c.Request().Context(), c.Param("username")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "account deleted successfully", nil)
}
