package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/accounts-api/internal/core/ports"
)

type TeamHandler struct {
	teams ports.TeamService
}

func NewTeamHandler(teams ports.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

type createTeamRequest struct {
	Name string `json:"name" validate:"required,min=2,max=64"`
}

type addMemberRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=admin member"`
}

// Create registers a new team.
//
// @Summary      Register a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        body  body      createTeamRequest  true  "Team details"
// @Success      201   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /teams [post]
func (h *TeamHandler) Create(c echo.Context) error {
	var req createTeamRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusBadRequest, err.Error(), nil)
	}

	team, err := h.teams.RegisterTeam(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "team created successfully", team)
}

// AddMember links an account to a team.
//
// @Summary      Add a team member
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Team id"
// @Param        body  body      addMemberRequest  true  "Member details"
// @Success      201   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /teams/{id}/members [post]
func (h *TeamHandler) AddMember(c echo.Context) error {
	var req addMemberRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusBadRequest, err.Error(), nil)
	}

	membership, err := h.teams.AddMember(c.Request().Context(), c.Param("id"), req.Username, req.Role)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "member added successfully", membership)
}
