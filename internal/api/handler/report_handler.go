package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/accounts-api/internal/core/ports"
)

// ReportHandler serves the denormalized account_activity view. Admin only;
// the router stacks the RBAC middleware in front of it.
type ReportHandler struct {
	reports ports.ReportRepository
}

func NewReportHandler(reports ports.ReportRepository) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// AccountActivity lists every account with its sessions and team memberships.
//
// @Summary      Account activity report
// @Tags         reports
// @Produce      json
// @Success      200  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Router       /reports/accounts [get]
func (h *ReportHandler) AccountActivity(c echo.Context) error {
	rows, err := h.reports.ListAccountActivity(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "report fetched successfully", rows)
}
