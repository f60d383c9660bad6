package research

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/niimt/riskapi/internal/platform/auth"
)

type Handler struct {
	svc *Service
	log zerolog.Logger
}

func NewHandler(svc *Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/research_list", h.ListResearch, auth.RequireOperation("research_list"))
	api.GET("/risk_list", h.ListRisks, auth.RequireOperation("risk_list"))
}

// ListResearch returns the firm's submitted measurements within the
// requested date window.
func (h *Handler) ListResearch(c echo.Context) error {
	firm := auth.FirmFromContext(c.Request().Context())

	from, to, err := h.svc.Window(c.QueryParam("dateFrom"), c.QueryParam("dateTo"))
	if err != nil {
		return badDateError(err)
	}

	rows, err := h.svc.ListResearch(c.Request().Context(), firm.ID, from, to)
	if err != nil {
		h.log.Error().Err(err).Int("firm_id", firm.ID).Msg("list research failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"research": rows})
}

// ListRisks returns the firm's computed risk values within the requested
// date window.
func (h *Handler) ListRisks(c echo.Context) error {
	firm := auth.FirmFromContext(c.Request().Context())

	from, to, err := h.svc.Window(c.QueryParam("dateFrom"), c.QueryParam("dateTo"))
	if err != nil {
		return badDateError(err)
	}

	rows, err := h.svc.ListRisks(c.Request().Context(), firm.ID, from, to)
	if err != nil {
		h.log.Error().Err(err).Int("firm_id", firm.ID).Msg("list risks failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"risk": rows})
}

func badDateError(err error) error {
	var bad *BadDateError
	if errors.As(err, &bad) {
		return echo.NewHTTPError(http.StatusBadRequest, bad.Error())
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
