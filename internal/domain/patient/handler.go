package patient

import (
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
	api.GET("/patients_list", h.ListPatients, auth.RequireOperation("patients_list"))
}

// ListPatients returns every patient the authenticated firm has registered.
func (h *Handler) ListPatients(c echo.Context) error {
	firm := auth.FirmFromContext(c.Request().Context())

	patients, err := h.svc.List(c.Request().Context(), firm.ID)
	if err != nil {
		h.log.Error().Err(err).Int("firm_id", firm.ID).Msg("list patients failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"patients": patients})
}
