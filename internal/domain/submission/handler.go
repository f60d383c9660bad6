package submission

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/niimt/riskapi/internal/domain/risktype"
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
	api.POST("/calculate_risk", h.CalculateRisk, auth.RequireOperation("calculate_risk"))
}

// CalculateRisk accepts a JSON array of submission items and returns one
// acknowledgement per item. The first failing item aborts the batch with its
// error status.
func (h *Handler) CalculateRisk(c echo.Context) error {
	firm := auth.FirmFromContext(c.Request().Context())

	var items []map[string]interface{}
	if err := c.Bind(&items); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	results, err := h.svc.Process(c.Request().Context(), firm, items)
	if err != nil {
		return h.httpError(firm.ID, err)
	}

	return c.JSON(http.StatusOK, results)
}

func (h *Handler) httpError(firmID int, err error) *echo.HTTPError {
	var verr *risktype.ValidationError
	switch {
	case errors.Is(err, risktype.ErrUnknownType):
		return echo.NewHTTPError(http.StatusBadRequest, "This type of risk does not exist")
	case errors.Is(err, ErrNotPermitted):
		return echo.NewHTTPError(http.StatusForbidden, "This type of risk is not permitted for your token")
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, verr.Message)
	case errors.Is(err, risktype.ErrComputation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Int("firm_id", firmID).Msg("submission failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
