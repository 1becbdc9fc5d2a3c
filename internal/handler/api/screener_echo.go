package api

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"StockScreener/internal/domain/models"
	"StockScreener/internal/usecase"
	xhttp "StockScreener/pkg/http"
	xlogger "StockScreener/pkg/logger"
)

// SnapshotInvalidator drops cached snapshot state after the enrichment
// pipeline loads a new trading day.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context) error
}

// ScreenerEchoHandler implements the Echo-based HTTP surface: screening the
// latest snapshot universe and managing a team's saved filter presets.
type ScreenerEchoHandler struct {
	logger    *xlogger.Logger
	screens   *usecase.ScreenService
	presets   *usecase.PresetService
	snapshots SnapshotInvalidator
}

func NewScreenerEchoHandler(
	logger *xlogger.Logger,
	screens *usecase.ScreenService,
	presets *usecase.PresetService,
	snapshots SnapshotInvalidator,
) *ScreenerEchoHandler {
	return &ScreenerEchoHandler{
		logger:    logger,
		screens:   screens,
		presets:   presets,
		snapshots: snapshots,
	}
}

func (h *ScreenerEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api", TeamIdentity())
	g.GET("/stocks", h.Screen)
	g.GET("/filters", h.ListFilters)
	g.POST("/filters", h.SaveFilter)
	g.DELETE("/filters/:id", h.DeleteFilter)
	g.PUT("/filters/:id/default", h.SetDefaultFilter)
	g.POST("/revalidate", h.Revalidate)
}

// Screen applies the selected preset to the latest snapshot universe. With no
// filter_id it falls back to the team's default preset, then the earliest
// saved one, then a match-everything filter.
func (h *ScreenerEchoHandler) Screen(c echo.Context) error {
	req := &models.ScreenRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.screens.Screen(c.Request().Context(), requestTeamID(c), req.FilterID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return xhttp.NotFoundResponse(c, "filter not found")
		}
		h.logger.Error("screen usecase error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ScreenerEchoHandler) ListFilters(c echo.Context) error {
	defs, err := h.presets.List(c.Request().Context(), requestTeamID(c))
	if err != nil {
		h.logger.Error("list filters usecase error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.ListResponse(c, defs, int64(len(defs)))
}

func (h *ScreenerEchoHandler) SaveFilter(c echo.Context) error {
	req := &models.SaveFilterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	id, err := h.presets.Create(c.Request().Context(), req.Draft(), requestUserID(c), requestTeamID(c))
	if err != nil {
		return h.saveFilterError(c, err)
	}
	return xhttp.CreatedResponse(c, models.SavedFilterResponse{FilterID: id})
}

func (h *ScreenerEchoHandler) saveFilterError(c echo.Context, err error) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return xhttp.BadRequestResponse(c, verr.Fields)
	}
	var qerr *models.QuotaExceededError
	if errors.As(err, &qerr) {
		appErr := xhttp.ConflictError("ERR_QUOTA_EXCEEDED", qerr.Error()).
			WithParam("limit", qerr.Limit).
			WithParam("tier", string(qerr.Tier))
		return xhttp.AppErrorResponse(c, appErr)
	}
	h.logger.Error("save filter usecase error", xlogger.Error(err))
	return xhttp.InternalServerErrorResponse(c)
}

func (h *ScreenerEchoHandler) DeleteFilter(c echo.Context) error {
	err := h.presets.Delete(c.Request().Context(), c.Param("id"), requestUserID(c), requestTeamID(c))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return xhttp.NotFoundResponse(c, "filter not found")
		}
		h.logger.Error("delete filter usecase error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.NoContentResponse(c)
}

func (h *ScreenerEchoHandler) SetDefaultFilter(c echo.Context) error {
	err := h.presets.SetDefault(c.Request().Context(), c.Param("id"), requestTeamID(c))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return xhttp.NotFoundResponse(c, "filter not found")
		}
		h.logger.Error("set default filter usecase error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.NoContentResponse(c)
}

// Revalidate drops the cached snapshot set. The enrichment pipeline calls
// this after loading a new trading day so the next screen sees fresh data.
func (h *ScreenerEchoHandler) Revalidate(c echo.Context) error {
	if err := h.snapshots.Invalidate(c.Request().Context()); err != nil {
		h.logger.Error("snapshot revalidate error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.NoContentResponse(c)
}
