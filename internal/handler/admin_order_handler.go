package handler

import (
	"net/http"
	"strconv"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	repo "github.com/RepuestoHoy/RepuestoHoy-sub000/internal/repository"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc    *usecase.AdminOrderUsecase
	guard echo.MiddlewareFunc
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase, guard echo.MiddlewareFunc) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, guard: guard}
}

type AdminOrderDetailResponse struct {
	Order     model.Order      `json:"order"`
	EmailLogs []model.EmailLog `json:"email_logs"`
}

type AdminUpdateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/admin/orders")
	g.Use(h.guard)

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 50)

	out, err := h.uc.List(c.Request().Context(), repo.AdminOrderListFilter{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	o, logs, err := h.uc.Detail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, AdminOrderDetailResponse{Order: o, EmailLogs: logs})
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminUpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func queryInt(c echo.Context, key string, def int) int {
	v := c.QueryParam(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
