package handler

import (
	"net/http"
	"strconv"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AdminProductHandler struct {
	uc    *usecase.AdminProductUsecase
	guard echo.MiddlewareFunc
}

func NewAdminProductHandler(uc *usecase.AdminProductUsecase, guard echo.MiddlewareFunc) *AdminProductHandler {
	return &AdminProductHandler{uc: uc, guard: guard}
}

type AdminUpdateProductRequest struct {
	Price    *decimal.Decimal `json:"price"`
	Stock    *int64           `json:"stock"`
	IsActive *bool            `json:"is_active"`
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/admin/products")
	g.Use(h.guard)

	g.GET("", h.list)
	g.PATCH("/:id", h.update)
}

func (h *AdminProductHandler) list(c echo.Context) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 50)

	out, err := h.uc.List(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminUpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Update(c.Request().Context(), id, usecase.AdminUpdateProductInput{
		Price:    req.Price,
		Stock:    req.Stock,
		IsActive: req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
