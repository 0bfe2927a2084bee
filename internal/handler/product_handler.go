package handler

import (
	"net/http"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ストアフロント向けの公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/products", h.list)
	e.GET("/api/delivery-zones", h.deliveryZones)
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ゾーンは固定リストなのでDBは見ない
func (h *ProductHandler) deliveryZones(c echo.Context) error {
	return c.JSON(http.StatusOK, model.DeliveryZones())
}
