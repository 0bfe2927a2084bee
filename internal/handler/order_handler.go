package handler

import (
	"net/http"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderItemRequest struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

type OrderCreateRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	CustomerEmail string             `json:"customer_email"`
	Items         []OrderItemRequest `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DeliveryCost  decimal.Decimal    `json:"delivery_cost"`
	Total         decimal.Decimal    `json:"total"`
	DeliveryZone  string             `json:"delivery_zone"`
	Address       string             `json:"address"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes"`
	ProofURL      string             `json:"proof_url"`
}

type OrderCreateResponse struct {
	Success bool                      `json:"success"`
	Order   usecase.CreateOrderOutput `json:"order"`
}

type AttachProofRequest struct {
	OrderID  int64  `json:"order_id"`
	ProofURL string `json:"proof_url"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/orders", h.create)
	e.PATCH("/api/orders", h.attachProof)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Items:         items,
		Subtotal:      req.Subtotal,
		DeliveryCost:  req.DeliveryCost,
		Total:         req.Total,
		DeliveryZone:  req.DeliveryZone,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		ProofURL:      req.ProofURL,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, OrderCreateResponse{Success: true, Order: out})
}

// comprobanteの後付け。社内メールの再送までやる
func (h *OrderHandler) attachProof(c echo.Context) error {
	var req AttachProofRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AttachProof(c.Request().Context(), req.OrderID, req.ProofURL)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
