// Package api exposes the order workflow over JSON HTTP endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/speedyy/marketplace/internal/domain"
	"github.com/speedyy/marketplace/internal/invoice"
	"github.com/speedyy/marketplace/internal/router"
)

// OrderHandler handles the order lifecycle endpoints
type OrderHandler struct {
	service  domain.OrderService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service domain.OrderService, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register mounts the order routes on the router
func (h *OrderHandler) Register(r *router.Router) {
	r.Post("/api/orders", h.PlaceOrder)
	r.Get("/api/orders/{id}", h.GetOrder)
	r.Post("/api/orders/{id}/payment", h.ConfirmPayment)
	r.Post("/api/orders/{id}/accept", h.AcceptOrder)
	r.Post("/api/orders/{id}/reject", h.RejectOrder)
	r.Post("/api/orders/{id}/cancel", h.CancelOrder)
	r.Post("/api/orders/{id}/refund", h.SettleRefund)
}

type placeOrderRequest struct {
	RestaurantID string             `json:"restaurant_id" validate:"required,uuid"`
	CustomerID   string             `json:"customer_id" validate:"required,uuid"`
	MenuItems    []invoice.MenuItem `json:"menu_items" validate:"required,min=1"`
	IsPOD        bool               `json:"is_pod"`
	CouponCode   string             `json:"coupon_code"`
}

type confirmPaymentRequest struct {
	TransactionID string `json:"transaction_id"`
}

type acceptOrderRequest struct {
	DeliveryCost float64 `json:"delivery_cost" validate:"gte=0"`
}

type settleRefundRequest struct {
	SettledBy string `json:"settled_by" validate:"required"`
	Remarks   string `json:"remarks"`
}

// orderResponse is the JSON shape every order endpoint returns.
type orderResponse struct {
	OrderID         uuid.UUID          `json:"order_id"`
	RestaurantID    uuid.UUID          `json:"restaurant_id"`
	CustomerID      uuid.UUID          `json:"customer_id"`
	Status          domain.OrderStatus `json:"status"`
	IsPOD           bool               `json:"is_pod"`
	CouponCode      string             `json:"coupon_code,omitempty"`
	InvoiceBreakout *invoice.Breakout  `json:"invoice_breakout"`
}

func toOrderResponse(order *domain.Order) orderResponse {
	return orderResponse{
		OrderID:         order.ID,
		RestaurantID:    order.RestaurantID,
		CustomerID:      order.CustomerID,
		Status:          order.Status,
		IsPOD:           order.IsPOD,
		CouponCode:      order.CouponCode,
		InvoiceBreakout: order.InvoiceBreakout,
	}
}

// PlaceOrder handles POST /api/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := h.decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	// UUID format is checked by validation above.
	restaurantID, _ := uuid.Parse(req.RestaurantID)
	customerID, _ := uuid.Parse(req.CustomerID)

	order, err := h.service.PlaceOrder(r.Context(), domain.PlaceOrderParams{
		RestaurantID: restaurantID,
		CustomerID:   customerID,
		Items:        req.MenuItems,
		IsPOD:        req.IsPOD,
		CouponCode:   req.CouponCode,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toOrderResponse(order))
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := h.orderID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

// ConfirmPayment handles POST /api/orders/{id}/payment
func (h *OrderHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := h.orderID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req confirmPaymentRequest
	if err := h.decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	order, err := h.service.ConfirmPayment(r.Context(), orderID, req.TransactionID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

// AcceptOrder handles POST /api/orders/{id}/accept
func (h *OrderHandler) AcceptOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := h.orderID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req acceptOrderRequest
	if err := h.decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	order, err := h.service.AcceptOrder(r.Context(), orderID, req.DeliveryCost)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

// RejectOrder handles POST /api/orders/{id}/reject
func (h *OrderHandler) RejectOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := h.orderID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	order, err := h.service.RejectOrder(r.Context(), orderID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

// CancelOrder handles POST /api/orders/{id}/cancel
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := h.orderID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	order, err := h.service.CancelOrder(r.Context(), orderID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

// SettleRefund handles POST /api/orders/{id}/refund
func (h *OrderHandler) SettleRefund(w http.ResponseWriter, r *http.Request) {
	orderID, err := h.orderID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req settleRefundRequest
	if err := h.decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	order, err := h.service.SettleRefund(r.Context(), orderID, domain.SettleRefundParams{
		SettledBy: req.SettledBy,
		Remarks:   req.Remarks,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

// decode parses the JSON body into dst and runs struct validation.
func (h *OrderHandler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &domain.Error{Code: domain.EINVALID, Op: "api.decode", Message: "Invalid JSON body"}
	}
	if err := h.validate.Struct(dst); err != nil {
		return &domain.Error{Code: domain.EINVALID, Op: "api.validate", Message: err.Error(), Err: err}
	}
	return nil
}

// orderID parses the {id} path segment.
func (h *OrderHandler) orderID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &domain.Error{Code: domain.EINVALID, Op: "api.order_id", Message: "Invalid order id"}
	}
	return id, nil
}
