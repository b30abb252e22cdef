package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/tableside/pkg/errhttp"
	"github.com/ghuser/tableside/pkg/httpx"
	pkgvalidator "github.com/ghuser/tableside/pkg/validator"
	appsvcs "github.com/ghuser/tableside/services/order/application/services"
	"github.com/ghuser/tableside/services/order/domain/models"
)

// OpenOrderRequest is the request body for POST /orders.
type OpenOrderRequest struct {
	TableID uuid.UUID `json:"table_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
} // @name OpenOrderRequest

// AddLineRequest is the request body for POST /orders/{id}/lines.
type AddLineRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0" example:"2"`
} // @name AddLineRequest

// PayOrderRequest is the request body for POST /orders/{id}/pay.
type PayOrderRequest struct {
	Method string `json:"method" validate:"required,oneof=cash card" example:"card"`
} // @name PayOrderRequest

// OrderLineResponse is one line of an order with its price snapshot.
type OrderLineResponse struct {
	ID         uuid.UUID       `json:"id"`
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	Subtotal   decimal.Decimal `json:"subtotal"`
} // @name OrderLineResponse

// OrderResponse describes an order and its bill.
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	TableID       uuid.UUID           `json:"table_id"`
	Status        string              `json:"status"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod *string             `json:"payment_method,omitempty"`
	OpenedAt      time.Time           `json:"opened_at"`
	ServedAt      *time.Time          `json:"served_at,omitempty"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	Lines         []OrderLineResponse `json:"lines"`
} // @name OrderResponse

// OrderHandlers serves the order lifecycle endpoints.
type OrderHandlers struct {
	svc *appsvcs.Services
}

// NewOrderHandlers returns handlers backed by the given services.
func NewOrderHandlers(svc *appsvcs.Services) *OrderHandlers {
	return &OrderHandlers{svc: svc}
}

// OpenOrder seats a party and opens an order on a free table.
//
//	@Summary	Open order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		request	body		OpenOrderRequest	true	"Table to seat"
//	@Success	201		{object}	OrderResponse
//	@Failure	404		{object}	map[string]string
//	@Failure	409		{object}	map[string]string
//	@Router		/orders [post]
func (h *OrderHandlers) OpenOrder(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[OpenOrderRequest](w, r)
	if !ok {
		return
	}
	order, err := h.svc.Engine.Open(r.Context(), req.TableID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toOrderResponse(order))
}

// GetOrder returns one order with its lines.
//
//	@Summary	Get order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	OrderResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/orders/{id} [get]
func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	order, err := h.svc.Engine.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}

// ActiveOrder returns the unpaid order currently holding a table.
//
//	@Summary	Active order for table
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Table ID"
//	@Success	200	{object}	OrderResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/tables/{id}/order [get]
func (h *OrderHandlers) ActiveOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid table id")
		return
	}
	order, err := h.svc.Engine.ActiveOrderForTable(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}

// AddLine puts a menu item on an open order.
//
//	@Summary	Add order line
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Order ID"
//	@Param		request	body		AddLineRequest	true	"Line to add"
//	@Success	200		{object}	OrderResponse
//	@Failure	404		{object}	map[string]string
//	@Failure	409		{object}	map[string]string
//	@Failure	422		{object}	map[string]string
//	@Router		/orders/{id}/lines [post]
func (h *OrderHandlers) AddLine(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[AddLineRequest](w, r)
	if !ok {
		return
	}
	order, err := h.svc.Engine.AddLine(r.Context(), id, req.MenuItemID, req.Quantity)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}

// RemoveLine drops a line from an open order.
//
//	@Summary	Remove order line
//	@Tags		orders
//	@Produce	json
//	@Param		id		path		string	true	"Order ID"
//	@Param		lineID	path		string	true	"Line ID"
//	@Success	200		{object}	OrderResponse
//	@Failure	404		{object}	map[string]string
//	@Failure	409		{object}	map[string]string
//	@Router		/orders/{id}/lines/{lineID} [delete]
func (h *OrderHandlers) RemoveLine(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	lineID, err := uuid.Parse(chi.URLParam(r, "lineID"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid line id")
		return
	}
	order, err := h.svc.Engine.RemoveLine(r.Context(), id, lineID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}

// ServeOrder marks the order's food as brought out.
//
//	@Summary	Serve order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	OrderResponse
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Router		/orders/{id}/serve [post]
func (h *OrderHandlers) ServeOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	order, err := h.svc.Engine.MarkServed(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}

// PayOrder settles the order and releases its table.
//
//	@Summary	Pay order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Order ID"
//	@Param		request	body		PayOrderRequest	true	"Payment method"
//	@Success	200		{object}	OrderResponse
//	@Failure	404		{object}	map[string]string
//	@Failure	409		{object}	map[string]string
//	@Failure	422		{object}	map[string]string
//	@Router		/orders/{id}/pay [post]
func (h *OrderHandlers) PayOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[PayOrderRequest](w, r)
	if !ok {
		return
	}
	order, err := h.svc.Engine.CompletePayment(r.Context(), id, req.Method)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandlers) orderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid order id")
		return uuid.Nil, false
	}
	return id, true
}

func toOrderResponse(o *models.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			ID:         l.ID,
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			UnitPrice:  l.UnitPrice,
			Quantity:   l.Quantity,
			Subtotal:   l.Subtotal(),
		}
	}
	resp := OrderResponse{
		ID:       o.ID,
		TableID:  o.TableID,
		Status:   string(o.Status),
		Total:    o.Total,
		OpenedAt: o.OpenedAt,
		ServedAt: o.ServedAt,
		PaidAt:   o.PaidAt,
		Lines:    lines,
	}
	if o.PaymentMethod != nil {
		m := string(*o.PaymentMethod)
		resp.PaymentMethod = &m
	}
	return resp
}
