package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/trovelabs/storefront-api.git/internal/kafkax"
	"github.com/trovelabs/storefront-api.git/internal/orders"
)

type OrdersHandler struct {
	Store *orders.Store
	// Producers are optional; nil means events are not published.
	Created       *kafkax.Producer
	StatusChanged *kafkax.Producer
	Service       string
}

type createOrderResp struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	ID      string       `json:"id"`
	Order   orders.Order `json:"order"`
}

type orderResp struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Order   orders.Order `json:"order"`
}

type listOrdersResp struct {
	Success    bool              `json:"success"`
	Orders     []orders.Order    `json:"orders"`
	Pagination orders.Pagination `json:"pagination"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/api/orders", h.createOrder)
	r.Get("/api/orders", h.listOrders)
	r.Get("/api/orders/{id}", h.getOrder)
	r.Patch("/api/orders/{id}/status", h.updateStatus)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in orders.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	o, err := h.Store.Create(in)
	if err != nil {
		if errors.Is(err, orders.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, "Missing required order information")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	h.publish(h.Created, o.ID, orders.EventOrderCreated, orders.OrderCreatedPayload{
		OrderID:       o.ID,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		ItemCount:     len(o.Items),
	})

	writeJSON(w, http.StatusOK, createOrderResp{
		Success: true,
		Message: "Order created successfully",
		ID:      o.ID,
		Order:   o,
	})
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.Store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, orderResp{Success: true, Order: o})
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	id := chi.URLParam(r, "id")
	old, err := h.Store.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	o, err := h.Store.UpdateStatus(id, req.Status)
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	h.publish(h.StatusChanged, o.ID, orders.EventOrderStatusChanged, orders.OrderStatusChangedPayload{
		OrderID:   o.ID,
		OldStatus: old.Status,
		NewStatus: o.Status,
	})

	writeJSON(w, http.StatusOK, orderResp{Success: true, Message: "Order status updated", Order: o})
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	q := orders.ListQuery{
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 10),
		Status: r.URL.Query().Get("status"),
	}
	page, pag := h.Store.List(q)
	writeJSON(w, http.StatusOK, listOrdersResp{Success: true, Orders: page, Pagination: pag})
}

func (h *OrdersHandler) publish(p *kafkax.Producer, orderID, eventType string, payload any) {
	if p == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
