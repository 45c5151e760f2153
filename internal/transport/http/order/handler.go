package order

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/meridian/internal/dto"
	"github.com/Additional-Code/meridian/internal/presentation/http/response"
	service "github.com/Additional-Code/meridian/internal/service/order"
	"github.com/Additional-Code/meridian/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/meridian/transport/http/order")

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/orders")
	g.POST("", h.create)
	g.GET("/:id", h.getByID)
	g.GET("/number/:number", h.getByNumber)
	g.PUT("/:id/status", h.updateStatus)

	e.GET("/customers/:id/orders", h.listByCustomer)
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload struct {
		CustomerID int64               `json:"customer_id"`
		Items      []service.ItemInput `json:"items"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create", trace.WithAttributes(
		attribute.Int64("customer.id", payload.CustomerID),
		attribute.Int("order.items", len(payload.Items)),
	))
	defer span.End()

	order, err := h.svc.CreateOrder(ctx, payload.CustomerID, payload.Items)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.FromOrder(order)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.FromOrder(order)).Build()
}

func (h *Handler) getByNumber(c echo.Context) error {
	b := response.New(c)

	number := c.Param("number")

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByNumber", trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	order, err := h.svc.GetByNumber(ctx, number)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.FromOrder(order)).Build()
}

func (h *Handler) updateStatus(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	var payload struct {
		Status         string `json:"status"`
		TrackingNumber string `json:"tracking_number"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.updateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", payload.Status),
	))
	defer span.End()

	order, err := h.svc.UpdateStatus(ctx, id, payload.Status, payload.TrackingNumber)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.FromOrder(order)).Build()
}

func (h *Handler) listByCustomer(c echo.Context) error {
	b := response.New(c)

	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid customer id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.listByCustomer", trace.WithAttributes(attribute.Int64("customer.id", customerID)))
	defer span.End()

	orders, err := h.svc.ListByCustomer(ctx, customerID)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, dto.FromOrder(order))
	}
	return b.WithData(out).Build()
}
