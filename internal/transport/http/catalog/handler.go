package catalog

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/meridian/internal/dto"
	"github.com/Additional-Code/meridian/internal/presentation/http/response"
	repo "github.com/Additional-Code/meridian/internal/repository/catalog"
	"github.com/Additional-Code/meridian/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/meridian/transport/http/catalog")

// Handler exposes the read-only product surface the storefront needs.
type Handler struct {
	repo *repo.Repository
}

// NewHandler constructs a catalog Handler.
func NewHandler(r *repo.Repository) *Handler {
	return &Handler{repo: r}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.GET("/products/:id", h.getByID)
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "catalog.getByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	product, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return b.WithError(errorbank.NotFound("product not found")).Build()
		}
		return b.WithError(errorbank.Internal("failed to load product", errorbank.WithCause(err))).Build()
	}

	return b.WithData(dto.FromProduct(product)).Build()
}
