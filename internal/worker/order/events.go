package order

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/meridian/internal/config"
	"github.com/Additional-Code/meridian/internal/messaging"
	ordersvc "github.com/Additional-Code/meridian/internal/service/order"
	"github.com/Additional-Code/meridian/internal/worker"
)

var workerTracer = otel.Tracer("github.com/Additional-Code/meridian/worker/order")

// Module registers order-related worker handlers.
var Module = fx.Module("worker_order",
	fx.Provide(
		fx.Annotate(
			NewOrderEventsHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewOrderEventsHandler consumes the orders topic and dispatches on the
// event name carried in the payload envelope.
func NewOrderEventsHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.orders.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var envelope ordersvc.EventEnvelope
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			logger.Error("failed to decode order event", zap.Error(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}
		span.SetAttributes(attribute.String("order.event", envelope.Event))

		switch envelope.Event {
		case ordersvc.EventOrderCreated:
			var event ordersvc.OrderCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "decode error")
				return err
			}
			logger.Info("order created event processed",
				zap.Int64("id", event.ID),
				zap.String("number", event.Number),
				zap.String("total", event.Total.String()),
			)
		case ordersvc.EventOrderStatusChanged:
			var event ordersvc.OrderStatusChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "decode error")
				return err
			}
			logger.Info("order status changed event processed",
				zap.Int64("id", event.ID),
				zap.String("number", event.Number),
				zap.String("from", event.PreviousStatus),
				zap.String("to", event.Status),
				zap.Bool("inventory_adjusted", event.InventoryAdjusted),
			)
		default:
			logger.Warn("unknown order event", zap.String("event", envelope.Event))
		}

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
