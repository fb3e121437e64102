package tracking_event

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"samudra/internal/entities"
	shipmentservice "samudra/internal/service/shipment"
	trackingservice "samudra/internal/service/tracking"
	"samudra/pkg/logger"
)

type Handler struct {
	trackingService          Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, trackingService Service, timeout time.Duration) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "forwarder.tracking"),
	)

	return &Handler{
		trackingService:          trackingService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("forwarder.tracking: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("forwarder.tracking: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение. true - прервать ConsumeClaim,
// сообщение не помечается и будет перечитано.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event trackingEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("forwarder.tracking handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("waybill", event.Waybill),
		logger.NewField("code", event.Code),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("forwarder.tracking processing")

	order, err := h.trackingService.ProcessTrackingEvent(ctx, entities.TrackingEvent{
		Waybill:    event.Waybill,
		Code:       event.Code,
		Location:   event.Location,
		Notes:      event.Notes,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		errLog := msgLog.With(logger.NewField("error", err))

		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			errLog.Warn("forwarder.tracking handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, trackingservice.ErrUndefinedCode):
			errLog.Warn("forwarder.tracking handler unknown tracking code")

		case errors.Is(err, trackingservice.ErrInvalidEvent):
			errLog.Warn("forwarder.tracking handler invalid event")

		case errors.Is(err, shipmentservice.ErrShipmentNotFound):
			errLog.Warn("forwarder.tracking handler shipment not found")

		case errors.Is(err, shipmentservice.ErrInvalidTransition):
			// повтор или событие не по порядку
			errLog.Warn("forwarder.tracking handler transition rejected")

		default:
			errLog.Error("forwarder.tracking handler failed to process event")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("status", order.Status.String()),
		logger.NewField("version", order.Version),
	).Info("forwarder.tracking: processed")

	sess.MarkMessage(message, "")
	return false
}
