package consumer

import (
	"context"
	"encoding/json"

	"github.com/BadrBouzakri/conges/internal/events"
	"github.com/BadrBouzakri/conges/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle turns lifecycle events into email notifications.
// Decode failures are committed and skipped; notification failures leave the
// message uncommitted so it is retried.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var envelope struct {
			EventType string `json:"event_type"`
		}
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			log.Error("decode leave lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		switch envelope.EventType {
		case events.LeaveRequestSubmitted:
			var event events.LeaveRequestSubmittedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Error("decode leave_request.submitted event failed", zap.Error(err))
				_ = reader.CommitMessages(ctx, msg)
				continue
			}
			if err := notifier.NotifySubmitted(ctx, event); err != nil {
				log.Error("notify submitted failed",
					zap.String("request_id", event.RequestID),
					zap.Error(err),
				)
				continue
			}

		case events.LeaveRequestDecided:
			var event events.LeaveRequestDecidedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Error("decode leave_request.decided event failed", zap.Error(err))
				_ = reader.CommitMessages(ctx, msg)
				continue
			}
			if err := notifier.NotifyDecided(ctx, event); err != nil {
				log.Error("notify decided failed",
					zap.String("request_id", event.RequestID),
					zap.Error(err),
				)
				continue
			}

		default:
			log.Warn("unknown leave lifecycle event type, skipping",
				zap.String("event_type", envelope.EventType),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("leave lifecycle event processed",
			zap.String("event_type", envelope.EventType),
		)
	}
}
