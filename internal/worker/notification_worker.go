package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/service"
)

// StartNotificationWorker wires the notification handlers onto dispatcher.
// When channel is non-nil every event is also forwarded to
// cfg.Redis.EventsChannel. Handlers run synchronously on the publishing
// request.
func StartNotificationWorker(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.Config, channel events.ChannelPublisher) *service.NotificationService {
	if dispatcher == nil {
		return nil
	}
	var forward events.EventHandler
	if channel != nil {
		forward = events.NewRedisPublisher(channel, cfg.Redis.EventsChannel).Handle
		logger.Info("event fan-out enabled", zap.String("channel", cfg.Redis.EventsChannel))
	}
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification, forward)
	notifications.RegisterHandlers()
	return notifications
}
