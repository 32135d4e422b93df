package push

import (
	"context"
	"fmt"

	"github.com/totl-app/totl-api/internal/domain/notification"
	"github.com/totl-app/totl-api/internal/platform/logging"
	"github.com/totl-app/totl-api/internal/usecase"
)

// LogDispatcher stands in for the push provider when none is configured.
// Every dispatch is logged and counted as accepted, which keeps local
// development and tests honest about what would have been sent.
type LogDispatcher struct {
	logger *logging.Logger
}

func NewLogDispatcher(logger *logging.Logger) *LogDispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Send(ctx context.Context, item notification.Dispatch) (notification.Receipt, error) {
	if len(item.UserIDs) == 0 {
		return notification.Receipt{}, fmt.Errorf("%w: dispatch requires at least one recipient", usecase.ErrInvalidInput)
	}

	d.logger.InfoContext(ctx, "push dispatch (log only)",
		"notification_key", item.NotificationKey,
		"event_id", item.EventID,
		"recipients", len(item.UserIDs),
		"title", item.Title,
	)
	return notification.Receipt{Accepted: len(item.UserIDs)}, nil
}
