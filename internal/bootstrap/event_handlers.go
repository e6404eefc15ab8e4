package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/metrics"
	"github.com/hunter-yen/hunter-server/internal/sse"
)

// RegisterEventHandlers attaches the bus subscribers: Prometheus counters,
// the persisted audit trail and, when app carries one, the live stream hub.
func RegisterEventHandlers(bus event.Bus, app *App) error {
	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if err := app.EventLog.Subscribe(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	if app.Stream != nil {
		app.Stream.Start()
		sse.NewSubscriber(app.Stream).Subscribe(bus)
	}
	return nil
}
