package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hunter-yen/hunter-server/internal/config"
	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus wrapped in a
// resilient publisher. Events whose subscribers keep failing after
// EventDefaultMaxRetries attempts are appended to a dead-letter file in
// LOG_DIR (or the working directory).
func InitializeEventSystem(cfg *config.Config) (*event.MemoryBus, *event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	deadLetterPath := EventDeadLetterFile
	if cfg.LogDir != "" {
		deadLetterPath = filepath.Join(cfg.LogDir, EventDeadLetterFile)
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(metrics.InstrumentBus(bus), EventDefaultMaxRetries, EventDefaultRetryDelay, deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return bus, publisher, nil
}
