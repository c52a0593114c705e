package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// SignalHandler cancels the leader's context on SIGINT or SIGTERM so a
// polling leader stops between snapshots instead of mid-write.
type SignalHandler struct {
	signals  chan os.Signal
	shutdown chan struct{} // closed once a signal has been handled
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	cancel   context.CancelFunc
	logger   *slog.Logger
}

// NewSignalHandler creates a signal handler with the given context cancel
func NewSignalHandler(cancel context.CancelFunc, logger *slog.Logger) *SignalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SignalHandler{
		signals:  make(chan os.Signal, 1),
		shutdown: make(chan struct{}),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		cancel:   cancel,
		logger:   logger,
	}
}

// Start begins listening for signals
func (h *SignalHandler) Start() {
	h.StartWithNotify(true)
}

// StartWithNotify begins listening for signals, optionally registering with OS signal handling.
// Pass false for notify in unit tests to avoid global signal state interactions.
func (h *SignalHandler) StartWithNotify(notify bool) {
	if notify {
		signal.Notify(h.signals, syscall.SIGINT, syscall.SIGTERM)
	}

	go func() {
		defer close(h.done)

		select {
		case sig := <-h.signals:
			h.logger.Warn("Received signal, stopping", slog.String("signal", sig.String()))
			if h.cancel != nil {
				h.cancel()
			}
			close(h.shutdown)
		case <-h.stopCh:
		}
	}()
}

// Stop stops the signal handler and waits for its goroutine to exit
func (h *SignalHandler) Stop() {
	signal.Stop(h.signals)
	h.stopOnce.Do(func() {
		close(h.stopCh)
	})
	<-h.done
}
