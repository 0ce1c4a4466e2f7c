package security

import (
	"context"
	"sync"
	"time"

	"github.com/RHD-founder/thukpa/pkg/domain/threat"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const persistTimeout = 5 * time.Second

// EventWriter persists threat events without ever blocking the detection
// path: events are queued on a bounded channel and drained by one worker.
// A circuit breaker keeps a dead database from being hammered on every
// event; failures and overflow degrade audit history only and are logged.
type EventWriter struct {
	logger  *logrus.Logger
	repo    threat.Repository
	breaker *gobreaker.CircuitBreaker
	queue   chan *threat.Event
	wg      sync.WaitGroup
	once    sync.Once
}

func NewEventWriter(logger *logrus.Logger, repo threat.Repository, queueSize int) *EventWriter {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &EventWriter{
		logger: logger,
		repo:   repo,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "threat_event_store",
			Timeout: 30 * time.Second,
		}),
		queue: make(chan *threat.Event, queueSize),
	}
}

func (w *EventWriter) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for event := range w.queue {
			w.persist(event)
		}
	}()
}

// Record enqueues an event for durable persistence. It never blocks: when
// the queue is full the event is dropped with a warning.
func (w *EventWriter) Record(event *threat.Event) {
	select {
	case w.queue <- event:
	default:
		w.logger.WithFields(logrus.Fields{
			"event_id": event.ID.String(),
			"type":     string(event.Type),
		}).Warn("threat event queue full, dropping event")
	}
}

func (w *EventWriter) persist(event *threat.Event) {
	_, err := w.breaker.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		return nil, w.repo.Create(ctx, event)
	})
	if err != nil {
		w.logger.WithError(err).WithField("event_id", event.ID.String()).
			Warn("failed to persist threat event")
	}
}

// Close drains the queue and stops the worker.
func (w *EventWriter) Close() {
	w.once.Do(func() {
		close(w.queue)
	})
	w.wg.Wait()
}

// BlockedDeviceWriter mirrors blocklist changes to the durable store, best
// effort. Enforcement never waits on it.
type BlockedDeviceWriter struct {
	logger *logrus.Logger
	repo   threat.BlockedDeviceRepository
}

func NewBlockedDeviceWriter(logger *logrus.Logger, repo threat.BlockedDeviceRepository) *BlockedDeviceWriter {
	return &BlockedDeviceWriter{logger: logger, repo: repo}
}

func (w *BlockedDeviceWriter) DeviceBlocked(device *threat.BlockedDevice) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := w.repo.Save(ctx, device); err != nil {
			w.logger.WithError(err).WithField("fingerprint", device.Fingerprint).
				Warn("failed to persist blocked device")
		}
	}()
}

func (w *BlockedDeviceWriter) DeviceUnblocked(fingerprint string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := w.repo.Delete(ctx, fingerprint); err != nil {
			w.logger.WithError(err).WithField("fingerprint", fingerprint).
				Warn("failed to remove blocked device record")
		}
	}()
}
