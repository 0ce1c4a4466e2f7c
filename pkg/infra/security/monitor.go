package security

import (
	"context"
	"sync"
	"time"

	"github.com/RHD-founder/thukpa/pkg/config"
	"github.com/RHD-founder/thukpa/pkg/domain/threat"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EventSink receives every created threat event for durable persistence.
// Implementations must not block: enforcement is driven by the in-memory
// state and a slow or failing sink may only degrade audit history.
type EventSink interface {
	Record(event *threat.Event)
}

// BlockSink receives blocklist changes for durable persistence, best effort.
type BlockSink interface {
	DeviceBlocked(device *threat.BlockedDevice)
	DeviceUnblocked(fingerprint string)
}

// Monitor owns all mutable threat detection state: per-device event history,
// the blocklist, brute-force counters and the active user/IP trackers. Every
// request handler goroutine goes through it concurrently, so all state lives
// behind one mutex; the critical sections are map operations only.
type Monitor struct {
	cfg    config.SecurityConfig
	logger *logrus.Logger

	events EventSink
	blocks BlockSink

	mu          sync.Mutex
	history     map[string][]*threat.Event
	blocked     map[string]*blockRecord
	bruteForce  map[string]*bruteForceCounter
	activeIPs   map[string]*ActiveIP
	activeUsers map[string]*ActiveUser

	detectors    []detector
	loginLimiter *RateLimiter

	now func() time.Time

	started  bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

type Option func(*Monitor)

// WithClock pins the monitor's clock for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

func NewMonitor(
	cfg config.SecurityConfig,
	logger *logrus.Logger,
	events EventSink,
	blocks BlockSink,
	opts ...Option,
) *Monitor {
	m := &Monitor{
		cfg:         cfg,
		logger:      logger,
		events:      events,
		blocks:      blocks,
		history:     make(map[string][]*threat.Event),
		blocked:     make(map[string]*blockRecord),
		bruteForce:  make(map[string]*bruteForceCounter),
		activeIPs:   make(map[string]*ActiveIP),
		activeUsers: make(map[string]*ActiveUser),
		now:         time.Now,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	m.loginLimiter = NewRateLimiter(cfg.LoginRateLimitWindow, cfg.LoginRateLimitMax)
	for _, opt := range opts {
		opt(m)
	}
	m.loginLimiter.now = m.now

	// Fixed evaluation order: the blocklist short-circuit runs first so a
	// blocked client is denied before any fresh detection, then brute force,
	// then the stateless signature checks.
	m.detectors = []detector{
		{kind: detectorBlockedDevice, run: m.detectBlockedDevice},
		{kind: detectorBruteForce, run: m.detectBruteForce},
		{kind: detectorScraping, run: m.detectScraping},
		{kind: detectorSuspiciousPath, run: m.detectSuspiciousPath},
	}
	return m
}

// CheckBlocked runs only the blocklist short-circuit. The dispatcher calls
// this on every request; the full detector chain is reserved for sensitive
// paths so that signature checks cannot accumulate events against ordinary
// traffic.
func (m *Monitor) CheckBlocked(reqCtx RequestContext) *threat.Event {
	if reqCtx.Now.IsZero() {
		reqCtx.Now = m.now()
	}
	return m.runDetector(detector{kind: detectorBlockedDevice, run: m.detectBlockedDevice}, reqCtx)
}

// Detect evaluates the ordered detector list against one request and returns
// the first threat found, or nil. Detector panics are swallowed and treated
// as "no threat" for that check; only an explicit blocklist hit fails closed.
func (m *Monitor) Detect(reqCtx RequestContext) *threat.Event {
	if reqCtx.Now.IsZero() {
		reqCtx.Now = m.now()
	}
	for _, d := range m.detectors {
		if event := m.runDetector(d, reqCtx); event != nil {
			return event
		}
	}
	return nil
}

func (m *Monitor) runDetector(d detector, reqCtx RequestContext) (event *threat.Event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.WithFields(logrus.Fields{
				"detector": d.kind.String(),
				"panic":    r,
				"path":     reqCtx.Path,
			}).Error("detector panicked, treating as no threat")
			event = nil
		}
	}()
	return d.run(reqCtx)
}

// createEvent records a new threat for a device, runs the blocking policy and
// stamps the Blocked flag exactly once. The event is handed to the durable
// sink after the in-memory decision is final.
func (m *Monitor) createEvent(
	eventType threat.Type,
	severity threat.Severity,
	reqCtx RequestContext,
	details map[string]interface{},
) *threat.Event {
	event := &threat.Event{
		ID:                uuid.New(),
		Type:              eventType,
		Severity:          severity,
		UserID:            reqCtx.UserID,
		IP:                reqCtx.IP,
		UserAgent:         reqCtx.UserAgent,
		DeviceFingerprint: reqCtx.FingerprintID,
		Timestamp:         reqCtx.Now,
		Path:              reqCtx.Path,
		Details:           details,
	}

	m.mu.Lock()
	key := event.DeviceFingerprint
	m.history[key] = append(m.history[key], event)
	shouldBlock := m.shouldBlockLocked(key, event)
	if shouldBlock {
		m.blockLocked(key, event.Details, reqCtx.Now)
		event.Blocked = true
	}
	m.mu.Unlock()

	if shouldBlock {
		m.logger.WithFields(logrus.Fields{
			"device_fingerprint": key,
			"type":               string(event.Type),
			"severity":           string(event.Severity),
		}).Warn("device blocked")
		if m.blocks != nil {
			m.blocks.DeviceBlocked(&threat.BlockedDevice{
				Fingerprint: key,
				Reason:      string(event.Type),
				Metadata:    event.Details,
				BlockedAt:   reqCtx.Now,
			})
		}
	}

	if m.events != nil {
		m.events.Record(event)
	}
	return event
}

// shouldBlockLocked is the flagged→blocked transition of the blocking policy.
// Medium and low severity alone never block; the policy only escalates on a
// critical event, repeated high-severity events in a short window, or a
// device whose lifetime history has grown past the ceiling.
func (m *Monitor) shouldBlockLocked(key string, current *threat.Event) bool {
	if current.Severity == threat.SeverityCritical {
		return true
	}

	events := m.history[key]

	highSince := current.Timestamp.Add(-m.cfg.HighSeverityWindow)
	recentHigh := 0
	for _, e := range events {
		if e.Severity == threat.SeverityHigh && e.Timestamp.After(highSince) {
			recentHigh++
		}
	}
	if recentHigh >= m.cfg.HighSeverityThreshold {
		return true
	}

	return len(events) >= m.cfg.MaxEventsPerDevice
}

func (m *Monitor) blockLocked(key string, metadata map[string]interface{}, at time.Time) {
	if _, exists := m.blocked[key]; exists {
		return
	}
	m.blocked[key] = &blockRecord{
		Reason:    "auto_blocked",
		Metadata:  metadata,
		BlockedAt: at,
	}
}

// Start launches the background sweeper that prunes stale brute-force
// counters and active IPs on a fixed interval, independent of request
// handling.
func (m *Monitor) Start() {
	m.started = true
	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sweep()
			case <-m.stop:
				return
			}
		}
	}()
}

func (m *Monitor) sweep() {
	now := m.now()
	m.mu.Lock()
	for key, counter := range m.bruteForce {
		if now.Sub(counter.LastSeen) > m.cfg.BruteForceWindow {
			delete(m.bruteForce, key)
		}
	}
	for ip, entry := range m.activeIPs {
		if now.Sub(entry.LastSeen) > m.cfg.ActiveIPWindow {
			delete(m.activeIPs, ip)
		}
	}
	m.mu.Unlock()
	m.loginLimiter.Sweep()
}

// AllowLogin consumes one login rate-limit slot for the source IP.
func (m *Monitor) AllowLogin(ip string) bool {
	allowed, _ := m.loginLimiter.Allow(ip)
	return allowed
}

// Shutdown stops the sweeper. It is safe to call more than once.
func (m *Monitor) Shutdown(ctx context.Context) error {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
	if !m.started {
		return nil
	}
	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
