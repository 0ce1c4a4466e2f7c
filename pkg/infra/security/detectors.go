package security

import (
	"regexp"
	"strings"

	"github.com/RHD-founder/thukpa/pkg/domain/threat"
)

type detectorKind int

const (
	detectorBlockedDevice detectorKind = iota
	detectorBruteForce
	detectorScraping
	detectorSuspiciousPath
)

func (k detectorKind) String() string {
	switch k {
	case detectorBlockedDevice:
		return "blocked_device"
	case detectorBruteForce:
		return "brute_force"
	case detectorScraping:
		return "scraping"
	case detectorSuspiciousPath:
		return "suspicious_path"
	default:
		return "unknown"
	}
}

// detector is one entry of the fixed, order-sensitive detection chain. The
// set never changes at runtime, so a plain tagged slice beats any dynamic
// registration scheme.
type detector struct {
	kind detectorKind
	run  func(RequestContext) *threat.Event
}

// scrapingPatterns are the user-agent indicators of automated clients.
var scrapingPatterns = regexp.MustCompile(
	`(?i)(bot|crawler|spider|scraper|curl|wget|python|requests|scrapy|selenium|phantom|headless)`,
)

// detectBlockedDevice keeps an already-blocked client continuously reported:
// every request from a blocklisted fingerprint synthesizes a critical event
// rather than passing silently.
func (m *Monitor) detectBlockedDevice(reqCtx RequestContext) *threat.Event {
	m.mu.Lock()
	_, isBlocked := m.blocked[reqCtx.FingerprintID]
	m.mu.Unlock()
	if !isBlocked {
		return nil
	}
	return m.createEvent(threat.TypeScraping, threat.SeverityCritical, reqCtx, map[string]interface{}{
		"reason":  "device_blocked",
		"message": "device is blocked",
	})
}

// detectBruteForce counts attempts against the login path inside a sliding
// window. The counter key prefers the device fingerprint and falls back to
// the source IP, so user agents that strip identifying headers still
// accumulate.
func (m *Monitor) detectBruteForce(reqCtx RequestContext) *threat.Event {
	if !strings.HasPrefix(reqCtx.Path, m.cfg.LoginPath) {
		return nil
	}

	key := reqCtx.FingerprintID
	if key == "" {
		key = reqCtx.IP
	}

	m.mu.Lock()
	counter, exists := m.bruteForce[key]
	if !exists || reqCtx.Now.Sub(counter.LastSeen) > m.cfg.BruteForceWindow {
		m.bruteForce[key] = &bruteForceCounter{
			Count:       1,
			WindowStart: reqCtx.Now,
			LastSeen:    reqCtx.Now,
		}
		m.mu.Unlock()
		return nil
	}

	counter.Count++
	counter.LastSeen = reqCtx.Now
	count := counter.Count
	m.mu.Unlock()

	if count < m.cfg.BruteForceMaxAttempts {
		return nil
	}

	return m.createEvent(threat.TypeBruteForce, threat.SeverityHigh, reqCtx, map[string]interface{}{
		"attempts": count,
		"window":   m.cfg.BruteForceWindow.String(),
	})
}

// detectScraping is a stateless signature match on the user agent.
func (m *Monitor) detectScraping(reqCtx RequestContext) *threat.Event {
	if reqCtx.UserAgent == "" || !scrapingPatterns.MatchString(reqCtx.UserAgent) {
		return nil
	}
	return m.createEvent(threat.TypeScraping, threat.SeverityMedium, reqCtx, map[string]interface{}{
		"detectedPattern": reqCtx.UserAgent,
		"reason":          "suspicious_user_agent",
	})
}

// detectSuspiciousPath flags path traversal shapes in the request path.
func (m *Monitor) detectSuspiciousPath(reqCtx RequestContext) *threat.Event {
	if !strings.Contains(reqCtx.Path, "..") && !strings.Contains(reqCtx.Path, "//") {
		return nil
	}
	return m.createEvent(threat.TypeSuspiciousPattern, threat.SeverityMedium, reqCtx, map[string]interface{}{
		"reason":         "path_traversal_attempt",
		"suspiciousPath": reqCtx.Path,
	})
}

// RecordRateLimitExceeded notes that the login rate limiter rejected a
// request; the event joins the device history like any detector finding but
// at medium severity so bursty but legitimate clients are not escalated.
func (m *Monitor) RecordRateLimitExceeded(reqCtx RequestContext) *threat.Event {
	if reqCtx.Now.IsZero() {
		reqCtx.Now = m.now()
	}
	return m.createEvent(threat.TypeRateLimitExceeded, threat.SeverityMedium, reqCtx, map[string]interface{}{
		"reason": "login_rate_limit",
	})
}
