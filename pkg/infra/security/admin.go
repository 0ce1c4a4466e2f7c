package security

import (
	"sort"
	"time"

	"github.com/RHD-founder/thukpa/pkg/common"
	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/RHD-founder/thukpa/pkg/domain/threat"
)

// Stats is the security dashboard payload.
type Stats struct {
	TotalThreats  int            `json:"total_threats"`
	BlockedCount  int            `json:"blocked_devices"`
	RecentThreats []threat.Event `json:"recent_threats"`
	ThreatTypes   map[string]int `json:"threat_types"`
	ActiveUsers   int            `json:"active_users"`
	UserDevices   []ActiveUser   `json:"user_devices"`
	ActiveIPs     int            `json:"active_ips"`
	ActiveIPList  []ActiveIP     `json:"active_ip_list"`
}

// IsBlocked reports whether a fingerprint is currently denied service.
func (m *Monitor) IsBlocked(fingerprint string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, blocked := m.blocked[fingerprint]
	return blocked
}

// Block adds a fingerprint to the blocklist as a deliberate administrative
// action. A critical event is synthesized into the device history so the
// manual intervention shows up in the audit trail like any other threat.
func (m *Monitor) Block(fingerprint, reason string, metadata map[string]interface{}) error {
	now := m.now()
	event := &threat.Event{
		Type:              threat.TypeSuspiciousPattern,
		Severity:          threat.SeverityCritical,
		DeviceFingerprint: fingerprint,
		Timestamp:         now,
		Blocked:           true,
		Details: map[string]interface{}{
			"reason": "manual_block",
		},
	}
	if ip, ok := metadata["ip"].(string); ok {
		event.IP = ip
	}

	m.mu.Lock()
	if _, exists := m.blocked[fingerprint]; exists {
		m.mu.Unlock()
		return domain.ErrDeviceBlocked
	}
	m.blocked[fingerprint] = &blockRecord{
		Reason:    reason,
		Metadata:  metadata,
		BlockedAt: now,
	}
	m.history[fingerprint] = append(m.history[fingerprint], event)
	m.mu.Unlock()

	if m.events != nil {
		m.events.Record(event)
	}
	if m.blocks != nil {
		m.blocks.DeviceBlocked(&threat.BlockedDevice{
			Fingerprint: fingerprint,
			Reason:      reason,
			Metadata:    metadata,
			BlockedAt:   now,
		})
	}
	return nil
}

// RestoreBlocked seeds the in-memory blocklist from durable records at
// startup. The sinks are not notified; these blocks are already persisted.
func (m *Monitor) RestoreBlocked(devices []threat.BlockedDevice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range devices {
		d := &devices[i]
		if _, exists := m.blocked[d.Fingerprint]; exists {
			continue
		}
		m.blocked[d.Fingerprint] = &blockRecord{
			Reason:    d.Reason,
			Metadata:  d.Metadata,
			BlockedAt: d.BlockedAt,
		}
	}
}

// Unblock removes a fingerprint from the blocklist. The device's event
// history is deliberately retained; only the enforcement decision is lifted.
// Returns false when the fingerprint was not blocked.
func (m *Monitor) Unblock(fingerprint string) bool {
	m.mu.Lock()
	_, existed := m.blocked[fingerprint]
	delete(m.blocked, fingerprint)
	m.mu.Unlock()

	if existed && m.blocks != nil {
		m.blocks.DeviceUnblocked(fingerprint)
	}
	return existed
}

// GetStats snapshots the monitor state for the admin dashboard. Stale active
// IPs are evicted before the snapshot so the list reflects the tracking
// window.
func (m *Monitor) GetStats() Stats {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	recentSince := now.Add(-common.RecentThreatWindow)
	var recent []threat.Event
	types := make(map[string]int)
	for _, events := range m.history {
		total += len(events)
		for _, e := range events {
			types[string(e.Type)]++
			if e.Timestamp.After(recentSince) {
				recent = append(recent, *e)
			}
		}
	}
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})

	for ip, entry := range m.activeIPs {
		if now.Sub(entry.LastSeen) > m.cfg.ActiveIPWindow {
			delete(m.activeIPs, ip)
		}
	}
	ips := make([]ActiveIP, 0, len(m.activeIPs))
	for _, entry := range m.activeIPs {
		ips = append(ips, *entry)
	}
	sort.Slice(ips, func(i, j int) bool {
		return ips[i].LastSeen.After(ips[j].LastSeen)
	})

	users := make([]ActiveUser, 0, len(m.activeUsers))
	for _, u := range m.activeUsers {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].LastSeen.After(users[j].LastSeen)
	})

	return Stats{
		TotalThreats:  total,
		BlockedCount:  len(m.blocked),
		RecentThreats: recent,
		ThreatTypes:   types,
		ActiveUsers:   len(users),
		UserDevices:   users,
		ActiveIPs:     len(ips),
		ActiveIPList:  ips,
	}
}

// BlockedSince returns when a fingerprint was blocked; ok is false when the
// fingerprint is not on the blocklist.
func (m *Monitor) BlockedSince(fingerprint string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.blocked[fingerprint]
	if !ok {
		return time.Time{}, false
	}
	return record.BlockedAt, true
}
