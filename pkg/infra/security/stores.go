package security

import "time"

// bruteForceCounter is a sliding-window attempt counter keyed by device
// fingerprint (IP when no fingerprint is available). The window restarts,
// count back at 1, whenever the key goes quiet for longer than the configured
// window.
type bruteForceCounter struct {
	Count       int
	WindowStart time.Time
	LastSeen    time.Time
}

// ActiveIP tracks a recently seen client address. Entries idle for longer
// than the active-IP window are evicted lazily on every tracking call and by
// the background sweeper.
type ActiveIP struct {
	IP           string    `json:"ip"`
	LastSeen     time.Time `json:"last_seen"`
	UserAgent    string    `json:"user_agent"`
	Fingerprint  string    `json:"device_fingerprint"`
	RequestCount int       `json:"request_count"`
}

// ActiveUser tracks an authenticated admin and the device they logged in
// from. There is no TTL eviction: entries leave only on explicit logout or
// removal, a known limitation inherited from the tracking design.
type ActiveUser struct {
	UserID      string    `json:"user_id"`
	Fingerprint string    `json:"device_fingerprint"`
	UserAgent   string    `json:"user_agent"`
	Platform    string    `json:"platform"`
	Browser     string    `json:"browser"`
	DeviceType  string    `json:"device_type"`
	LastSeen    time.Time `json:"last_seen"`
	LoginTime   time.Time `json:"login_time"`
	IP          string    `json:"ip"`
}

// blockRecord is a blocklist entry. A device enters when the blocking policy
// fires or an admin blocks it manually, and leaves only via explicit unblock.
type blockRecord struct {
	Reason    string
	Metadata  map[string]interface{}
	BlockedAt time.Time
}
