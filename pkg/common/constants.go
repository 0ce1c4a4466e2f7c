package common

import "time"

const (
	SessionCookieName = "session_token"
	SessionCacheTTL   = 24 * time.Hour

	RecentThreatWindow = 24 * time.Hour

	UnknownIP = "unknown"
)
