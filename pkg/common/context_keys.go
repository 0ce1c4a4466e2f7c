package common

type contextKey string

const (
	TraceIdKey              contextKey = "trace_id"
	UserContextKey          contextKey = "auth_user"
	SessionContextKey       contextKey = "auth_session"
	FingerprintIdContextKey contextKey = "fingerprint_id"
)
