package security

import (
	"time"

	"github.com/RHD-founder/thukpa/pkg/infra/fingerprint"
)

// RequestContext is the per-request snapshot the detectors evaluate. It is
// assembled once by the dispatcher middleware so detectors never touch the
// transport layer directly.
type RequestContext struct {
	Fingerprint   fingerprint.Fingerprint
	FingerprintID string
	IP            string
	UserAgent     string
	Path          string
	Method        string
	UserID        string
	Now           time.Time
}
