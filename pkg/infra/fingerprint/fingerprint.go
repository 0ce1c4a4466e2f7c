package fingerprint

import (
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/RHD-founder/thukpa/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const idLength = 32

// snapshotHeaders is the fixed ordered header set a fingerprint is derived
// from. Order matters: the same request must always serialize identically.
var snapshotHeaders = []string{
	"User-Agent",
	"Accept-Language",
	"Accept-Encoding",
	"Accept-Charset",
	"Accept",
	"Connection",
	"Upgrade-Insecure-Requests",
	"Sec-Fetch-Site",
	"Sec-Fetch-Mode",
	"Sec-Fetch-Dest",
	"Sec-Fetch-User",
	"Sec-CH-UA",
	"Sec-CH-UA-Mobile",
	"Sec-CH-UA-Platform",
	"DNT",
	"Viewport-Width",
	"Width",
}

// Fingerprint is a short-lived correlation key for a client device, derived
// from a header snapshot and an hour-granularity time bucket. It is not a
// durable identity: two devices with identical headers in the same hour
// collide, and the same device rotates to a new key every hour.
type Fingerprint struct {
	Headers    []string
	HourBucket int64
	UserAgent  string
	Device     utils.UserAgentInfo
}

// ID returns the opaque bounded-length key used by the counter stores and the
// blocklist.
func (f Fingerprint) ID() string {
	raw := strings.Join(f.Headers, "|")
	sum := sha256.Sum256([]byte(raw))
	id := base64.RawURLEncoding.EncodeToString(sum[:])
	if len(id) > idLength {
		id = id[:idLength]
	}
	return id
}

type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorAt pins the clock; detection tests use it to cross hour
// boundaries deterministically.
func NewGeneratorAt(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// FromRequest snapshots the request. Missing headers contribute empty strings
// so the field count, and therefore the serialization, is always stable.
func (g *Generator) FromRequest(ctx *fiber.Ctx) Fingerprint {
	bucket := g.now().Unix() / 3600

	values := make([]string, 0, len(snapshotHeaders)+1)
	for _, h := range snapshotHeaders {
		values = append(values, utils.Truncate(ctx.Get(h), 128))
	}
	values = append(values, strconv.FormatInt(bucket, 10))

	ua := ctx.Get(fiber.HeaderUserAgent)
	return Fingerprint{
		Headers:    values,
		HourBucket: bucket,
		UserAgent:  ua,
		Device:     utils.ParseUserAgent(ua),
	}
}
