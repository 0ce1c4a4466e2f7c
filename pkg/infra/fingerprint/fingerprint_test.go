package fingerprint

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, generator *Generator, headers map[string]string) Fingerprint {
	t.Helper()
	app := fiber.New()
	var fp Fingerprint
	app.Get("/", func(c *fiber.Ctx) error {
		fp = generator.FromRequest(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return fp
}

func TestID_StableWithinHour(t *testing.T) {
	base := time.Date(2025, 9, 1, 10, 5, 0, 0, time.UTC)
	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64)",
		"Accept-Language": "en-US,en;q=0.9",
	}

	first := capture(t, NewGeneratorAt(func() time.Time { return base }), headers)
	second := capture(t, NewGeneratorAt(func() time.Time { return base.Add(40 * time.Minute) }), headers)

	assert.Equal(t, first.ID(), second.ID())
}

func TestID_RotatesAcrossHourBoundary(t *testing.T) {
	base := time.Date(2025, 9, 1, 10, 59, 0, 0, time.UTC)
	headers := map[string]string{
		"User-Agent": "Mozilla/5.0 (X11; Linux x86_64)",
	}

	before := capture(t, NewGeneratorAt(func() time.Time { return base }), headers)
	after := capture(t, NewGeneratorAt(func() time.Time { return base.Add(2 * time.Minute) }), headers)

	assert.NotEqual(t, before.HourBucket, after.HourBucket)
	assert.NotEqual(t, before.ID(), after.ID())
}

func TestID_DiffersByHeaders(t *testing.T) {
	base := time.Date(2025, 9, 1, 10, 5, 0, 0, time.UTC)
	generator := NewGeneratorAt(func() time.Time { return base })

	chrome := capture(t, generator, map[string]string{"User-Agent": "Mozilla/5.0 Chrome/120.0"})
	firefox := capture(t, generator, map[string]string{"User-Agent": "Mozilla/5.0 Firefox/121.0"})

	assert.NotEqual(t, chrome.ID(), firefox.ID())
}

func TestID_Length(t *testing.T) {
	fp := capture(t, NewGenerator(), map[string]string{"User-Agent": "Mozilla/5.0"})
	assert.Len(t, fp.ID(), 32)
}

func TestFromRequest_MissingHeadersStillStable(t *testing.T) {
	base := time.Date(2025, 9, 1, 10, 5, 0, 0, time.UTC)
	generator := NewGeneratorAt(func() time.Time { return base })

	first := capture(t, generator, nil)
	second := capture(t, generator, nil)

	assert.Equal(t, first.ID(), second.ID())
	assert.Len(t, first.Headers, len(snapshotHeaders)+1)
}

func TestFromRequest_ParsesDevice(t *testing.T) {
	fp := capture(t, NewGenerator(), map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	})
	assert.Equal(t, "windows", fp.Device.Platform)
	assert.Equal(t, "chrome", fp.Device.Browser)
}
