package utils

import (
	"strings"

	"github.com/avct/uasurfer"
)

type UserAgentInfo struct {
	Platform   string `json:"platform"`
	Browser    string `json:"browser"`
	DeviceType string `json:"device_type"`
}

// ParseUserAgent classifies a raw User-Agent string into the coarse
// platform/browser/device buckets used by device tracking. Unrecognized
// values collapse to "unknown" rather than failing.
func ParseUserAgent(uaString string) UserAgentInfo {
	ua := uasurfer.Parse(uaString)

	platform := "unknown"
	switch ua.OS.Name {
	case uasurfer.OSWindows:
		platform = "windows"
	case uasurfer.OSMacOSX:
		platform = "mac"
	case uasurfer.OSLinux:
		platform = "linux"
	case uasurfer.OSAndroid:
		platform = "android"
	case uasurfer.OSiOS:
		platform = "ios"
	}

	browser := "unknown"
	switch ua.Browser.Name {
	case uasurfer.BrowserChrome:
		browser = "chrome"
	case uasurfer.BrowserFirefox:
		browser = "firefox"
	case uasurfer.BrowserSafari:
		browser = "safari"
	case uasurfer.BrowserIE:
		browser = "edge"
	}

	deviceType := "desktop"
	switch ua.DeviceType {
	case uasurfer.DevicePhone:
		deviceType = "mobile"
	case uasurfer.DeviceTablet:
		deviceType = "tablet"
	}

	return UserAgentInfo{
		Platform:   platform,
		Browser:    browser,
		DeviceType: deviceType,
	}
}

// Truncate caps s at max bytes; fingerprint inputs and stored user agents are
// bounded so one oversized header cannot skew keys or rows.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// SanitizeInput strips angle brackets and caps free-form text fields.
func SanitizeInput(input string) string {
	cleaned := strings.NewReplacer("<", "", ">", "").Replace(strings.TrimSpace(input))
	return Truncate(cleaned, 1000)
}
