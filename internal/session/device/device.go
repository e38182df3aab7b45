// Package device derives a coarse device descriptor from a user-agent
// string. Parsing is best-effort and total: anything unrecognized maps to
// Other/Other/Desktop instead of an error.
package device

import "strings"

const (
	FormFactorDesktop = "Desktop"
	FormFactorMobile  = "Mobile"
	FormFactorTablet  = "Tablet"
)

// Descriptor is the coarse device classification stored on a session.
type Descriptor struct {
	Browser    string
	OS         string
	FormFactor string
	Mobile     bool
}

// Parse classifies a raw user-agent header value.
func Parse(userAgent string) Descriptor {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	d := Descriptor{
		Browser:    "Other",
		OS:         "Other",
		FormFactor: FormFactorDesktop,
	}
	if ua == "" {
		return d
	}

	switch {
	case strings.Contains(ua, "edg/") || strings.Contains(ua, "edge/"):
		d.Browser = "Edge"
	case strings.Contains(ua, "opr/") || strings.Contains(ua, "opera"):
		d.Browser = "Opera"
	case strings.Contains(ua, "firefox/"):
		d.Browser = "Firefox"
	case strings.Contains(ua, "chrome/") || strings.Contains(ua, "crios/"):
		d.Browser = "Chrome"
	case strings.Contains(ua, "safari/"):
		d.Browser = "Safari"
	}

	switch {
	case strings.Contains(ua, "windows"):
		d.OS = "Windows"
	case strings.Contains(ua, "android"):
		d.OS = "Android"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ios"):
		d.OS = "iOS"
	case strings.Contains(ua, "mac os"), strings.Contains(ua, "macintosh"):
		d.OS = "macOS"
	case strings.Contains(ua, "linux"):
		d.OS = "Linux"
	}

	switch {
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet"):
		d.FormFactor = FormFactorTablet
		d.Mobile = true
	case strings.Contains(ua, "mobile") || strings.Contains(ua, "iphone") ||
		(strings.Contains(ua, "android") && !strings.Contains(ua, "tablet")):
		d.FormFactor = FormFactorMobile
		d.Mobile = true
	}

	return d
}

// ClientIP resolves a best-effort client network address: first hop of
// X-Forwarded-For, then X-Real-IP, then the socket remote address.
func ClientIP(xForwardedFor, xRealIP, remoteAddr string) string {
	if xForwardedFor != "" {
		first := strings.TrimSpace(strings.Split(xForwardedFor, ",")[0])
		if first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(xRealIP); ip != "" {
		return ip
	}
	if addr := strings.TrimSpace(remoteAddr); addr != "" {
		// strip a :port suffix when present
		if i := strings.LastIndex(addr, ":"); i > 0 && !strings.Contains(addr[i:], "]") && strings.Count(addr, ":") == 1 {
			return addr[:i]
		}
		return addr
	}
	return "unknown"
}
