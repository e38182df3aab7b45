package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		ua   string
		want Descriptor
	}{
		{
			name: "chrome on windows",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			want: Descriptor{Browser: "Chrome", OS: "Windows", FormFactor: FormFactorDesktop},
		},
		{
			name: "safari on iphone",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Version/17.0 Mobile/15E148 Safari/604.1",
			want: Descriptor{Browser: "Safari", OS: "iOS", FormFactor: FormFactorMobile, Mobile: true},
		},
		{
			name: "firefox on linux",
			ua:   "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0",
			want: Descriptor{Browser: "Firefox", OS: "Linux", FormFactor: FormFactorDesktop},
		},
		{
			name: "ipad",
			ua:   "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X) AppleWebKit/605.1.15 Version/16.0 Mobile/15E148 Safari/604.1",
			want: Descriptor{Browser: "Safari", OS: "iOS", FormFactor: FormFactorTablet, Mobile: true},
		},
		{
			name: "edge on mac",
			ua:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 Chrome/120.0 Safari/537.36 Edg/120.0",
			want: Descriptor{Browser: "Edge", OS: "macOS", FormFactor: FormFactorDesktop},
		},
		{
			name: "empty",
			ua:   "",
			want: Descriptor{Browser: "Other", OS: "Other", FormFactor: FormFactorDesktop},
		},
		{
			name: "garbage",
			ua:   "\x00\x01 definitely not a browser",
			want: Descriptor{Browser: "Other", OS: "Other", FormFactor: FormFactorDesktop},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.ua))
		})
	}
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "203.0.113.7", ClientIP("203.0.113.7, 10.0.0.1", "", "10.1.1.1:443"))
	assert.Equal(t, "203.0.113.9", ClientIP("", "203.0.113.9", "10.1.1.1:443"))
	assert.Equal(t, "10.1.1.1", ClientIP("", "", "10.1.1.1:443"))
	assert.Equal(t, "unknown", ClientIP("", "", ""))
}
