package utils

import "testing"

func TestParseUserAgent(t *testing.T) {
	cases := []struct {
		name        string
		userAgent   string
		wantBrowser string
		wantOS      string
		wantDevice  string
	}{
		{
			name:        "ChromeOnLinux",
			userAgent:   "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			wantBrowser: "Chrome",
			wantOS:      "Linux",
			wantDevice:  "Desktop",
		},
		{
			name:        "SafariOnIPhone",
			userAgent:   "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1",
			wantBrowser: "Safari",
			wantOS:      "iOS",
			wantDevice:  "Mobile",
		},
		{
			name:        "Empty",
			userAgent:   "",
			wantBrowser: "Unknown Browser",
			wantOS:      "Unknown OS",
			wantDevice:  "Desktop",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			browser, os, device := ParseUserAgent(tc.userAgent)
			if browser != tc.wantBrowser {
				t.Errorf("browser = %q, want %q", browser, tc.wantBrowser)
			}
			if os != tc.wantOS {
				t.Errorf("os = %q, want %q", os, tc.wantOS)
			}
			if device != tc.wantDevice {
				t.Errorf("device = %q, want %q", device, tc.wantDevice)
			}
		})
	}
}

func TestSessionName(t *testing.T) {
	got := SessionName("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	if got != "Chrome on Linux" {
		t.Errorf("session name = %q, want %q", got, "Chrome on Linux")
	}
}
