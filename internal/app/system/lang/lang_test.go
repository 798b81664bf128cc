package lang

import (
	"net/http/httptest"
	"testing"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantCode string
		wantOK   bool
	}{
		{"default when absent", "/api/history", "vi", true},
		{"explicit vi", "/api/history?lang=vi", "vi", true},
		{"explicit en", "/api/history?lang=en", "en", true},
		{"explicit ko", "/api/history?lang=ko", "ko", true},
		{"uppercase folded", "/api/history?lang=EN", "en", true},
		{"surrounding space", "/api/history?lang=%20ko%20", "ko", true},
		{"unsupported", "/api/history?lang=fr", "fr", false},
		{"garbage", "/api/history?lang=xx", "xx", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			code, ok := FromRequest(r)
			if code != tt.wantCode || ok != tt.wantOK {
				t.Errorf("FromRequest() = (%q, %v), want (%q, %v)", code, ok, tt.wantCode, tt.wantOK)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	for _, l := range Supported {
		if !IsSupported(l) {
			t.Errorf("IsSupported(%q) = false, want true", l)
		}
	}
	if IsSupported("VI") {
		t.Error("IsSupported should be case-sensitive; callers fold first")
	}
	if IsSupported("") {
		t.Error("IsSupported(\"\") = true, want false")
	}
}
