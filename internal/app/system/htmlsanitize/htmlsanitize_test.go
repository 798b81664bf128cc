package htmlsanitize

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
		excludes string
	}{
		{"strips script", `<p>hi</p><script>alert(1)</script>`, "<p>hi</p>", "script"},
		{"keeps bold", `<b>giá tốt</b>`, "<b>giá tốt</b>", ""},
		{"keeps table", `<table><tr><td>A</td></tr></table>`, "<td>A</td>", ""},
		{"strips onclick", `<a href="https://x.vn" onclick="evil()">x</a>`, "x", "onclick"},
		{"strips iframe", `<iframe src="https://maps.google.com"></iframe>ok`, "ok", "iframe"},
		{"empty passthrough", "", "", "<"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if tt.contains != "" && !strings.Contains(got, tt.contains) {
				t.Errorf("Sanitize(%q) = %q, want it to contain %q", tt.input, got, tt.contains)
			}
			if tt.excludes != "" && strings.Contains(got, tt.excludes) {
				t.Errorf("Sanitize(%q) = %q, must not contain %q", tt.input, got, tt.excludes)
			}
		})
	}
}

func TestIsPlainText(t *testing.T) {
	if !IsPlainText("Lịch sử hình thành công ty") {
		t.Error("plain Vietnamese text should be plain")
	}
	if IsPlainText("<p>hi</p>") {
		t.Error("markup should not be plain")
	}
}
