package resolve

import "testing"

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5551234567", "(555) 123-4567"},
		{"555-123-4567", "(555) 123-4567"},
		{"(555) 123 4567", "(555) 123-4567"},
		{"15551234567", "+1 (555) 123-4567"},
		{"+1 555 123 4567", "+1 (555) 123-4567"},
		{"445551234567", "445-551-2345 67"},
		{"12345", "12345"},
		{"call me", "call me"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatPhoneNumber(tt.in); got != tt.want {
			t.Errorf("FormatPhoneNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
