package resolve

import "testing"

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jan 2020", "2020-01"},
		{"January 2020", "2020-01"},
		{"Sept 2021", "2021-09"},
		{"Dec. 2019", "2019-12"},
		{"01/2020", "2020-01"},
		{"9/2023", "2023-09"},
		{"2020-01", "2020-01"},
		{"2020", "2020-01"},
		{"  Mar 2022  ", "2022-03"},
		{"", ""},
		{"soon", ""},
	}
	for _, tt := range tests {
		if got := ParseDate(tt.in); got != tt.want {
			t.Errorf("ParseDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2020-01", "January 2020"},
		{"2023-12", "December 2023"},
		{"Present", "Present"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	for _, iso := range []string{"2020-01", "2023-06", "2019-12"} {
		if got := ParseDate(FormatDate(iso)); got != iso {
			t.Errorf("ParseDate(FormatDate(%q)) = %q", iso, got)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		in   string
		want DateRange
	}{
		{"Jan 2020 - Dec 2023", DateRange{Start: "2020-01", End: "2023-12"}},
		{"2020 - Present", DateRange{Start: "2020-01", Current: true}},
		{"Mar 2021 to Current", DateRange{Start: "2021-03", Current: true}},
		{"2022-05", DateRange{Start: "2022-05"}},
		{"", DateRange{}},
	}
	for _, tt := range tests {
		if got := ParseDateRange(tt.in); got != tt.want {
			t.Errorf("ParseDateRange(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFormatDateForInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2020-01-15", "2020-01-15"},
		{"2020-01", "2020-01-01"},
		{"Jan 2020", "2020-01-01"},
		{"2020", "2020-01-01"},
		{"", ""},
		{"nope", ""},
	}
	for _, tt := range tests {
		if got := FormatDateForInput(tt.in); got != tt.want {
			t.Errorf("FormatDateForInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDateForControl(t *testing.T) {
	if got := FormatDateForControl("Jan 2020", "month"); got != "2020-01" {
		t.Errorf("month control = %q, want 2020-01", got)
	}
	if got := FormatDateForControl("2021-01-04", "week"); got != "2021-W01" {
		t.Errorf("week control = %q, want 2021-W01", got)
	}
	if got := FormatDateForControl("2020-06", "date"); got != "2020-06-01" {
		t.Errorf("date control = %q, want 2020-06-01", got)
	}
	if got := FormatDateForControl("", "month"); got != "" {
		t.Errorf("empty input = %q, want empty", got)
	}
}
