// Package resolve turns semantic field types plus profile data into
// concrete input values, applying per-type derivations and type-aware
// formatting for dates, phone numbers, booleans and lists.
package resolve

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// months maps month names and abbreviations to two-digit numbers.
var months = map[string]string{
	"jan": "01", "january": "01",
	"feb": "02", "february": "02",
	"mar": "03", "march": "03",
	"apr": "04", "april": "04",
	"may": "05",
	"jun": "06", "june": "06",
	"jul": "07", "july": "07",
	"aug": "08", "august": "08",
	"sep": "09", "sept": "09", "september": "09",
	"oct": "10", "october": "10",
	"nov": "11", "november": "11",
	"dec": "12", "december": "12",
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var (
	monthYearRe = regexp.MustCompile(`(\w+)\.?\s+(\d{4})`)
	numericRe   = regexp.MustCompile(`(\d{1,2})/(\d{4})`)
	isoMonthRe  = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	yearOnlyRe  = regexp.MustCompile(`^\d{4}$`)
	isoDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	presentRe   = regexp.MustCompile(`(?i)present|current|now`)
	rangeSepRe  = regexp.MustCompile(`(?i)\s+(?:[-–—]+|to)\s+|[–—]+`)
)

// ParseDate normalizes a date string to YYYY-MM. Accepted inputs: "Jan
// 2020", "January 2020", "01/2020", "2020-01", "2020". Returns "" when the
// input is unparseable.
func ParseDate(dateStr string) string {
	cleaned := strings.TrimSpace(dateStr)
	if cleaned == "" {
		return ""
	}

	if m := monthYearRe.FindStringSubmatch(cleaned); m != nil {
		month, ok := months[strings.ToLower(m[1])]
		if !ok {
			month = "01"
		}
		return m[2] + "-" + month
	}

	if m := numericRe.FindStringSubmatch(cleaned); m != nil {
		month := m[1]
		if len(month) == 1 {
			month = "0" + month
		}
		return m[2] + "-" + month
	}

	if isoMonthRe.MatchString(cleaned) {
		return cleaned
	}

	if yearOnlyRe.MatchString(cleaned) {
		return cleaned + "-01"
	}

	return ""
}

// DateRange is a parsed employment period.
type DateRange struct {
	Start   string
	End     string
	Current bool
}

// ParseDateRange splits strings like "Jan 2020 - Dec 2023" or "2020 -
// Present" into normalized start/end parts.
func ParseDateRange(rangeStr string) DateRange {
	var out DateRange
	if strings.TrimSpace(rangeStr) == "" {
		return out
	}

	parts := rangeSepRe.Split(rangeStr, -1)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) > 0 && parts[0] != "" {
		out.Start = ParseDate(parts[0])
	}
	if len(parts) > 1 && parts[1] != "" {
		if presentRe.MatchString(parts[1]) {
			out.Current = true
		} else {
			out.End = ParseDate(parts[1])
		}
	}
	return out
}

// FormatDate renders a YYYY-MM date as "January 2020". Inputs in any other
// shape pass through unchanged.
func FormatDate(dateStr string) string {
	m := isoMonthRe.FindStringSubmatch(dateStr)
	if m == nil {
		return dateStr
	}
	idx := int(m[2][0]-'0')*10 + int(m[2][1]-'0') - 1
	if idx < 0 || idx >= len(monthNames) {
		idx = 0
	}
	return monthNames[idx] + " " + m[1]
}

// CurrentDate returns the current month in YYYY-MM form.
func CurrentDate() string {
	return time.Now().Format("2006-01")
}

// FormatDateForInput renders a date string as YYYY-MM-DD, the value format
// of an <input type="date">.
func FormatDateForInput(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	if isoDateRe.MatchString(dateStr) {
		return dateStr
	}
	if isoMonthRe.MatchString(dateStr) {
		return dateStr + "-01"
	}
	if parsed := ParseDate(dateStr); parsed != "" {
		return parsed + "-01"
	}
	return ""
}

// FormatDateForControl renders a date in the native value convention of the
// given control type: YYYY-MM for month inputs, ISO week for week inputs,
// YYYY-MM-DD otherwise.
func FormatDateForControl(dateStr, inputType string) string {
	full := FormatDateForInput(dateStr)
	if full == "" {
		return ""
	}
	switch inputType {
	case "month":
		return full[:7]
	case "week":
		t, err := time.Parse("2006-01-02", full)
		if err != nil {
			return full
		}
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return full
	}
}
