package resolve

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/job-autofill/internal/types"
)

// Record is the data subtree a field type resolves against: one category's
// worth of profile data with dynamic keys. Missing keys mean "no value,
// skip field", never an error.
type Record map[string]any

// PersonalRecord builds a record from the profile's personal-info map.
func PersonalRecord(info map[string]string) Record {
	rec := make(Record, len(info))
	for k, v := range info {
		rec[k] = v
	}
	return rec
}

// WorkRecord builds a record from one work-experience entry.
func WorkRecord(w types.WorkExperience) Record {
	return Record{
		"company":     w.Company,
		"position":    w.Position,
		"startDate":   w.StartDate,
		"endDate":     w.EndDate,
		"current":     w.Current,
		"location":    w.Location,
		"description": w.Description,
	}
}

// EducationRecord builds a record from one education entry.
func EducationRecord(e types.Education) Record {
	return Record{
		"school":         e.School,
		"degree":         e.Degree,
		"field":          e.Field,
		"graduationDate": e.GraduationDate,
		"gpa":            e.GPA,
	}
}

// SkillsRecord builds a record from the skills section.
func SkillsRecord(s types.Skills) Record {
	return Record{
		"technical": s.Technical,
		"summary":   s.Summary,
	}
}

// CustomRecord builds the record used for custom.* fields. Most custom
// questions have no profile counterpart and fall back to the fixed default
// answers below; the cover-letter style fields draw on the skills summary.
func CustomRecord(p *types.Profile) Record {
	if p == nil {
		return Record{}
	}
	return Record{
		"summary": p.Skills.Summary,
	}
}

// Default answers for custom questions absent from the profile.
var customDefaults = map[string]string{
	"custom.referralSource":      "Online Job Board",
	"custom.willingToRelocate":   "Yes",
	"custom.workAuthorization":   "Yes",
	"custom.legallyAuthorized":   "Yes",
	"custom.sponsorship":         "No",
	"custom.requiresSponsorship": "No",
}

// Resolve maps a semantic field type to the concrete string value to write,
// consulting the record for this category. An empty result means the field
// should be skipped.
func Resolve(fieldType string, rec Record) string {
	if fieldType == "" {
		return ""
	}

	// Direct lookup by the last dotted segment.
	segments := strings.Split(fieldType, ".")
	fieldName := segments[len(segments)-1]
	if v, ok := rec[fieldName]; ok {
		if formatted := FormatValue(v, fieldType); formatted != "" {
			return formatted
		}
	}

	switch fieldType {
	case "personalInfo.fullName":
		full := strings.TrimSpace(str(rec["firstName"]) + " " + str(rec["lastName"]))
		return FormatValue(full, fieldType)

	case "personalInfo.address":
		addr := strings.TrimSpace(str(rec["city"]) + ", " + str(rec["state"]) + " " + str(rec["zipCode"]))
		if addr == "," {
			return ""
		}
		return FormatValue(addr, fieldType)

	case "workExperience.dateRange":
		start := str(rec["startDate"])
		if start == "" {
			return ""
		}
		if current, _ := rec["current"].(bool); current {
			return start + " - Present"
		}
		return start + " - " + str(rec["endDate"])

	case "custom.coverLetter":
		return FormatValue(rec["summary"], fieldType)
	}

	if def, ok := customDefaults[fieldType]; ok {
		return def
	}

	return ""
}

// FormatValue renders a raw profile value as the string a control expects.
// Strings for date-ish field types become input-format dates, phone-ish
// field types get phone formatting, booleans render Yes/No, slices join
// with commas, and anything non-primitive falls back to JSON.
func FormatValue(value any, fieldType string) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		if isDateField(fieldType) {
			return FormatDateForInput(v)
		}
		if isPhoneField(fieldType) {
			return FormatPhoneNumber(v)
		}
		return v
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, str(item))
		}
		return strings.Join(parts, ", ")
	default:
		raw, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

func isDateField(fieldType string) bool {
	return strings.Contains(fieldType, "Date") || strings.Contains(fieldType, "graduation")
}

func isPhoneField(fieldType string) bool {
	return strings.Contains(fieldType, "phone") || strings.Contains(fieldType, "Phone")
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
