package schemas

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CheckProfileShape runs the quick structural checks that catch the common
// hand-edited-JSON mistakes, returning the first problem found as a plain
// message, or "" when the shape is sound. It is intentionally shallower than
// schema validation; callers show its message directly to the user.
func CheckProfileShape(content []byte) string {
	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		return "Profile data must be an object"
	}

	root, ok := data.(map[string]any)
	if !ok {
		return "Profile data must be an object"
	}

	if v, present := root["personalInfo"]; present && v != nil {
		if _, ok := v.(map[string]any); !ok {
			return "personalInfo must be an object"
		}
	}

	if v, present := root["workExperience"]; present && v != nil {
		entries, ok := v.([]any)
		if !ok {
			return "workExperience must be an array"
		}
		for i, entry := range entries {
			if _, ok := entry.(map[string]any); !ok {
				return fmt.Sprintf("workExperience[%d] must be an object", i)
			}
		}
	}

	if v, present := root["education"]; present && v != nil {
		entries, ok := v.([]any)
		if !ok {
			return "education must be an array"
		}
		for i, entry := range entries {
			if _, ok := entry.(map[string]any); !ok {
				return fmt.Sprintf("education[%d] must be an object", i)
			}
		}
	}

	if v, present := root["skills"]; present && v != nil {
		skills, ok := v.(map[string]any)
		if !ok {
			return "skills must be an object"
		}
		if t, present := skills["technical"]; present && t != nil {
			if _, ok := t.([]any); !ok {
				return "skills.technical must be an array"
			}
		}
	}

	return ""
}

// CheckFormats validates the personal-info values with well-known formats.
// Empty values pass; the profile is allowed to be sparse.
func CheckFormats(personalInfo map[string]string) error {
	checks := []struct {
		key string
		tag string
	}{
		{"email", "email"},
		{"linkedin", "url"},
		{"website", "url"},
		{"github", "url"},
	}

	for _, c := range checks {
		value := personalInfo[c.key]
		if value == "" {
			continue
		}
		if err := validate.Var(value, c.tag); err != nil {
			return &ValidationError{Errors: []FieldError{{
				Field:   "personalInfo." + c.key,
				Message: fmt.Sprintf("%q is not a valid %s", value, c.tag),
			}}}
		}
	}
	return nil
}
