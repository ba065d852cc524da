package agent

import "fmt"

// Error codes surfaced to callers. Each maps to a user-actionable template
// in the server's error payloads.
const (
	CodeNoProfile            = "NO_PROFILE"
	CodeProfileLoadFailed    = "PROFILE_LOAD_FAILED"
	CodeProfileSaveFailed    = "PROFILE_SAVE_FAILED"
	CodeProfileInvalid       = "PROFILE_INVALID"
	CodeNoFormsDetected      = "NO_FORMS_DETECTED"
	CodeFormDetectionFailed  = "FORM_DETECTION_FAILED"
	CodePageNotLoaded        = "CONTENT_SCRIPT_NOT_LOADED"
	CodeFillFailed           = "FILL_FAILED"
	CodeFillPartial          = "FILL_PARTIAL"
	CodeDynamicSectionFailed = "DYNAMIC_SECTION_FAILED"
	CodeUnknown              = "UNKNOWN_ERROR"
)

// Error is an agent failure with a stable code.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CodeOf extracts the error code, falling back to UNKNOWN_ERROR.
func CodeOf(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return CodeUnknown
}
