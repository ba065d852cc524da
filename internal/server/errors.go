package server

import (
	"net/http"

	"github.com/jonathan/job-autofill/internal/agent"
)

// errorTemplate is the user-facing rendering of one error code.
type errorTemplate struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// errorTemplates maps agent error codes to user-actionable payloads.
var errorTemplates = map[string]errorTemplate{
	agent.CodeNoProfile: {
		Title:   "No Profile Found",
		Message: "Please save your profile before filling forms.",
		Action:  "Save Profile",
	},
	agent.CodeProfileLoadFailed: {
		Title:   "Failed to Load Profile",
		Message: "Could not load your profile. Please try again.",
		Action:  "Retry",
	},
	agent.CodeProfileSaveFailed: {
		Title:   "Failed to Save Profile",
		Message: "Could not save your profile. Please check your data and try again.",
		Action:  "Retry",
	},
	agent.CodeProfileInvalid: {
		Title:   "Invalid Profile",
		Message: "The profile data is not valid. Please correct it and try again.",
	},
	agent.CodeNoFormsDetected: {
		Title:   "No Forms Detected",
		Message: "No fillable forms found on this page. Try navigating to a job application page.",
	},
	agent.CodeFormDetectionFailed: {
		Title:   "Form Detection Failed",
		Message: "Could not analyze forms on this page. The page may not be compatible.",
	},
	agent.CodePageNotLoaded: {
		Title:   "Page Not Ready",
		Message: "Please refresh the page and try again.",
		Action:  "Refresh Page",
	},
	agent.CodeFillFailed: {
		Title:   "Form Fill Failed",
		Message: "Could not fill the form. Some fields may have been filled successfully.",
		Action:  "Try Again",
	},
	agent.CodeFillPartial: {
		Title:   "Partially Filled",
		Message: "Some fields could not be filled. Please review and complete the remaining fields manually.",
	},
	agent.CodeDynamicSectionFailed: {
		Title:   "Dynamic Section Failed",
		Message: "Could not add additional entries. Please add them manually.",
	},
	agent.CodeUnknown: {
		Title:   "Something Went Wrong",
		Message: "An unexpected error occurred. Please try again.",
		Action:  "Retry",
	},
}

// statusFor maps an error code to its HTTP status.
func statusFor(code string) int {
	switch code {
	case agent.CodeProfileInvalid:
		return http.StatusBadRequest
	case agent.CodeNoProfile, agent.CodeNoFormsDetected:
		return http.StatusNotFound
	case agent.CodePageNotLoaded:
		return http.StatusServiceUnavailable
	case agent.CodeFormDetectionFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorPayload is the body of every error response.
type errorPayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// agentError renders an agent failure with its code's template.
func (s *Server) agentError(w http.ResponseWriter, err error) {
	code := agent.CodeOf(err)
	template, ok := errorTemplates[code]
	if !ok {
		template = errorTemplates[agent.CodeUnknown]
	}
	s.jsonResponse(w, statusFor(code), errorPayload{
		Error:   code,
		Title:   template.Title,
		Message: template.Message,
		Action:  template.Action,
		Detail:  err.Error(),
	})
}

// badRequest renders a plain request-shape error.
func (s *Server) badRequest(w http.ResponseWriter, message string) {
	s.jsonResponse(w, http.StatusBadRequest, errorPayload{
		Error:   agent.CodeUnknown,
		Title:   "Bad Request",
		Message: message,
	})
}
