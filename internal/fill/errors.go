package fill

import "fmt"

// WriteError represents a failure to write one value into one control.
type WriteError struct {
	FieldType string
	Message   string
	Cause     error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fill %s: %s: %v", e.FieldType, e.Message, e.Cause)
	}
	return fmt.Sprintf("fill %s: %s", e.FieldType, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
