package booking

import "fmt"

// CapacityError reports a start time that cannot fit the selected duration.
// It surfaces as the wizard's transient, auto-dismissing message.
type CapacityError struct {
	Code    string
	Message string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewCapacityError(msg string) error {
	return &CapacityError{
		Code:    "capacityError",
		Message: msg,
	}
}
