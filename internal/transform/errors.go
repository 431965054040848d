package transform

import "fmt"

// NegativeValueError reports a value with a leading minus sign that was
// about to be zero-padded. It is fatal to the affected file's plan only;
// the batch continues and the driver surfaces it as a per-file warning.
type NegativeValueError struct {
	Field string
	Value string
}

func (e *NegativeValueError) Error() string {
	return fmt.Sprintf("negative value %q for field %q", e.Value, e.Field)
}
