package platform

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound is returned when the requested input source is not among
// the user's enabled input sources.
var ErrSourceNotFound = errors.New("input source not found")

// OSStatusError is returned when a Text Input Source Services call fails
// with a non-zero OSStatus code.
type OSStatusError struct {
	Call   string
	Status int32
}

func (e *OSStatusError) Error() string {
	return fmt.Sprintf("%s failed with OSStatus %d", e.Call, e.Status)
}
