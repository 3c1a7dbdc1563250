package projector

import (
	"fmt"
	"strings"
)

// InvalidArgumentError is returned when a field that the display does not
// know at all is written into a build.
type InvalidArgumentError struct {
	Field       string
	Suggestions []string
}

func (e *InvalidArgumentError) Error() string {
	msg := fmt.Sprintf("the field %q was not expected", e.Field)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %q?)", strings.Join(e.Suggestions, `", "`))
	}

	return msg
}
