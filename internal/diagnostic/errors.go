package diagnostic

import "errors"

// ConfigurationError reports a structurally invalid region catalog,
// assignment map or display record. It is never retried and the operation
// that returned it made no change.
type ConfigurationError struct {
	Diagnostics Diagnostics
}

// NewConfigurationError wraps the error findings of d. It returns nil when d
// holds no errors.
func NewConfigurationError(d *Diagnostics) error {
	if d == nil || !d.HasErrors() {
		return nil
	}

	return &ConfigurationError{Diagnostics: *d}
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Diagnostics.Err().Error()
}

// HasCode reports whether one of the error findings carries code.
func (e *ConfigurationError) HasCode(code string) bool {
	for _, d := range e.Diagnostics.Errors {
		if d.Code == code {
			return true
		}
	}

	return false
}

// IsConfigurationError reports whether err wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
