package attributes

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationMismatch is the sentinel matched by every *ConfigurationMismatchError.
	ErrConfigurationMismatch = errors.New("attributes: configuration mismatch")

	// ErrUnknownModelType is returned by Registry lookups for unregistered names.
	ErrUnknownModelType = errors.New("attributes: unknown model type")
)

// ConfigurationMismatchError reports a model type or group declaration that
// cannot be resolved. It is raised when the type is built, never per call.
type ConfigurationMismatchError struct {
	Model  string
	Group  string
	Reason string
}

func (e *ConfigurationMismatchError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("attributes: model %q: %s", e.Model, e.Reason)
	}
	return fmt.Sprintf("attributes: model %q group %q: %s", e.Model, e.Group, e.Reason)
}

// Is lets errors.Is(err, ErrConfigurationMismatch) match.
func (e *ConfigurationMismatchError) Is(target error) bool {
	return target == ErrConfigurationMismatch
}

func mismatch(model, group, format string, args ...any) error {
	return &ConfigurationMismatchError{Model: model, Group: group, Reason: fmt.Sprintf(format, args...)}
}
