package holidays

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFixedDate is wrapped by ConfigurationError for malformed MM-DD entries
	ErrInvalidFixedDate = errors.New("fixed date holidays must be in the format MM-DD")

	// ErrInvalidFloatingRule is wrapped by ConfigurationError for bad floating rules
	ErrInvalidFloatingRule = errors.New("invalid floating date holiday")
)

// ConfigurationError is returned by NewRegistry when the supplied
// configuration cannot be merged into a registry.
type ConfigurationError struct {
	Field string // fixed_date_holidays or floating_date_holidays
	Key   string // month key, floating rules only
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("invalid %s[%s] %s: %v", e.Field, e.Key, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s entry %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
