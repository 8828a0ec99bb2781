package domain

import "fmt"

// SchemaError signals that a required column or field is absent from an
// input dataset. It is always surfaced to the caller, never defaulted away.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}

// ConfigError signals that an unsupported enumerated option was requested,
// e.g. an unknown fill policy or forecast method. It is raised at the call
// site, not deferred to compute time.
type ConfigError struct {
	Option string
	Value  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unsupported %s %q", e.Option, e.Value)
}
