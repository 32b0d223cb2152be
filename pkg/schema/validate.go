package schema

import (
	"maps"
	"slices"
)

// Schema is a map of attribute names to their expected types.
type Schema map[string]Type

// Validate checks every attribute of data that the schema knows about.
// Absent and null attributes are skipped; attributes unknown to the schema are ignored.
// Failures are reported in attribute-name order.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	var errs []error
	for _, key := range slices.Sorted(maps.Keys(schema)) {
		value, exists := data[key]
		if !exists || value == nil {
			continue
		}
		if err := schema[key].Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    key,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
