package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Type defines the contract for attribute validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

type stringType struct{}

func (stringType) Name() string { return "string" }

func (stringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

type boolType struct{}

func (boolType) Name() string { return "bool" }

func (boolType) Validate(value any) error {
	switch v := value.(type) {
	case bool:
		return nil
	case string:
		if _, err := strconv.ParseBool(v); err != nil {
			return fmt.Errorf("expected bool, got %q", v)
		}
		return nil
	default:
		return fmt.Errorf("expected bool, got %T", value)
	}
}

// floatRange validates numbers within [min, max].
type floatRange struct {
	min, max float64
}

func (t floatRange) Name() string {
	return fmt.Sprintf("float[%g..%g]", t.min, t.max)
}

func (t floatRange) Validate(value any) error {
	f, err := toFloat(value)
	if err != nil {
		return err
	}
	if f < t.min || f > t.max {
		return fmt.Errorf("must be between %g and %g, got %g", t.min, t.max, f)
	}
	return nil
}

type positiveInt struct{}

func (positiveInt) Name() string { return "positive_int" }

func (positiveInt) Validate(value any) error {
	f, err := toFloat(value)
	if err != nil {
		return err
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("expected integer, got %g", f)
	}
	if f <= 0 {
		return fmt.Errorf("must be positive, got %g", f)
	}
	if f >= math.MaxInt {
		return fmt.Errorf("must be at most %d, got %g", math.MaxInt, f)
	}
	return nil
}

// enumType accepts one of a fixed set of strings. The empty string means "unset".
type enumType struct {
	values []string
}

func (t enumType) Name() string {
	return "enum(" + strings.Join(t.values, "|") + ")"
}

func (t enumType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if s == "" || slices.Contains(t.values, s) {
		return nil
	}
	return fmt.Errorf("must be one of %s, got %q", strings.Join(t.values, ", "), s)
}

type customType struct {
	name     string
	validate func(any) error
}

func (t customType) Name() string { return t.name }

func (t customType) Validate(value any) error { return t.validate(value) }

// String creates a string type validator.
func String() Type { return stringType{} }

// Bool creates a boolean validator. "true"/"false" strings are accepted.
func Bool() Type { return boolType{} }

// FloatRange creates a numeric validator bounded by [min, max].
func FloatRange(min, max float64) Type { return floatRange{min: min, max: max} }

// PositiveInt creates a validator for whole numbers greater than zero.
func PositiveInt() Type { return positiveInt{} }

// Enum creates a validator accepting only the given strings (or the empty string).
func Enum(values ...string) Type { return enumType{values: values} }

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return customType{name: name, validate: validate}
}

// toFloat converts a numeric attribute to float64. NaN and infinities are rejected.
func toFloat(value any) (float64, error) {
	f, err := parseFloat(value)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected finite number, got %g", f)
	}
	return f, nil
}

func parseFloat(value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("expected number, got %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}
