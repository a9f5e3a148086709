package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
	"github.com/xeipuuv/gojsonschema"
)

// Validator turns loosely typed agent arguments into an Input for one tool.
type Validator struct {
	spec   ToolSpec
	schema *gojsonschema.Schema
}

// NewValidator compiles the JSON schema of spec.
func NewValidator(spec ToolSpec) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(spec.JSONSchema()))
	if err != nil {
		return nil, fmt.Errorf("compile schema for %s: %w", spec.Name, err)
	}
	return &Validator{spec: spec, schema: schema}, nil
}

// Validate checks raw against spec. See Validator.Validate.
func Validate(spec ToolSpec, raw map[string]any) (Input, error) {
	v, err := NewValidator(spec)
	if err != nil {
		return Input{}, err
	}
	return v.Validate(raw)
}

// Validate coerces every declared field of raw to its declared type,
// applies defaults, and enforces the schema constraints. Undeclared keys
// are ignored and a JSON null counts as absent.
func (v *Validator) Validate(raw map[string]any) (Input, error) {
	values := make(map[string]Value, len(v.spec.Fields))
	for _, f := range v.spec.Fields {
		rv, ok := raw[f.Name]
		if !ok || rv == nil {
			if f.Required {
				return Input{}, &ValidationError{Tool: v.spec.Name, Field: f.Name, Kind: MissingField}
			}
			if f.Default == nil {
				continue
			}
			rv = f.Default
		}

		val, err := coerce(f.Type, rv)
		if err != nil {
			return Input{}, &ValidationError{Tool: v.spec.Name, Field: f.Name, Kind: InvalidType, Detail: err.Error()}
		}
		values[f.Name] = val
	}

	in := Input{values: values}
	if err := v.check(in); err != nil {
		return Input{}, err
	}
	return in, nil
}

// check enforces ranges, enums and lengths on the typed input.
func (v *Validator) check(in Input) error {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(in.Map()))
	if err != nil {
		return fmt.Errorf("validate %s input: %w", v.spec.Name, err)
	}
	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]
	return &ValidationError{
		Tool:   v.spec.Name,
		Field:  first.Field(),
		Kind:   ConstraintViolation,
		Detail: first.Description(),
	}
}

func coerce(t FieldType, raw any) (Value, error) {
	switch t {
	case TypeNumber, TypeInteger:
		n, err := toFinite(raw)
		if err != nil {
			return Value{}, err
		}
		if t == TypeNumber {
			return NumberValue(n), nil
		}
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return Value{}, fmt.Errorf("expected a whole number, got %v", raw)
		}
		return IntegerValue(int64(n)), nil

	default:
		switch raw.(type) {
		case map[string]any, []any:
			return Value{}, fmt.Errorf("expected a string, got %T", raw)
		}
		s, err := cast.ToStringE(raw)
		if err != nil {
			return Value{}, fmt.Errorf("expected a string, got %T", raw)
		}
		return StringValue(s), nil
	}
}

// toFinite parses raw as a finite number. Numeric strings are accepted;
// booleans are not.
func toFinite(raw any) (float64, error) {
	switch r := raw.(type) {
	case bool:
		return 0, fmt.Errorf("expected a number, got boolean %v", r)
	case string:
		raw = strings.TrimSpace(r)
	case json.Number:
		raw = r.String()
	}

	n, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", fmt.Sprint(raw))
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("expected a finite number, got %v", raw)
	}
	return n, nil
}
