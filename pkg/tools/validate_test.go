package tools

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSpec = ToolSpec{
	Name: "test_tool",
	Fields: []Field{
		{Name: "query", Type: TypeString, Required: true, MinLength: 1},
		{Name: "latitude", Type: TypeNumber, Min: bound(-90), Max: bound(90)},
		{Name: "radius", Type: TypeInteger, Default: 1000, Min: bound(0), Max: bound(20000)},
		{Name: "system", Type: TypeString, Enum: []string{"WGS84", "WTM"}},
	},
}

func validationKind(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr
}

func TestValidateMissingRequired(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{name: "absent", raw: map[string]any{"latitude": 37.5}},
		{name: "null", raw: map[string]any{"query": nil}},
		{name: "nil map", raw: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(testSpec, tt.raw)
			verr := validationKind(t, err)
			assert.Equal(t, MissingField, verr.Kind)
			assert.Equal(t, "query", verr.Field)
			assert.Equal(t, "test_tool", verr.Tool)
		})
	}
}

func TestValidateCoercion(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		field   string
		want    string
		wantTyp FieldType
	}{
		{name: "float", raw: map[string]any{"query": "x", "latitude": 37.51}, field: "latitude", want: "37.51", wantTyp: TypeNumber},
		{name: "numeric string", raw: map[string]any{"query": "x", "latitude": " 37.51 "}, field: "latitude", want: "37.51", wantTyp: TypeNumber},
		{name: "json number", raw: map[string]any{"query": "x", "latitude": json.Number("37.51")}, field: "latitude", want: "37.51", wantTyp: TypeNumber},
		{name: "int for number", raw: map[string]any{"query": "x", "latitude": 37}, field: "latitude", want: "37", wantTyp: TypeNumber},
		{name: "integer from float", raw: map[string]any{"query": "x", "radius": 500.0}, field: "radius", want: "500", wantTyp: TypeInteger},
		{name: "integer from string", raw: map[string]any{"query": "x", "radius": "750"}, field: "radius", want: "750", wantTyp: TypeInteger},
		{name: "string as-is", raw: map[string]any{"query": "  coex  "}, field: "query", want: "  coex  ", wantTyp: TypeString},
		{name: "number as string", raw: map[string]any{"query": 159}, field: "query", want: "159", wantTyp: TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Validate(testSpec, tt.raw)
			require.NoError(t, err)

			v, ok := in.Get(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.want, v.String())
			assert.Equal(t, tt.wantTyp, v.Type())
		})
	}
}

func TestValidateInvalidType(t *testing.T) {
	tests := []struct {
		name  string
		raw   map[string]any
		field string
	}{
		{name: "non numeric string", raw: map[string]any{"query": "x", "latitude": "north"}, field: "latitude"},
		{name: "empty string number", raw: map[string]any{"query": "x", "latitude": ""}, field: "latitude"},
		{name: "boolean number", raw: map[string]any{"query": "x", "latitude": true}, field: "latitude"},
		{name: "NaN", raw: map[string]any{"query": "x", "latitude": "NaN"}, field: "latitude"},
		{name: "infinity", raw: map[string]any{"query": "x", "latitude": "+Inf"}, field: "latitude"},
		{name: "fractional integer", raw: map[string]any{"query": "x", "radius": 10.5}, field: "radius"},
		{name: "object string", raw: map[string]any{"query": map[string]any{"a": 1}}, field: "query"},
		{name: "array string", raw: map[string]any{"query": []any{"a"}}, field: "query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(testSpec, tt.raw)
			verr := validationKind(t, err)
			assert.Equal(t, InvalidType, verr.Kind)
			assert.Equal(t, tt.field, verr.Field)
			assert.NotEmpty(t, verr.Detail)
		})
	}
}

func TestValidateConstraints(t *testing.T) {
	tests := []struct {
		name  string
		raw   map[string]any
		field string
	}{
		{name: "latitude above range", raw: map[string]any{"query": "x", "latitude": 91}, field: "latitude"},
		{name: "radius above range", raw: map[string]any{"query": "x", "radius": 20001}, field: "radius"},
		{name: "negative radius", raw: map[string]any{"query": "x", "radius": -1}, field: "radius"},
		{name: "empty query", raw: map[string]any{"query": ""}, field: "query"},
		{name: "unknown enum", raw: map[string]any{"query": "x", "system": "EPSG:4326"}, field: "system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(testSpec, tt.raw)
			verr := validationKind(t, err)
			assert.Equal(t, ConstraintViolation, verr.Kind)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateDefaultsAndUnknownFields(t *testing.T) {
	in, err := Validate(testSpec, map[string]any{
		"query":   "coex",
		"unknown": "ignored",
		"system":  nil,
	})
	require.NoError(t, err)

	radius, ok := in.Get("radius")
	require.True(t, ok, "default radius should be applied")
	assert.Equal(t, "1000", radius.String())
	assert.Equal(t, TypeInteger, radius.Type())

	_, ok = in.Get("latitude")
	assert.False(t, ok, "optional field without default stays unset")
	_, ok = in.Get("system")
	assert.False(t, ok, "null optional field stays unset")
	_, ok = in.Get("unknown")
	assert.False(t, ok, "undeclared fields are dropped")

	assert.Equal(t, 2, in.Len())
	assert.Equal(t, map[string]any{"query": "coex", "radius": int64(1000)}, in.Map())
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	raw := map[string]any{"query": "coex", "latitude": "37.5"}
	_, err := Validate(testSpec, raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"query": "coex", "latitude": "37.5"}, raw)
}
