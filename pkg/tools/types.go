// Package tools provides the Kakao map tool adapters exposed to agents.
package tools

// FieldType is the declared type of a tool input field.
type FieldType int

const (
	TypeString FieldType = iota
	TypeNumber
	TypeInteger
)

// String returns the JSON schema name of the type.
func (t FieldType) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeInteger:
		return "integer"
	default:
		return "string"
	}
}

// Field describes one input field of a tool.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Description string

	// Default is substituted when an optional field is absent. Nil means no default.
	Default any

	// Optional constraints, published in the schema and enforced on input.
	Min       *float64
	Max       *float64
	MinLength int
	Enum      []string
}

// ToolSpec is the immutable descriptor of a tool as shown to the agent.
type ToolSpec struct {
	Name        string
	Description string
	Fields      []Field
}

// Field returns the declared field called name.
func (s ToolSpec) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Required returns the names of the required fields in declaration order.
func (s ToolSpec) Required() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

func bound(v float64) *float64 {
	return &v
}
