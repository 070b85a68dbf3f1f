package resource

import "slices"

// Kind is the storage type of a field.
type Kind int

const (
	KindString Kind = iota + 1 // bounded by MaxLen
	KindText
	KindInt
	KindFloat
	KindDecimal
	KindBool
	KindTime
	KindJSON
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindText:
		return "text"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindBool:
		return "boolean"
	case KindTime:
		return "timestamp"
	case KindJSON:
		return "json"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Decimal columns are NUMERIC(10,2).
const (
	DecimalPrecision = 10
	DecimalScale     = 2
)

// Field describes one persisted column.
type Field struct {
	Name   string
	Kind   Kind
	MaxLen int
	Values []string // closed set for KindEnum

	// References makes the field a foreign key to another schema's id.
	References *Schema
	// Cascade deletes this row when the referenced row is deleted.
	Cascade bool

	NotNull   bool
	Default   any
	Sensitive bool
	Email     bool

	// Managed fields are owned by the server. Create payloads cannot set
	// them and they take their Default.
	Managed bool

	Unique bool
	// ConflictMessage is returned when a create hits the unique constraint.
	ConflictMessage string
	// UpdateConflictMessage overrides ConflictMessage on update.
	UpdateConflictMessage string
}

func (f Field) conflictMessage(updating bool) string {
	if updating && f.UpdateConflictMessage != "" {
		return f.UpdateConflictMessage
	}
	if f.ConflictMessage != "" {
		return f.ConflictMessage
	}
	return f.Name + " already exists"
}

// Derivation turns a write-only input into a stored column, such as a
// plain password into its hash.
type Derivation struct {
	Target string
	Apply  func(string) (string, error)
}

// Schema parametrizes the generic operations for one entity type.
type Schema struct {
	// Name is the display name used in messages, e.g. "Wallet Invitation".
	Name  string
	Table string

	Fields []Field

	// Required must be present and non-empty on create. It may name
	// derived inputs.
	Required []string
	// Updatable lists the payload keys merged on update. Anything else
	// in an update payload is ignored.
	Updatable []string

	Derived map[string]Derivation

	// ActorField is filled from the acting user when a create payload
	// leaves it out.
	ActorField string

	HasUpdatedAt bool
}

// Field returns the named field.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Columns returns the stored field names in declaration order.
func (s *Schema) Columns() []string {
	cols := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

// ForeignKeys returns the fields that reference another schema.
func (s *Schema) ForeignKeys() []Field {
	var fks []Field
	for _, f := range s.Fields {
		if f.References != nil {
			fks = append(fks, f)
		}
	}
	return fks
}

func (s *Schema) isRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

func (s *Schema) isUpdatable(name string) bool {
	return slices.Contains(s.Updatable, name)
}

// DeletedMessage is the confirmation returned after a delete.
func (s *Schema) DeletedMessage() string {
	return s.Name + " deleted successfully"
}

func (s *Schema) notFound() error {
	return &NotFoundError{Entity: s.Name}
}

// Enum builds a closed-set field.
func Enum(name string, values ...string) Field {
	return Field{Name: name, Kind: KindEnum, Values: values}
}

// ForeignKey builds a required reference to another schema.
func ForeignKey(name string, ref *Schema) Field {
	return Field{Name: name, Kind: KindInt, References: ref, NotNull: true}
}

// String builds a bounded string field.
func String(name string, maxLen int) Field {
	return Field{Name: name, Kind: KindString, MaxLen: maxLen}
}

// JSON builds an opaque structured field.
func JSON(name string) Field {
	return Field{Name: name, Kind: KindJSON}
}

// NonNull marks the field NOT NULL.
func (f Field) NonNull() Field {
	f.NotNull = true
	return f
}

// WithDefault sets the value applied when a create payload omits the field.
func (f Field) WithDefault(v any) Field {
	f.Default = v
	return f
}

// OnDeleteCascade removes rows holding this key when the referenced row
// is deleted.
func (f Field) OnDeleteCascade() Field {
	f.Cascade = true
	return f
}
