package dom

import "fmt"

type Type int

// The declaration order doubles as the index order of the type
// precedence table used for cross-type comparison, so it must not be
// rearranged.
const (
	NullType Type = iota
	DecimalType
	IntType
	UintType
	DoubleType
	StringType
	ObjectType
	ArrayType
	BoolType
	DateType
	TimeType
	DateTimeType
	TimestampType
	OpaqueType
	ErrorType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:      "Null",
		DecimalType:   "Decimal",
		IntType:       "Int",
		UintType:      "Uint",
		DoubleType:    "Double",
		StringType:    "String",
		ObjectType:    "Object",
		ArrayType:     "Array",
		BoolType:      "Bool",
		DateType:      "Date",
		TimeType:      "Time",
		DateTimeType:  "DateTime",
		TimestampType: "Timestamp",
		OpaqueType:    "Opaque",
		ErrorType:     "Error",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":      NullType,
		"Decimal":   DecimalType,
		"Int":       IntType,
		"Uint":      UintType,
		"Double":    DoubleType,
		"String":    StringType,
		"Object":    ObjectType,
		"Array":     ArrayType,
		"Bool":      BoolType,
		"Date":      DateType,
		"Time":      TimeType,
		"DateTime":  DateTimeType,
		"Timestamp": TimestampType,
		"Opaque":    OpaqueType,
		"Error":     ErrorType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		DecimalType,
		IntType,
		UintType,
		DoubleType,
		StringType,
		ObjectType,
		ArrayType,
		BoolType,
		DateType,
		TimeType,
		DateTimeType,
		TimestampType,
		OpaqueType,
		ErrorType,
	}
}

func (t Type) IsContainer() bool {
	return t == ObjectType || t == ArrayType
}

func (t Type) IsNumber() bool {
	switch t {
	case DecimalType, IntType, UintType, DoubleType:
		return true
	}
	return false
}

func (t Type) IsTemporal() bool {
	switch t {
	case DateType, TimeType, DateTimeType, TimestampType:
		return true
	}
	return false
}

// FieldType identifies the column type an opaque payload was encoded
// from. The numeric values follow the wire protocol's type codes.
type FieldType int

const (
	FieldTypeDecimal    FieldType = 0
	FieldTypeTiny       FieldType = 1
	FieldTypeShort      FieldType = 2
	FieldTypeLong       FieldType = 3
	FieldTypeFloat      FieldType = 4
	FieldTypeDouble     FieldType = 5
	FieldTypeNull       FieldType = 6
	FieldTypeTimestamp  FieldType = 7
	FieldTypeLongLong   FieldType = 8
	FieldTypeInt24      FieldType = 9
	FieldTypeDate       FieldType = 10
	FieldTypeTime       FieldType = 11
	FieldTypeDateTime   FieldType = 12
	FieldTypeYear       FieldType = 13
	FieldTypeVarchar    FieldType = 15
	FieldTypeBit        FieldType = 16
	FieldTypeNewDecimal FieldType = 246
	FieldTypeEnum       FieldType = 247
	FieldTypeSet        FieldType = 248
	FieldTypeTinyBlob   FieldType = 249
	FieldTypeMedBlob    FieldType = 250
	FieldTypeLongBlob   FieldType = 251
	FieldTypeBlob       FieldType = 252
	FieldTypeVarString  FieldType = 253
	FieldTypeString     FieldType = 254
	FieldTypeGeometry   FieldType = 255
)
