package core

import "fmt"

// VariableDataType is a closed sum type over the data types an IPUMS
// variable can carry on disk.
type VariableDataType struct {
	kind     varKind
	width    int // Fixed only
	decimals int // Fixed only
}

type varKind int

const (
	kindInteger varKind = iota
	kindFloat
	kindString
	kindFixed
)

func IntegerType() VariableDataType { return VariableDataType{kind: kindInteger} }
func FloatType() VariableDataType   { return VariableDataType{kind: kindFloat} }
func StringType() VariableDataType  { return VariableDataType{kind: kindString} }
func FixedType(width, decimals int) VariableDataType {
	return VariableDataType{kind: kindFixed, width: width, decimals: decimals}
}

func (t VariableDataType) IsInteger() bool { return t.kind == kindInteger }
func (t VariableDataType) IsFloat() bool   { return t.kind == kindFloat }
func (t VariableDataType) IsString() bool  { return t.kind == kindString }
func (t VariableDataType) IsFixed() bool   { return t.kind == kindFixed }
func (t VariableDataType) FixedWidth() (width, decimals int) { return t.width, t.decimals }

// String renders the display form used by TableFormatter's JSON output
// (data_type: "Integer" | "Float" | "String" | "Fixed(w,d)").
func (t VariableDataType) String() string {
	switch t.kind {
	case kindInteger:
		return "Integer"
	case kindFloat:
		return "Float"
	case kindString:
		return "String"
	case kindFixed:
		return fmt.Sprintf("Fixed(%d,%d)", t.width, t.decimals)
	default:
		return "Unknown"
	}
}

// ParseVariableDataType maps a layout file's single-character type code
// (as produced by LayoutParser) to a VariableDataType. Recognized codes:
// "I"/"N" integer, "F" float, "A"/"S" string, "D" fixed (with the
// caller's implied decimals; the fixed width is left 0).
func ParseVariableDataType(code string, impliedDecimals int) (VariableDataType, error) {
	switch code {
	case "I", "N":
		return IntegerType(), nil
	case "F":
		return FloatType(), nil
	case "A", "S":
		return StringType(), nil
	case "D":
		return FixedType(0, impliedDecimals), nil
	default:
		return VariableDataType{}, Msg("unrecognized variable data type code %q", code)
	}
}

// ColumnFormatting is the (start column, width) hint a variable carries
// when it was discovered via LayoutParser.
type ColumnFormatting struct {
	Start int
	Width int
}

// IpumsVariable is one tabulatable variable, global to a product (its name
// is the same across every dataset that carries it).
type IpumsVariable struct {
	Name           string
	ID             int
	DataType       VariableDataType
	Formatting     *ColumnFormatting
	GeneralWidth   *int // width of the general-recode prefix, if any
	Categories     map[int]string
	RecordTypeCode *byte // which record type this variable lives on
}

// Clone returns a deep-enough copy for request-scoped ownership.
func (v IpumsVariable) Clone() IpumsVariable {
	if v.Formatting != nil {
		f := *v.Formatting
		v.Formatting = &f
	}
	if v.GeneralWidth != nil {
		w := *v.GeneralWidth
		v.GeneralWidth = &w
	}
	if v.RecordTypeCode != nil {
		c := *v.RecordTypeCode
		v.RecordTypeCode = &c
	}
	if v.Categories != nil {
		cats := make(map[int]string, len(v.Categories))
		for k, val := range v.Categories {
			cats[k] = val
		}
		v.Categories = cats
	}
	return v
}
