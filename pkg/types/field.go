package types

// Field names a product attribute addressable from a condition.
type Field string

// Condition fields. FieldSpecial resolves per kind: Belt metal, Cake height,
// Cup volume.
const (
	FieldSupplyDate Field = "supplyDate"
	FieldName       Field = "name"
	FieldAmount     Field = "amount"
	FieldSpecial    Field = "special"
)

// DateLayout is the dd.mm.yyyy layout of product files and ADD directives.
const DateLayout = "02.01.2006"

// DateTextLayout is the textual form of a supply date compared by equality
// conditions.
const DateTextLayout = "2006-01-02 15:04:05"

// validFields is the set of recognized field names.
var validFields = map[Field]bool{
	FieldSupplyDate: true,
	FieldName:       true,
	FieldAmount:     true,
	FieldSpecial:    true,
}

// ParseField resolves a field name by exact match.
func ParseField(s string) (Field, bool) {
	f := Field(s)
	return f, validFields[f]
}

// Ordered reports whether range and inequality conditions accept the field.
func (f Field) Ordered() bool {
	return f == FieldSupplyDate || f == FieldAmount || f == FieldSpecial
}

// Dated reports whether the field's literals are dates rather than integers.
func (f Field) Dated() bool {
	return f == FieldSupplyDate
}
