// Package filter models structured property filters as a closed set of
// predicates over document store field paths. Absent request fields
// contribute no predicate; present ones are combined with logical AND.
package filter

// Document store field paths targeted by the predicates.
const (
	FieldListedPrice  = "property_details.listed_price"
	FieldBedrooms     = "property_details.bedrooms"
	FieldBathrooms    = "property_details.bathrooms"
	FieldPropertyType = "property_details.property_type"
	FieldAddress      = "property_details.address"
	FieldMLSGenuine   = "property_details.mls_is_genuine"
)

type kind int

const (
	kindRange kind = iota + 1
	kindEquals
	kindContains
	kindBool
)

// Condition is a single predicate on one field path.
type Condition struct {
	field    string
	kind     kind
	min, max *float64
	equals   string
	substr   string
	boolVal  bool
}

// NewRange creates a numeric range predicate. Either bound may be nil.
func NewRange(field string, min, max *float64) Condition {
	return Condition{field: field, kind: kindRange, min: min, max: max}
}

// NewEquals creates an exact string equality predicate. No numeric
// coercion happens anywhere downstream: "3" does not match 3.
func NewEquals(field, value string) Condition {
	return Condition{field: field, kind: kindEquals, equals: value}
}

// NewContains creates a case-insensitive substring predicate. The value is
// matched literally; pattern metacharacters are escaped at the store boundary.
func NewContains(field, substr string) Condition {
	return Condition{field: field, kind: kindContains, substr: substr}
}

// NewBool creates a boolean equality predicate.
func NewBool(field string, v bool) Condition {
	return Condition{field: field, kind: kindBool, boolVal: v}
}

// Field returns the document store field path.
func (c Condition) Field() string { return c.field }

// IsRange reports whether this is a numeric range predicate.
func (c Condition) IsRange() bool { return c.kind == kindRange }

// IsEquals reports whether this is an exact equality predicate.
func (c Condition) IsEquals() bool { return c.kind == kindEquals }

// IsContains reports whether this is a substring predicate.
func (c Condition) IsContains() bool { return c.kind == kindContains }

// IsBool reports whether this is a boolean equality predicate.
func (c Condition) IsBool() bool { return c.kind == kindBool }

// Min returns the inclusive lower bound of a range predicate.
func (c Condition) Min() *float64 { return c.min }

// Max returns the inclusive upper bound of a range predicate.
func (c Condition) Max() *float64 { return c.max }

// Equals returns the exact match value.
func (c Condition) Equals() string { return c.equals }

// Contains returns the substring to match.
func (c Condition) Contains() string { return c.substr }

// Bool returns the boolean value to match.
func (c Condition) Bool() bool { return c.boolVal }

// Expression is an immutable AND-combination of conditions.
type Expression struct {
	conditions []Condition
}

// Conditions returns the predicates in build order.
func (e Expression) Conditions() []Condition { return e.conditions }

// Len returns the number of predicates.
func (e Expression) Len() int { return len(e.conditions) }

// IsEmpty reports whether the expression has no predicates.
func (e Expression) IsEmpty() bool { return len(e.conditions) == 0 }

// Params are the optional structured search filters. A nil field means
// "no constraint". Bedrooms and bathrooms are free-form strings compared
// verbatim against the stored values.
type Params struct {
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     *string
	Bathrooms    *string
	PropertyType *string
	Location     *string
	MLSGenuine   *bool
}

// Build maps each present param to its predicate. Price bounds share one
// range predicate. An explicit false MLSGenuine still produces a predicate.
func Build(p Params) Expression {
	var conds []Condition

	if p.MinPrice != nil || p.MaxPrice != nil {
		conds = append(conds, NewRange(FieldListedPrice, p.MinPrice, p.MaxPrice))
	}
	if p.Bedrooms != nil {
		conds = append(conds, NewEquals(FieldBedrooms, *p.Bedrooms))
	}
	if p.Bathrooms != nil {
		conds = append(conds, NewEquals(FieldBathrooms, *p.Bathrooms))
	}
	if p.PropertyType != nil {
		conds = append(conds, NewContains(FieldPropertyType, *p.PropertyType))
	}
	if p.Location != nil {
		conds = append(conds, NewContains(FieldAddress, *p.Location))
	}
	if p.MLSGenuine != nil {
		conds = append(conds, NewBool(FieldMLSGenuine, *p.MLSGenuine))
	}

	return Expression{conditions: conds}
}
