package filter

import (
	"golang.org/x/exp/slices"
)

// FieldSpec describes a single field of the caller supplied schema.
type FieldSpec struct {
	Name     string `yaml:"name"` // Name is the bare (unquoted) column name.
	Required bool   `yaml:"required"`
}

// Config is the schema a filter expression is validated against.
type Config struct {
	Fields []FieldSpec `yaml:"fields"`
}

// Term is implemented by every top-level entry of a parsed Result, i.e. *Condition and Group.
type Term interface {
	// Conditions returns all the conditions of this term in input order.
	Conditions() []*Condition

	isTerm()
}

// Condition represents a single validated filter condition.
// All of its fields are read-only and aren't supposed to change after parsing. For read access, you can
// check the available exported methods.
type Condition struct {
	field string
	op    Operator
	value string
}

// Field returns the quoted field of this Condition, e.g. `"EMPRESA"`.
func (c *Condition) Field() string {
	return c.field
}

// Name returns the bare field name of this Condition, i.e. Field without its surrounding quotes.
func (c *Condition) Name() string {
	return unquote(c.field)
}

// Operator returns the raw operator this Condition was parsed from.
func (c *Condition) Operator() Operator {
	return c.op
}

// Mapped returns the mapped operator of this Condition, e.g. "like" or "is not".
func (c *Condition) Mapped() string {
	return c.op.Mapped()
}

// Value returns the validated and normalized value of this Condition.
func (c *Condition) Value() string {
	return c.value
}

// Conditions implements the Term interface.
func (c *Condition) Conditions() []*Condition {
	return []*Condition{c}
}

func (*Condition) isTerm() {}

// Group is a parenthesized disjunction of conditions, that is itself AND-ed with its sibling terms.
type Group []*Condition

// Conditions implements the Term interface.
// The returned slice is a copy, modifying it doesn't affect the group.
func (g Group) Conditions() []*Condition {
	return slices.Clone(g)
}

func (Group) isTerm() {}

// Result is the ordered conjunction of terms parsed from a filter expression.
type Result []Term

// Conditions returns all conditions of this Result with its groups flattened, in input order.
func (r Result) Conditions() []*Condition {
	var conditions []*Condition
	for _, term := range r {
		conditions = append(conditions, term.Conditions()...)
	}

	return conditions
}

// Assert interface compliance.
var (
	_ Term = (*Condition)(nil)
	_ Term = Group(nil)
)
