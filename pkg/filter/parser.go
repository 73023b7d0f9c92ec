package filter

import (
	"strings"
)

const (
	andDelimiter   = " and "
	orDelimiter    = " or "
	tokenDelimiter = " "
)

// ParseCondition parses a single flat `"field" op value` condition and validates it against the given fields.
//
// The condition is validated in a fixed order: field membership, field shape, operator and finally the value.
// The first failure is returned, there is no partial result.
func ParseCondition(condition string, fields []FieldSpec) (*Condition, error) {
	tokens, err := split(condition, tokenDelimiter)
	if err != nil {
		return nil, err
	}

	if len(tokens) != 3 {
		return nil, newError(MalformedCondition, condition,
			"failed to split condition %q: expected 3 space separated tokens, got %d", condition, len(tokens))
	}

	for _, token := range tokens {
		if token == "" {
			return nil, newError(MalformedCondition, condition,
				"failed to split condition %q: tokens must be separated by a single space", condition)
		}
	}

	field, operator, value := tokens[0], tokens[1], tokens[2]
	if err := lookupField(field, fields); err != nil {
		return nil, err
	}

	if err := ValidateField(field); err != nil {
		return nil, err
	}

	op, err := ParseOperator(operator)
	if err != nil {
		return nil, err
	}

	value, err = ParseValue(value, op)
	if err != nil {
		return nil, err
	}

	return &Condition{field: field, op: op, value: value}, nil
}

// Query is a filter expression bound to the schema it is validated against.
// It doesn't hold any state besides its immutable inputs, so it can be parsed any number of times.
type Query struct {
	expr   string
	config Config
}

// NewQuery returns a Query for the given filter expression and schema.
func NewQuery(expr string, config Config) *Query {
	return &Query{expr: expr, config: config}
}

// Parse wraps NewQuery and Query.Parse.
func Parse(expr string, config Config) (Result, error) {
	return NewQuery(expr, config).Parse()
}

// Parse parses the filter expression of this Query.
//
// The expression is split into terms at each " and ". Terms wrapped in parentheses are OR-groups and are
// split further at each " or ". After all terms have been parsed successfully, every required field of the
// schema must be referenced by at least one condition, groups included.
func (q *Query) Parse() (Result, error) {
	terms, err := split(q.expr, andDelimiter)
	if err != nil {
		return nil, err
	}

	result := make(Result, 0, len(terms))
	for _, term := range terms {
		if isGroup(term) {
			group, err := q.parseGroup(term)
			if err != nil {
				return nil, err
			}

			result = append(result, group)
			continue
		}

		condition, err := ParseCondition(term, q.config.Fields)
		if err != nil {
			return nil, err
		}

		result = append(result, condition)
	}

	if err := checkRequiredFields(result, q.config.Fields); err != nil {
		return nil, err
	}

	return result, nil
}

// parseGroup parses a parenthesized OR-group term.
func (q *Query) parseGroup(term string) (Group, error) {
	conditions, err := split(strings.TrimSuffix(strings.TrimPrefix(term, "("), ")"), orDelimiter)
	if err != nil {
		return nil, err
	}

	group := make(Group, 0, len(conditions))
	for _, c := range conditions {
		condition, err := ParseCondition(c, q.config.Fields)
		if err != nil {
			return nil, err
		}

		group = append(group, condition)
	}

	return group, nil
}

// checkRequiredFields verifies that all required fields are referenced in the given result.
func checkRequiredFields(result Result, fields []FieldSpec) error {
	referenced := make(map[string]struct{})
	for _, c := range result.Conditions() {
		referenced[c.Name()] = struct{}{}
	}

	for _, f := range fields {
		if _, ok := referenced[f.Name]; f.Required && !ok {
			return newError(MissingRequiredField, f.Name, "field %s is required but not referenced by any condition", f.Name)
		}
	}

	return nil
}
