package filter

// Operator is the closed set of raw comparison operators a filter condition may use.
type Operator uint8

// List of the supported operators, in the order of their raw token names.
const (
	Equal Operator = iota
	StartsWith
	EndsWith
	Like
	GreaterThanEqual
	GreaterThan
	LessThanEqual
	LessThan
	UnEqual
	Is
	IsNot
	In
	NotIn

	numOperators // Must always be the last one!
)

// operatorTokens holds the raw token of each Operator as it appears in a filter string.
var operatorTokens = [numOperators]string{
	Equal:            "eq",
	StartsWith:       "sw",
	EndsWith:         "ew",
	Like:             "like",
	GreaterThanEqual: "ge",
	GreaterThan:      "gt",
	LessThanEqual:    "le",
	LessThan:         "lt",
	UnEqual:          "ne",
	Is:               "is",
	IsNot:            "isnot",
	In:               "in",
	NotIn:            "notin",
}

// mappedOperators holds the target query form of each Operator.
var mappedOperators = [numOperators]string{
	Equal:            "=",
	StartsWith:       "like",
	EndsWith:         "like",
	Like:             "like",
	GreaterThanEqual: ">=",
	GreaterThan:      ">",
	LessThanEqual:    "<=",
	LessThan:         "<",
	UnEqual:          "!=",
	Is:               "is",
	IsNot:            "is not",
	In:               "in",
	NotIn:            "not in",
}

// ParseOperator looks up the Operator of the given raw token.
//
// Returns an UnknownOperator error if the token isn't part of the supported vocabulary.
func ParseOperator(token string) (Operator, error) {
	for op, t := range operatorTokens {
		if t == token {
			return Operator(op), nil
		}
	}

	return 0, newError(UnknownOperator, token, "failed to parse operator %s: unknown operator, expected one of %v",
		token, operatorTokens)
}

// Valid reports whether o is one of the declared operators.
func (o Operator) Valid() bool {
	return o < numOperators
}

// String returns the raw filter token of this operator.
func (o Operator) String() string {
	if !o.Valid() {
		return "unknown"
	}

	return operatorTokens[o]
}

// Mapped returns the target query operator, e.g. "=" for Equal or "not in" for NotIn.
// Both StartsWith and EndsWith map to "like", they only differ in their value wrapping.
func (o Operator) Mapped() string {
	if !o.Valid() {
		return ""
	}

	return mappedOperators[o]
}
