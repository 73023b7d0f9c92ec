package filter

import (
	"strings"
)

// ParseValue validates the raw value token against the rules of the given (raw) operator and returns its
// normalized form.
//
// StartsWith and EndsWith wrap the string literal interior with a trailing respectively leading "%" wildcard,
// all other operators return the value unchanged. Applying this function twice on a StartsWith value wraps
// it twice, so never feed already normalized values back into it.
func ParseValue(value string, op Operator) (string, error) {
	switch op {
	case Equal, GreaterThanEqual, GreaterThan, LessThanEqual, LessThan, UnEqual:
		if !isStringLiteral(value) && !isIntegerLiteral(value) {
			return "", newError(InvalidValue, value,
				"value %s must be a number or start with ' and end with ' if intended to be a string", value)
		}

		return value, nil
	case StartsWith:
		if !isStringLiteral(value) {
			return "", newError(InvalidValue, value, "value %s must be a string", value)
		}

		return "'" + unquote(value) + "%'", nil
	case EndsWith:
		if !isStringLiteral(value) {
			return "", newError(InvalidValue, value, "value %s must be a string", value)
		}

		return "'%" + unquote(value) + "'", nil
	case Like:
		if !isStringLiteral(value) {
			return "", newError(InvalidValue, value, "value %s must be a string", value)
		}

		return value, nil
	case In, NotIn:
		if !isListLiteral(value) {
			return "", newError(InvalidValue, value, "value %s is not a list", value)
		}

		return value, nil
	case Is, IsNot:
		if value != "null" {
			return "", newError(InvalidValue, value, "value %s must be null", value)
		}

		return value, nil
	default:
		return "", newError(UnsupportedOperator, op.String(), "failed to parse value %s: unsupported operator %q",
			value, op)
	}
}

// isStringLiteral reports whether s is a single-quoted string literal with a non-empty interior.
func isStringLiteral(s string) bool {
	return len(s) > 2 && strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'")
}

// isIntegerLiteral reports whether s is a non-empty sequence of ASCII digits.
func isIntegerLiteral(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// isListLiteral reports whether s is wrapped in parentheses.
func isListLiteral(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
}

// unquote strips the first and last byte of s, which callers ensure to be the surrounding quotes.
func unquote(s string) string {
	if len(s) < 2 {
		return ""
	}

	return s[1 : len(s)-1]
}
