package filter

import (
	"golang.org/x/exp/slices"
	"regexp"
	"strings"
)

// identifierRegex matches valid column names.
var identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)

// ValidateField checks the lexical shape of a raw field token.
//
// The token must be wrapped in double quotes and the quoted name must be a valid column name,
// see ValidateFieldName.
func ValidateField(token string) error {
	if len(token) < 2 || !strings.HasPrefix(token, `"`) || !strings.HasSuffix(token, `"`) {
		return newError(InvalidField, token, `failed to parse field %s: field must start with " and end with "`, token)
	}

	if err := ValidateFieldName(unquote(token)); err != nil {
		return newError(InvalidField, token, "failed to parse field %s: %s", token, err)
	}

	return nil
}

// ValidateFieldName checks whether the bare (unquoted) name is a valid column name,
// i.e. 1 to 63 letters, digits or underscores not starting with a digit.
func ValidateFieldName(name string) error {
	if name == "" {
		return newError(InvalidField, name, "field name must have a length greater than 0")
	}

	if !identifierRegex.MatchString(name) {
		return newError(InvalidField, name, "field %q is not a valid column name", name)
	}

	return nil
}

// lookupField checks whether the given raw field token references one of the schema fields.
func lookupField(token string, fields []FieldSpec) error {
	name := unquote(token)
	if slices.IndexFunc(fields, func(f FieldSpec) bool { return f.Name == name }) < 0 {
		return newError(UnknownField, token, "unknown field %s", token)
	}

	return nil
}
