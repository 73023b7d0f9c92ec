package where

import (
	"fmt"
	"github.com/icinga/icinga-queryfilter/pkg/filter"
	"github.com/jmoiron/sqlx"
	"strconv"
	"strings"
)

const (
	and = " AND "
	or  = " OR "
)

// Inline renders the given result as SQL WHERE expression with all values inlined as literals.
// The returned expression doesn't include the WHERE keyword and is empty for an empty result.
func Inline(result filter.Result) string {
	terms := make([]string, 0, len(result))
	for _, term := range result {
		terms = append(terms, renderTerm(term, func(c *filter.Condition) string {
			return fmt.Sprintf("%s %s %s", c.Field(), c.Mapped(), c.Value())
		}))
	}

	return strings.Join(terms, and)
}

// Bind renders the given result as SQL WHERE expression with placeholders in the bind style of the given
// database driver (see sqlx.BindType) and returns the arguments for these placeholders.
//
// String literals are passed without their quotes, integers as int64 and list values are expanded to one
// placeholder per element. The null of "is" and "is not" conditions is kept as a keyword.
func Bind(result filter.Result, driverName string) (string, []any, error) {
	var args []any
	var bindErr error

	terms := make([]string, 0, len(result))
	for _, term := range result {
		terms = append(terms, renderTerm(term, func(c *filter.Condition) string {
			if bindErr != nil {
				return ""
			}

			placeholder, arg, err := bindCondition(c)
			if err != nil {
				bindErr = err
				return ""
			}

			if arg != nil {
				args = append(args, arg)
			}

			return fmt.Sprintf("%s %s %s", c.Field(), c.Mapped(), placeholder)
		}))
	}

	if bindErr != nil {
		return "", nil, bindErr
	}

	query, args, err := sqlx.In(strings.Join(terms, and), args...)
	if err != nil {
		return "", nil, fmt.Errorf("cannot expand list arguments: %w", err)
	}

	return sqlx.Rebind(sqlx.BindType(driverName), query), args, nil
}

// renderTerm renders a single term with the given condition renderer. Groups are enclosed in parentheses.
func renderTerm(term filter.Term, render func(*filter.Condition) string) string {
	switch t := term.(type) {
	case *filter.Condition:
		return render(t)
	case filter.Group:
		conditions := make([]string, 0, len(t))
		for _, c := range t {
			conditions = append(conditions, render(c))
		}

		return "(" + strings.Join(conditions, or) + ")"
	default:
		panic(fmt.Sprintf("unexpected filter term %T", term))
	}
}

// bindCondition returns the placeholder and the argument of the given condition.
// The argument is nil if the value is rendered as a keyword.
func bindCondition(c *filter.Condition) (string, any, error) {
	switch c.Operator() {
	case filter.Is, filter.IsNot:
		return c.Value(), nil, nil
	case filter.In, filter.NotIn:
		elements, err := filter.SplitList(c.Value())
		if err != nil {
			return "", nil, err
		}

		if len(elements) == 0 {
			return "", nil, fmt.Errorf("%w: list of field %s must not be empty", filter.InvalidValue, c.Field())
		}

		values := make([]any, 0, len(elements))
		for _, e := range elements {
			v, err := decodeLiteral(e)
			if err != nil {
				return "", nil, fmt.Errorf("cannot bind list %s of field %s: %w", c.Value(), c.Field(), err)
			}

			values = append(values, v)
		}

		return "(?)", values, nil
	default:
		v, err := decodeLiteral(c.Value())
		if err != nil {
			return "", nil, fmt.Errorf("cannot bind value of field %s: %w", c.Field(), err)
		}

		return "?", v, nil
	}
}

// decodeLiteral converts a string or integer literal into its Go value.
func decodeLiteral(literal string) (any, error) {
	if len(literal) >= 2 && strings.HasPrefix(literal, "'") && strings.HasSuffix(literal, "'") {
		return strings.ReplaceAll(literal[1:len(literal)-1], "''", "'"), nil
	}

	i, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is neither a string nor an integer literal", filter.InvalidValue, literal)
	}

	return i, nil
}
