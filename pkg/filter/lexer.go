package filter

import (
	"strings"
)

// lexer splits a filter expression (or a part of it) at a literal delimiter.
//
// Delimiters are only recognized outside single-quoted string literals, double-quoted field names and
// parentheses, so e.g. splitting `"A" eq 'x and y'` at " and " yields a single part. SQL style escaped
// quotes ('it''s') need no special handling, as they just close and immediately reopen the literal.
type lexer struct {
	expr string
	sep  string

	pos, length, openParenthesis int
	quote                        byte // quote is the currently open quote character or 0.
	quotePos                     int
}

// split splits expr at each top-level occurrence of sep.
// Returns a MalformedCondition error if expr contains unterminated quotes or unbalanced parentheses.
func split(expr, sep string) ([]string, error) {
	l := &lexer{expr: expr, sep: sep, length: len(expr)}

	return l.split()
}

func (l *lexer) split() ([]string, error) {
	var parts []string
	start := 0
	for l.pos < l.length {
		ch := l.expr[l.pos]
		switch {
		case l.quote != 0:
			if ch == l.quote {
				l.quote = 0
			}
		case ch == '\'' || ch == '"':
			l.quote = ch
			l.quotePos = l.pos
		case ch == '(':
			l.openParenthesis++
		case ch == ')':
			if l.openParenthesis == 0 {
				return nil, l.parseError(")", "no matching opening parenthesis")
			}

			l.openParenthesis--
		case l.openParenthesis == 0 && strings.HasPrefix(l.expr[l.pos:], l.sep):
			parts = append(parts, l.expr[start:l.pos])
			l.pos += len(l.sep)
			start = l.pos

			continue
		}

		l.pos++
	}

	if l.quote != 0 {
		l.pos = l.quotePos
		return nil, l.parseError(string(l.quote), "unterminated quoted string")
	}

	if l.openParenthesis > 0 {
		return nil, l.parseError("EOF", "missing closing parenthesis")
	}

	return append(parts, l.expr[start:]), nil
}

// parseError returns a formatted MalformedCondition error pointing at the current position.
func (l *lexer) parseError(unexpected string, msg string) error {
	return newError(MalformedCondition, l.expr, "invalid filter '%s', unexpected %s at pos %d: %s",
		l.expr, unexpected, l.pos, msg)
}

// isGroup reports whether the given term is wrapped in parentheses.
func isGroup(term string) bool {
	return strings.HasPrefix(term, "(") && strings.HasSuffix(term, ")")
}

// SplitList splits the interior of a parenthesized list value, e.g. `('a', 'b, c', 3)`, into its trimmed
// elements. Commas inside quoted literals don't separate elements. An empty list yields no elements.
func SplitList(value string) ([]string, error) {
	if !isListLiteral(value) {
		return nil, newError(InvalidValue, value, "value %s is not a list", value)
	}

	interior := unquote(value)
	if strings.TrimSpace(interior) == "" {
		return nil, nil
	}

	elements, err := split(interior, ",")
	if err != nil {
		return nil, err
	}

	for i, e := range elements {
		elements[i] = strings.TrimSpace(e)
	}

	return elements, nil
}
