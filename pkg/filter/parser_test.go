package filter

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

var empresa = Config{Fields: []FieldSpec{{Name: "EMPRESA"}}}

func TestParseCondition(t *testing.T) {
	t.Parallel()

	fields := []FieldSpec{{Name: "EMPRESA"}, {Name: "bad-name"}}

	t.Run("ParsesSingleCondition", func(t *testing.T) {
		t.Parallel()

		c, err := ParseCondition(`"EMPRESA" isnot null`, fields)
		require.NoError(t, err)

		assert.Equal(t, `"EMPRESA"`, c.Field())
		assert.Equal(t, "EMPRESA", c.Name())
		assert.Equal(t, IsNot, c.Operator())
		assert.Equal(t, "is not", c.Mapped())
		assert.Equal(t, "null", c.Value())
		assert.Equal(t, []*Condition{c}, c.Conditions())
	})

	t.Run("ValidationOrder", func(t *testing.T) {
		t.Parallel()

		testdata := []struct {
			Condition string
			Kind      ErrorKind
			Expected  string
		}{
			{`"EMPRESA" eq`, MalformedCondition,
				`failed to split condition "\"EMPRESA\" eq": expected 3 space separated tokens, got 2`},
			{`"EMPRESA" eq 1 2`, MalformedCondition,
				`failed to split condition "\"EMPRESA\" eq 1 2": expected 3 space separated tokens, got 4`},
			{`"EMPRESA" eq 1 `, MalformedCondition,
				`failed to split condition "\"EMPRESA\" eq 1 ": expected 3 space separated tokens, got 4`},
			{`"EMPRESA"  1`, MalformedCondition,
				`failed to split condition "\"EMPRESA\"  1": tokens must be separated by a single space`},
			// The schema membership check takes precedence over all other checks.
			{`"OTHER" xx yy`, UnknownField, `unknown field "OTHER"`},
			{`"bad-name" xx yy`, InvalidField, `failed to parse field "bad-name": field "bad-name" is not a valid column name`},
			{`"EMPRESA" xx yy`, UnknownOperator,
				"failed to parse operator xx: unknown operator, expected one of [eq sw ew like ge gt le lt ne is isnot in notin]"},
			{`"EMPRESA" eq yy`, InvalidValue,
				"value yy must be a number or start with ' and end with ' if intended to be a string"},
		}

		for _, td := range testdata {
			c, err := ParseCondition(td.Condition, fields)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, td.Kind, "unexpected error kind for %q", td.Condition)
			assert.EqualError(t, err, td.Expected)
		}
	})

	t.Run("ErrorsCarryTheOffendingToken", func(t *testing.T) {
		t.Parallel()

		_, err := ParseCondition(`"EMPRESA" sw 12`, fields)

		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, InvalidValue, perr.Kind)
		assert.Equal(t, "12", perr.Token)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("EqualWithString", func(t *testing.T) {
		t.Parallel()

		result, err := NewQuery(`"EMPRESA" eq '1000'`, empresa).Parse()
		require.NoError(t, err)
		require.Len(t, result, 1)

		c, ok := result[0].(*Condition)
		require.True(t, ok, "term should be a single condition")
		assert.Equal(t, `"EMPRESA"`, c.Field())
		assert.Equal(t, "=", c.Mapped())
		assert.Equal(t, "'1000'", c.Value())
	})

	t.Run("EqualWithNumber", func(t *testing.T) {
		t.Parallel()

		result, err := Parse(`"EMPRESA" eq 111`, empresa)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "111", result[0].Conditions()[0].Value())
	})

	t.Run("RejectsInvalidEqualValues", func(t *testing.T) {
		t.Parallel()

		for _, expr := range []string{`"EMPRESA" eq 1aa11`, `"EMPRESA" eq ('3030', 90)`, `"EMPRESA" eq null`} {
			result, err := Parse(expr, empresa)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, InvalidValue, "parsing %q should fail", expr)
		}
	})

	t.Run("StartsWith", func(t *testing.T) {
		t.Parallel()

		result, err := Parse(`"EMPRESA" sw '1000'`, empresa)
		require.NoError(t, err)
		require.Len(t, result, 1)

		c := result[0].Conditions()[0]
		assert.Equal(t, StartsWith, c.Operator())
		assert.Equal(t, "like", c.Mapped())
		assert.Equal(t, "'1000%'", c.Value())
	})

	t.Run("OrGroup", func(t *testing.T) {
		t.Parallel()

		result, err := Parse(`("EMPRESA" eq '1' or "EMPRESA" eq '2')`, empresa)
		require.NoError(t, err)
		require.Len(t, result, 1)

		group, ok := result[0].(Group)
		require.True(t, ok, "term should be an OR-group")
		require.Len(t, group, 2)
		assert.Equal(t, "'1'", group[0].Value())
		assert.Equal(t, "'2'", group[1].Value())
	})

	t.Run("GroupConditionsAreCopies", func(t *testing.T) {
		t.Parallel()

		result, err := Parse(`("EMPRESA" eq '1' or "EMPRESA" eq '2')`, empresa)
		require.NoError(t, err)

		conditions := result[0].Conditions()
		conditions[0] = conditions[1]

		group := result[0].(Group)
		assert.Equal(t, "'1'", group[0].Value(), "modifying the returned slice must not change the result")
		assert.Equal(t, "'1'", result[0].Conditions()[0].Value())
	})

	t.Run("MissingRequiredField", func(t *testing.T) {
		t.Parallel()

		config := Config{Fields: []FieldSpec{{Name: "EMPRESA"}, {Name: "FILIAL", Required: true}}}
		result, err := Parse(`"EMPRESA" eq '1'`, config)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, MissingRequiredField)
		assert.EqualError(t, err, "field FILIAL is required but not referenced by any condition")
	})

	t.Run("RequiredFieldInsideGroup", func(t *testing.T) {
		t.Parallel()

		config := Config{Fields: []FieldSpec{{Name: "EMPRESA", Required: true}, {Name: "FILIAL", Required: true}}}
		result, err := Parse(`"EMPRESA" ge 10 and ("FILIAL" eq 1 or "FILIAL" is null)`, config)
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("PreservesTermOrder", func(t *testing.T) {
		t.Parallel()

		config := Config{Fields: []FieldSpec{{Name: "A"}, {Name: "B"}, {Name: "C"}}}
		result, err := Parse(`"C" ew 'x' and ("B" lt 3 or "A" notin (1, 2) or "C" like '%y') and "A" ne 0`, config)
		require.NoError(t, err)
		require.Len(t, result, 3)

		var fields, values []string
		for _, c := range result.Conditions() {
			fields = append(fields, c.Name())
			values = append(values, c.Value())
		}

		assert.Equal(t, []string{"C", "B", "A", "C", "A"}, fields)
		assert.Equal(t, []string{"'%x'", "3", "(1, 2)", "'%y'", "0"}, values)
		assert.IsType(t, &Condition{}, result[0])
		assert.IsType(t, Group{}, result[1])
		assert.IsType(t, &Condition{}, result[2])
	})

	t.Run("QuotedDelimiters", func(t *testing.T) {
		t.Parallel()

		result, err := Parse(`"EMPRESA" eq 'Smith and Sons' and ("EMPRESA" like 'a or b' or "EMPRESA" eq 2)`, empresa)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "'Smith and Sons'", result[0].Conditions()[0].Value())
		assert.Equal(t, "'a or b'", result[1].Conditions()[0].Value())
	})

	t.Run("FailsFast", func(t *testing.T) {
		t.Parallel()

		config := Config{Fields: []FieldSpec{{Name: "EMPRESA"}, {Name: "FILIAL", Required: true}}}

		// The unknown operator of the first term is reported, neither the unknown field of the second term
		// nor the missing required field.
		_, err := Parse(`"EMPRESA" xx 1 and "OTHER" eq 1`, config)
		assert.ErrorIs(t, err, UnknownOperator)

		_, err = Parse(`("EMPRESA" eq 1 or "OTHER" eq 1) and "EMPRESA" xx 1`, config)
		assert.ErrorIs(t, err, UnknownField)
	})

	t.Run("MalformedGroups", func(t *testing.T) {
		t.Parallel()

		for _, expr := range []string{`("EMPRESA" eq 1) or ("EMPRESA" eq 2)`, `("EMPRESA" eq 1 or)`, `()`, ``} {
			_, err := Parse(expr, empresa)
			assert.ErrorIs(t, err, MalformedCondition, "parsing %q should fail", expr)
		}
	})

	t.Run("ParsingIsDeterministic", func(t *testing.T) {
		t.Parallel()

		q := NewQuery(`"EMPRESA" sw 'a' and ("EMPRESA" in ('x', 'y') or "EMPRESA" isnot null)`, empresa)
		expected, err := q.Parse()
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				result, err := q.Parse()
				assert.NoError(t, err)
				assert.Equal(t, expected, result)
			}()
		}
		wg.Wait()
	})
}
