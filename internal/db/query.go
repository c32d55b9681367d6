package db

import (
	"fmt"
	"regexp"
	"strings"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Column is a column definition: its name followed by its type and
// constraints, e.g. {"title", "TEXT NOT NULL"}.
type Column struct {
	Name string
	Type string
}

// Field is a single column/value pair.
type Field struct {
	Column string
	Value  any
}

// Fields is an ordered list of column/value pairs. The order is kept in the
// generated SQL and in the argument list.
type Fields []Field

// F is a shorthand for building a Field.
func F(column string, value any) Field {
	return Field{Column: column, Value: value}
}

// Columns returns the column names in order.
func (fs Fields) Columns() []string {
	cols := make([]string, 0, len(fs))
	for _, f := range fs {
		cols = append(cols, f.Column)
	}

	return cols
}

// Values returns the values in order.
func (fs Fields) Values() []any {
	vals := make([]any, 0, len(fs))
	for _, f := range fs {
		vals = append(vals, f.Value)
	}

	return vals
}

// validIdent reports whether every name is a plain SQL identifier.
func validIdent(names ...string) error {
	for _, n := range names {
		if !identRe.MatchString(n) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, n)
		}
	}

	return nil
}

// placeholders returns "c1 = ?<sep>c2 = ?...".
func placeholders(fs Fields, sep string) string {
	parts := make([]string, 0, len(fs))
	for _, f := range fs {
		parts = append(parts, f.Column+" = ?")
	}

	return strings.Join(parts, sep)
}

func buildCreateTable(t Table, cols []Column) (string, error) {
	if len(cols) == 0 {
		return "", fmt.Errorf("%w: %q", ErrTableNoColumns, t)
	}

	if err := validIdent(string(t)); err != nil {
		return "", err
	}

	defs := make([]string, 0, len(cols))
	for _, c := range cols {
		if err := validIdent(c.Name); err != nil {
			return "", err
		}

		defs = append(defs, strings.TrimSpace(c.Name+" "+c.Type))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t, strings.Join(defs, ", ")), nil
}

func buildInsert(t Table, data Fields) (string, []any, error) {
	if len(data) == 0 {
		return "", nil, ErrNoData
	}

	if err := validIdent(append([]string{string(t)}, data.Columns()...)...); err != nil {
		return "", nil, err
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		t,
		strings.Join(data.Columns(), ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(data)), ", "),
	)

	return q, data.Values(), nil
}

// buildSelect filters first, then orders.
func buildSelect(t Table, orderBy string, criteria Fields) (string, []any, error) {
	if err := validIdent(append([]string{string(t)}, criteria.Columns()...)...); err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT * FROM " + string(t))

	if len(criteria) > 0 {
		sb.WriteString(" WHERE " + placeholders(criteria, " AND "))
	}

	if orderBy != "" {
		if err := validIdent(orderBy); err != nil {
			return "", nil, err
		}

		sb.WriteString(" ORDER BY " + orderBy)
	}

	return sb.String(), criteria.Values(), nil
}

// buildUpdate returns the SET values followed by the WHERE values.
func buildUpdate(t Table, criteria, data Fields) (string, []any, error) {
	if len(data) == 0 {
		return "", nil, ErrNoData
	}

	if len(criteria) == 0 {
		return "", nil, ErrNoCriteria
	}

	names := append([]string{string(t)}, data.Columns()...)
	if err := validIdent(append(names, criteria.Columns()...)...); err != nil {
		return "", nil, err
	}

	q := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s",
		t,
		placeholders(data, ", "),
		placeholders(criteria, " AND "),
	)

	args := make([]any, 0, len(data)+len(criteria))
	args = append(args, data.Values()...)
	args = append(args, criteria.Values()...)

	return q, args, nil
}

func buildDelete(t Table, criteria Fields) (string, []any, error) {
	if len(criteria) == 0 {
		return "", nil, ErrNoCriteria
	}

	if err := validIdent(append([]string{string(t)}, criteria.Columns()...)...); err != nil {
		return "", nil, err
	}

	q := fmt.Sprintf("DELETE FROM %s WHERE %s", t, placeholders(criteria, " AND "))

	return q, criteria.Values(), nil
}
