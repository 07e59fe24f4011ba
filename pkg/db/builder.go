package db

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Builder composes SQL statements fluently. Conditions use ? placeholders,
// rendered as pgx-style $N positional parameters. The builder is cheap and
// single-use; each call mutates and returns the same builder.
type Builder struct {
	table      string
	columns    []string
	conditions []condition
	orderBy    []string
	limit      int
	offset     int
}

type condition struct {
	expr string
	args []any
	or   bool
}

// Table starts a builder for the given table.
func Table(name string) *Builder {
	return &Builder{table: name, limit: -1, offset: -1}
}

// Select sets the projected columns. Defaults to * when never called.
func (b *Builder) Select(columns ...string) *Builder {
	b.columns = append(b.columns, columns...)
	return b
}

// Where adds an AND condition. The expression may contain ? placeholders
// matched by args in order.
func (b *Builder) Where(expr string, args ...any) *Builder {
	b.conditions = append(b.conditions, condition{expr: expr, args: args})
	return b
}

// OrWhere adds an OR condition.
func (b *Builder) OrWhere(expr string, args ...any) *Builder {
	b.conditions = append(b.conditions, condition{expr: expr, args: args, or: true})
	return b
}

// OrderBy appends ORDER BY expressions, e.g. "created_at DESC".
func (b *Builder) OrderBy(exprs ...string) *Builder {
	b.orderBy = append(b.orderBy, exprs...)
	return b
}

// Limit caps the result set. Negative means no limit.
func (b *Builder) Limit(n int) *Builder {
	b.limit = n
	return b
}

// Offset skips the first n rows. Negative means no offset.
func (b *Builder) Offset(n int) *Builder {
	b.offset = n
	return b
}

// SQL renders the SELECT statement and its positional arguments.
func (b *Builder) SQL() (string, []any) {
	cols := "*"
	if len(b.columns) > 0 {
		cols = strings.Join(b.columns, ", ")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(cols)
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	args := b.writeWhere(&sb, nil)

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit >= 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(b.limit))
	}
	if b.offset >= 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(b.offset))
	}

	return sb.String(), args
}

// CountSQL renders a SELECT count(*) statement with the same conditions.
func (b *Builder) CountSQL() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT count(*) FROM ")
	sb.WriteString(b.table)
	args := b.writeWhere(&sb, nil)
	return sb.String(), args
}

// InsertSQL renders an INSERT with a RETURNING id clause. Columns are
// ordered alphabetically so the rendered SQL is deterministic.
func (b *Builder) InsertSQL(values map[string]any) (string, []any, error) {
	if b.table == "" {
		return "", nil, ErrBuilderMissingTable
	}
	if len(values) == 0 {
		return "", nil, ErrBuilderMissingValues
	}

	cols := sortedKeys(values)
	args := make([]any, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	for i, col := range cols {
		args = append(args, values[col])
		placeholders = append(placeholders, "$"+strconv.Itoa(i+1))
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		b.table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)
	return sql, args, nil
}

// UpdateSQL renders an UPDATE limited by the builder's conditions. Updating
// without any condition is refused.
func (b *Builder) UpdateSQL(values map[string]any) (string, []any, error) {
	if b.table == "" {
		return "", nil, ErrBuilderMissingTable
	}
	if len(values) == 0 {
		return "", nil, ErrBuilderMissingValues
	}
	if len(b.conditions) == 0 {
		return "", nil, ErrBuilderMissingFilters
	}

	cols := sortedKeys(values)
	args := make([]any, 0, len(cols))
	sets := make([]string, 0, len(cols))
	for i, col := range cols {
		args = append(args, values[col])
		sets = append(sets, col+" = $"+strconv.Itoa(i+1))
	}

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(b.table)
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(sets, ", "))
	args = b.writeWhere(&sb, args)

	return sb.String(), args, nil
}

// DeleteSQL renders a DELETE limited by the builder's conditions. Deleting
// without any condition is refused.
func (b *Builder) DeleteSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, ErrBuilderMissingTable
	}
	if len(b.conditions) == 0 {
		return "", nil, ErrBuilderMissingFilters
	}

	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(b.table)
	args := b.writeWhere(&sb, nil)

	return sb.String(), args, nil
}

// writeWhere renders the WHERE clause, numbering ? placeholders after any
// args already collected. Returns the combined argument list.
func (b *Builder) writeWhere(sb *strings.Builder, args []any) []any {
	if len(b.conditions) == 0 {
		return args
	}

	sb.WriteString(" WHERE ")
	for i, cond := range b.conditions {
		if i > 0 {
			if cond.or {
				sb.WriteString(" OR ")
			} else {
				sb.WriteString(" AND ")
			}
		}
		expr := cond.expr
		for _, arg := range cond.args {
			args = append(args, arg)
			expr = strings.Replace(expr, "?", "$"+strconv.Itoa(len(args)), 1)
		}
		sb.WriteString(expr)
	}
	return args
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
