package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

// argList collects bind values and hands out the matching $n placeholders.
type argList []any

func (a *argList) bind(v any) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}

// bindExpr replaces each '?' in expr with the next placeholder.
func (a *argList) bindExpr(expr string, values []any) string {
	if len(values) == 0 {
		return expr
	}
	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(values) {
			out.WriteString(a.bind(values[next]))
			next++
			continue
		}
		out.WriteByte(expr[i])
	}
	return out.String()
}

// Condition renders one predicate of a WHERE clause.
type Condition func(a *argList) string

func Eq(column string, value any) Condition {
	return func(a *argList) string { return column + " = " + a.bind(value) }
}

// In renders an always false predicate for an empty value list.
func In(column string, values ...any) Condition {
	return func(a *argList) string {
		if len(values) == 0 {
			return "1=0"
		}
		marks := make([]string, len(values))
		for i, v := range values {
			marks[i] = a.bind(v)
		}
		return column + " IN (" + strings.Join(marks, ", ") + ")"
	}
}

func IsNull(column string) Condition {
	return func(*argList) string { return column + " IS NULL" }
}

// Expr embeds a raw SQL fragment; each '?' is bound to the next value.
func Expr(expr string, values ...any) Condition {
	return func(a *argList) string { return a.bindExpr(expr, values) }
}

type clauses struct {
	where  []Condition
	suffix string
}

func (c *clauses) writeTail(buf *strings.Builder, a *argList) {
	for i, cond := range c.where {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		buf.WriteString(cond(a))
	}
}

func (c *clauses) writeSuffix(buf *strings.Builder) {
	if c.suffix != "" {
		buf.WriteString(" ")
		buf.WriteString(c.suffix)
	}
}

type SelectBuilder struct {
	clauses
	columns []string
	table   string
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

// Suffix appends a trailing clause such as "FOR UPDATE".
func (b *SelectBuilder) Suffix(sql string) *SelectBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, errors.New("select columns are required")
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("select table is required")
	}

	var (
		buf  strings.Builder
		args argList
	)
	buf.WriteString("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	b.writeTail(&buf, &args)
	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		buf.WriteString(" LIMIT " + strconv.Itoa(b.limit))
	}
	b.writeSuffix(&buf)
	return buf.String(), args, nil
}

type InsertBuilder struct {
	clauses
	table   string
	columns []string
	values  []any
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = append([]any(nil), values...)
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("insert table is required")
	case len(b.columns) == 0:
		return "", nil, errors.New("insert columns are required")
	case len(b.values) != len(b.columns):
		return "", nil, errors.New("insert values do not match columns")
	}

	var (
		buf  strings.Builder
		args argList
	)
	marks := make([]string, len(b.values))
	for i, v := range b.values {
		marks[i] = args.bind(v)
	}
	buf.WriteString("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")")
	b.writeSuffix(&buf)
	return buf.String(), args, nil
}

type UpdateBuilder struct {
	clauses
	table string
	sets  []func(a *argList) string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, func(a *argList) string { return column + " = " + a.bind(value) })
	return b
}

// SetExpr assigns a raw expression such as "revision + 1".
func (b *UpdateBuilder) SetExpr(column, expr string, values ...any) *UpdateBuilder {
	b.sets = append(b.sets, func(a *argList) string { return column + " = " + a.bindExpr(expr, values) })
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("update table is required")
	case len(b.sets) == 0:
		return "", nil, errors.New("update sets are required")
	}

	var (
		buf  strings.Builder
		args argList
	)
	assignments := make([]string, len(b.sets))
	for i, set := range b.sets {
		assignments[i] = set(&args)
	}
	buf.WriteString("UPDATE " + b.table + " SET " + strings.Join(assignments, ", "))
	b.writeTail(&buf, &args)
	b.writeSuffix(&buf)
	return buf.String(), args, nil
}

type DeleteBuilder struct {
	clauses
	table string
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) Suffix(sql string) *DeleteBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("delete table is required")
	case len(b.where) == 0:
		// Unbounded deletes are never intended here.
		return "", nil, errors.New("delete requires at least one condition")
	}

	var (
		buf  strings.Builder
		args argList
	)
	buf.WriteString("DELETE FROM " + b.table)
	b.writeTail(&buf, &args)
	b.writeSuffix(&buf)
	return buf.String(), args, nil
}
