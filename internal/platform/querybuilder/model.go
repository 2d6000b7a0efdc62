package querybuilder

import (
	"errors"
	"reflect"
	"strings"
	"sync"
)

type modelColumn struct {
	name  string
	index int
}

// columnCache maps a struct type to its db-tagged columns.
var columnCache sync.Map

// InsertModel builds an INSERT from the `db`-tagged exported fields of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := modelColumnsAndValues(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}

// UpdateModel starts an UPDATE that sets every `db`-tagged field of model.
func UpdateModel(table string, model any) (*UpdateBuilder, error) {
	cols, vals, err := modelColumnsAndValues(model)
	if err != nil {
		return nil, err
	}
	b := Update(table)
	for i := range cols {
		b.Set(cols[i], vals[i])
	}
	return b, nil
}

func modelColumnsAndValues(model any) ([]string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, errors.New("model cannot be nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, errors.New("model must be a struct")
	}

	columns := columnsOf(v.Type())
	if len(columns) == 0 {
		return nil, nil, errors.New("model has no db columns")
	}
	names := make([]string, len(columns))
	values := make([]any, len(columns))
	for i, c := range columns {
		names[i] = c.name
		values[i] = v.Field(c.index).Interface()
	}
	return names, values, nil
}

func columnsOf(t reflect.Type) []modelColumn {
	if cached, ok := columnCache.Load(t); ok {
		return cached.([]modelColumn)
	}
	var out []modelColumn
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		if name = strings.TrimSpace(name); name == "" || name == "-" {
			continue
		}
		out = append(out, modelColumn{name: name, index: i})
	}
	columnCache.Store(t, out)
	return out
}
