package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// MaxBindParameters is the Postgres limit on parameters per statement.
const MaxBindParameters = 65535

func InsertModel(table string, model any, suffix string) (string, []any, error) {
	return InsertModels(table, []any{model}, suffix)
}

// InsertModels builds one multi-row insert from structs that share a type.
// Columns come from `db` tags.
func InsertModels(table string, models []any, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("at least one model is required")
	}

	builder := InsertInto(table).Suffix(suffix)
	var columns []string
	for i, model := range models {
		cols, vals, err := columnsAndValuesFromModel(model)
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		if i == 0 {
			columns = cols
			builder.Columns(cols...)
		} else if !slices.Equal(cols, columns) {
			return "", nil, fmt.Errorf("model %d columns differ from model 0", i)
		}
		builder.Values(vals...)
	}
	if len(models)*len(columns) > MaxBindParameters {
		return "", nil, fmt.Errorf("insert needs %d parameters, limit is %d", len(models)*len(columns), MaxBindParameters)
	}
	return builder.ToSQL()
}

// ModelColumns lists the db columns of a struct in field order.
func ModelColumns(model any) ([]string, error) {
	cols, _, err := columnsAndValuesFromModel(model)
	return cols, err
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := strings.TrimSpace(field.Tag.Get("db"))
		if tag == "" || tag == "-" {
			continue
		}
		col := strings.TrimSpace(strings.Split(tag, ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
