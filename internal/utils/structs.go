package utils

import (
	"fmt"
	"reflect"
)

var ColumnTag = "db"

type column struct {
	name  string
	index []int
}

// columns lists the exported fields of a struct that carry a ColumnTag, in
// declaration order. Embedded structs are walked.
func columns(t reflect.Type) []column {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	var out []column
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}

		name := f.Tag.Get(ColumnTag)
		if name == "" || name == "-" {
			continue
		}

		out = append(out, column{name: name, index: f.Index})
	}
	return out
}

// StructTagValues returns the column names of input, e.g. for a SELECT list.
func StructTagValues(input any) []string {
	cols := columns(reflect.TypeOf(input))

	result := make([]string, len(cols))
	for i, c := range cols {
		result[i] = c.name
	}
	return result
}

// StructToMap maps column names to field values, e.g. for squirrel SetMap.
func StructToMap(input any) map[string]any {
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	cols := columns(v.Type())
	result := make(map[string]any, len(cols))
	for _, c := range cols {
		result[c.name] = v.FieldByIndex(c.index).Interface()
	}
	return result
}

func ErrorWrapOrNil(err error, msg string) error {
	if err == nil {
		return nil
	}

	if msg == "" {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)
}
