package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
)

// TableFormatter renders data as an aligned text table.
type TableFormatter struct {
	NoHeaders bool
}

// Format renders scalars as-is, maps and structs as KEY/VALUE tables,
// and slices of structs as one row per element. Shapes with no table
// rendering fall back to indented JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	if t, ok := data.(*Table); ok {
		return t.render(w, f.NoHeaders)
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Float32, reflect.Float64, reflect.Bool:
		_, err := fmt.Fprintln(w, formatCell(v))
		return err
	case reflect.Map:
		return mapTable(v).render(w, f.NoHeaders)
	case reflect.Struct:
		return structTable(v).render(w, f.NoHeaders)
	case reflect.Slice, reflect.Array:
		if t, ok := sliceTable(v); ok {
			return t.render(w, f.NoHeaders)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Table is pre-shaped tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends one row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) render(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// mapTable renders a map as sorted KEY/VALUE rows.
func mapTable(v reflect.Value) *Table {
	t := &Table{Headers: []string{"KEY", "VALUE"}}
	keys := make([]string, 0, v.Len())
	cells := make(map[string]string, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k := formatCell(iter.Key())
		keys = append(keys, k)
		cells[k] = formatCell(iter.Value())
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.AddRow(k, cells[k])
	}
	return t
}

// structTable renders one struct as FIELD/VALUE rows, using json tag
// names when present.
func structTable(v reflect.Value) *Table {
	t := &Table{Headers: []string{"FIELD", "VALUE"}}
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		t.AddRow(fieldName(field), formatCell(v.Field(i)))
	}
	return t
}

// sliceTable renders a slice of structs with one column per field, or
// a slice of scalars as a single VALUE column.
func sliceTable(v reflect.Value) (*Table, bool) {
	if v.Len() == 0 {
		return &Table{}, true
	}
	first := v.Index(0)
	if first.Kind() == reflect.Ptr {
		first = first.Elem()
	}

	if first.Kind() == reflect.Struct {
		typ := first.Type()
		t := &Table{}
		var indices []int
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			t.Headers = append(t.Headers, strings.ToUpper(fieldName(field)))
			indices = append(indices, i)
		}
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			if elem.Kind() == reflect.Ptr {
				elem = elem.Elem()
			}
			row := make([]string, 0, len(indices))
			for _, idx := range indices {
				row = append(row, formatCell(elem.Field(idx)))
			}
			t.Rows = append(t.Rows, row)
		}
		return t, true
	}

	t := &Table{Headers: []string{"VALUE"}}
	for i := 0; i < v.Len(); i++ {
		t.AddRow(formatCell(v.Index(i)))
	}
	return t, true
}

func fieldName(field reflect.StructField) string {
	if tag := field.Tag.Get("json"); tag != "" {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return field.Name
}

func formatCell(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "-"
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.String:
		if v.String() == "" {
			return "-"
		}
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", v.Uint())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%g", v.Float())
	case reflect.Bool:
		return fmt.Sprintf("%t", v.Bool())
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Map:
		if v.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("{%d keys}", v.Len())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
