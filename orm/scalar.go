package orm

import (
	"reflect"
	"sort"

	"github.com/neuronlabs/neuron-graph/mapping"
)

// ScalarFilter gets the copy of the properties without the composite values - maps, slices, arrays,
// structures and pointers. Only the booleans, numbers, strings and nil values are kept.
func ScalarFilter(props mapping.Properties) mapping.Properties {
	filtered := make(mapping.Properties, len(props))
	for k, v := range props {
		if v == nil || isScalar(v) {
			filtered[k] = v
		}
	}
	return filtered
}

func isScalar(v interface{}) bool {
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// nullFields gets the sorted names of the fields explicitly set to nil.
func nullFields(props mapping.Properties) []string {
	var fields []string
	for k, v := range props {
		if v == nil {
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)
	return fields
}

// withoutNulls gets the properties with no nil values.
func withoutNulls(props mapping.Properties) mapping.Properties {
	for _, field := range nullFields(props) {
		delete(props, field)
	}
	return props
}
