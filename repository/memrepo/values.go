package memrepo

import (
	"math"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/mapping"
)

// normalizeProperties converts the numeric values the way the graph databases store them:
// integers as int64 and floating point numbers as float64. Unsigned integers out of the int64 range
// are rejected.
func normalizeProperties(props mapping.Properties) (mapping.Properties, error) {
	normalized := make(mapping.Properties, len(props))
	for k, v := range props {
		value, err := normalizeValue(v)
		if err != nil {
			return nil, errors.Wrapf(class.StoreRemoteCall, err, "property: '%s'", k)
		}
		normalized[k] = value
	}
	return normalized, nil
}

func normalizeValue(v interface{}) (interface{}, error) {
	switch n := v.(type) {
	case uint:
		if uint64(n) > math.MaxInt64 {
			return nil, errors.NewDetf(class.StoreRemoteCall, "value: %d overflows int64", n)
		}
	case uint64:
		if n > math.MaxInt64 {
			return nil, errors.NewDetf(class.StoreRemoteCall, "value: %d overflows int64", n)
		}
	}
	return convertNumber(v), nil
}

func convertNumber(v interface{}) interface{} {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	case float32:
		return float64(n)
	}
	return v
}

// indexKey gets the comparable index key of the value. Integral floats match their integer keys.
func indexKey(v interface{}) (interface{}, error) {
	v, err := normalizeValue(v)
	if err != nil {
		return nil, err
	}
	if f, ok := v.(float64); ok && f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f), nil
	}
	return v, nil
}
