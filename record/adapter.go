package record

import "fmt"

// FromAny converts a Go value into a typed Value.
//
// This exists as an adapter layer for user input and decoded JSON.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		// JSON numbers decode as float64; keep integral values as ints so
		// that {"id": 7} and record.Int(7) land in the same index bucket.
		if x == float64(int64(x)) {
			return Int(int64(x)), nil
		}
		return Float(x), nil
	case float32:
		return FromAny(float64(x))
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		if x > uint64(int64(^uint64(0)>>1)) {
			// Avoid silently truncating large values.
			return Value{}, fmt.Errorf("record uint64 out of range: %d", x)
		}
		return Int(int64(x)), nil
	case []Value:
		return Array(x), nil
	case []any:
		arr := make([]Value, len(x))
		for i := range x {
			vv, err := FromAny(x[i])
			if err != nil {
				return Value{}, err
			}
			arr[i] = vv
		}
		return Array(arr), nil
	case []string:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = String(x[i])
		}
		return Array(arr), nil
	default:
		return Value{}, fmt.Errorf("unsupported record value type: %T", v)
	}
}

// FromMap converts a plain map into a Record.
func FromMap(m map[string]any) (Record, error) {
	if m == nil {
		return nil, nil
	}
	r := make(Record, len(m))
	for k, v := range m {
		vv, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		r[k] = vv
	}
	return r, nil
}
