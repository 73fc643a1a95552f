package gotemplate

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/flosch/pongo2/v6"
)

// convertToContext normalizes arbitrary data into a pongo2.Context. Maps and
// structs go through a JSON round trip so templates see plain maps and slices
// regardless of the Go types behind them.
func convertToContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}

	switch value := data.(type) {
	case pongo2.Context:
		return value, nil
	case map[string]any:
		ctx := make(pongo2.Context, len(value))
		for key, item := range value {
			converted, err := convertValue(item)
			if err != nil {
				return nil, fmt.Errorf("convert key %q: %w", key, err)
			}
			ctx[key] = converted
		}
		return ctx, nil
	}

	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return pongo2.Context{}, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct, reflect.Map:
		converted, err := convertValue(rv.Interface())
		if err != nil {
			return nil, err
		}
		ctx, ok := converted.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unsupported context type %T", data)
		}
		return pongo2.Context(ctx), nil
	default:
		return nil, fmt.Errorf("unsupported context type %T", data)
	}
}

// convertValue flattens a single value for template consumption. Scalars pass
// through untouched, everything composite is round-tripped through JSON.
func convertValue(value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch value.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return value, nil
	}

	if isCallable(value) {
		return value, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return generic, nil
}

func isCallable(value any) bool {
	if value == nil {
		return false
	}
	return reflect.TypeOf(value).Kind() == reflect.Func
}
