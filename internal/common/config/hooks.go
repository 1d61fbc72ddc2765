package config

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// CustomHooks are the decode options macgen passes to viper.Unmarshal.
var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(TextUnmarshalerHookFunc()),
}

// TextUnmarshalerHookFunc decodes scalar and list values into any target type whose pointer
// implements encoding.TextUnmarshaler. Lists (e.g. `gunEnergy: [5, 10]` in a YAML config file)
// are joined with commas first, so flags, environment and config files all reach UnmarshalText
// in the same comma-delimited form.
func TextUnmarshalerHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f == t || !reflect.PtrTo(t).Implements(textUnmarshalerType) {
			return data, nil
		}
		text, ok := asText(data)
		if !ok {
			return data, nil
		}
		target := reflect.New(t)
		if err := target.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return nil, err
		}
		return target.Elem().Interface(), nil
	}
}

func asText(data interface{}) (string, bool) {
	switch v := data.(type) {
	case string:
		return v, true
	case []string:
		return strings.Join(v, ","), true
	case []interface{}:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = fmt.Sprint(e)
		}
		return strings.Join(parts, ","), true
	case int, int32, int64, uint, uint32, uint64, float32, float64, bool:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}
