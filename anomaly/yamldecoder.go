package anomaly

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

var (
	shapeType     = reflect.TypeOf((*Shape)(nil)).Elem()
	amplitudeType = reflect.TypeOf((*Amplitude)(nil)).Elem()
	configType    = reflect.TypeOf(Config{})
)

// Returns a DecodeHookFunc that can be used to decode anomaly configuration with mapstructure.
// This supports configuration solutions like spf13/viper that use mapstructure to unmarshal yaml files.
// Config targets are built through NewConfig, and Shape and Amplitude targets are looked up by name.
func GetDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		configDecodeHookFunc(),
		shapeDecodeHookFunc(),
		amplitudeDecodeHookFunc(),
	)
}

// DecodeConfig decodes a generic map, as produced by yaml or viper, into a Config.
func DecodeConfig(input interface{}) (*Config, error) {
	var c Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: GetDecodeHook(),
		Result:     &c,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(input); err != nil {
		return nil, err
	}
	return &c, nil
}

// Returns a DecodeHookFunc that builds a Config from a map of ConfigParams fields.
func configDecodeHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != configType || f.Kind() != reflect.Map {
			return data, nil
		}

		// decode into ConfigParams and use the constructor to create the Config
		var params ConfigParams
		if err := decodeParams(&params, data); err != nil {
			return nil, err
		}
		return NewConfig(params)
	}
}

// Returns a DecodeHookFunc that looks up a Shape from its name.
func shapeDecodeHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != shapeType || f.Kind() != reflect.String {
			return data, nil
		}
		return GetShapeFromName(data.(string))
	}
}

// Returns a DecodeHookFunc that looks up an Amplitude from its name.
func amplitudeDecodeHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != amplitudeType || f.Kind() != reflect.String {
			return data, nil
		}
		return GetAmplitudeFromName(data.(string))
	}
}

// Use mapstructure to decode data into params. Keys of data are either strings
// (viper) or interfaces (yaml.v2).
func decodeParams[T any](params *T, data interface{}) error {
	if reflect.TypeOf(data).Kind() != reflect.Map {
		return fmt.Errorf("expected a map, got %T", data)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      params,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(data)
}
