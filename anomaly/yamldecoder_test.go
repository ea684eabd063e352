package anomaly_test

import (
	"testing"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synaptecltd/injector/anomaly"
	"gopkg.in/yaml.v2"
)

func TestDecodeConfigFromStringMap(t *testing.T) {
	// shape of the data handed over by viper
	input := map[string]interface{}{
		"FrequencyRange": []interface{}{5, 10.0},
		"CycleRange":     []interface{}{2},
		"AmplitudeRange": []interface{}{10},
		"AnomalyRate":    1.0,
		"Shape":          "peak",
	}

	c, err := anomaly.DecodeConfig(input)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 10}, c.GetFrequencyRange())
	assert.Equal(t, 1.0, c.GetAnomalyRate())
	assert.Equal(t, "peak", c.GetShapeName())
}

func TestDecodeConfigFromYAMLMap(t *testing.T) {
	var raw interface{}
	require.NoError(t, yaml.Unmarshal([]byte("FrequencyRange: [5]\nCycleRange: [2]\nAmplitudeRange: [10]\n"), &raw))

	c, err := anomaly.DecodeConfig(raw)
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, c.GetFrequencyRange())
}

func TestDecodeConfigInvalid(t *testing.T) {
	testCases := map[string]map[string]interface{}{
		"empty range": {
			"FrequencyRange": []interface{}{},
			"CycleRange":     []interface{}{2},
			"AmplitudeRange": []interface{}{10},
		},
		"unknown field": {
			"FrequencyRange": []interface{}{5},
			"CycleRange":     []interface{}{2},
			"AmplitudeRange": []interface{}{10},
			"Frequency":      5,
		},
	}

	for name, input := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := anomaly.DecodeConfig(input)
			assert.Error(t, err)
		})
	}
}

func TestDecodeHookStrategies(t *testing.T) {
	type settings struct {
		Injection anomaly.Config
		Shape     anomaly.Shape
		Amplitude anomaly.Amplitude
	}

	input := map[string]interface{}{
		"Injection": map[string]interface{}{
			"FrequencyRange": []interface{}{5},
			"CycleRange":     []interface{}{2},
			"AmplitudeRange": []interface{}{10},
		},
		"Shape":     "square",
		"Amplitude": "pyramid",
	}

	var s settings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: anomaly.GetDecodeHook(),
		Result:     &s,
	})
	require.NoError(t, err)
	require.NoError(t, decoder.Decode(input))

	assert.Equal(t, anomaly.Square{}, s.Shape)
	assert.Equal(t, anomaly.Pyramid{}, s.Amplitude)
	assert.Equal(t, []float64{5}, s.Injection.GetFrequencyRange())
	assert.Equal(t, anomaly.DefaultAnomalyRate, s.Injection.GetAnomalyRate())

	input["Shape"] = "triangle"
	assert.Error(t, decoder.Decode(input))
}
