package anomaly

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig is returned, wrapped, for any configuration that cannot drive injection.
var ErrInvalidConfig = errors.New("invalid anomaly configuration")

// Default values applied by NewConfig when the corresponding field is left empty.
const (
	DefaultAnomalyRate   = 0.001
	DefaultShapeName     = "sinusoidal"
	DefaultAmplitudeName = "constant"
)

// Config describes the candidate values anomalies are drawn from. It is immutable
// once built by NewConfig; use the getters to read it.
type Config struct {
	frequencyRange []float64 // candidate anomaly frequencies in Hz
	cycleRange     []float64 // candidate number of cycles per anomaly
	amplitudeRange []float64 // candidate peak amplitudes
	noiseRange     []int     // candidate bounds of the uniform noise, nil for no noise

	anomalyRate float64      // probability of an anomaly starting at each eligible sample
	locations   map[int]bool // eligible sample indices, nil for every index
	phase       float64      // phase offset in radians handed to shapes

	shapeName     string
	amplitudeName string
}

// Parameters used to request a Config. These map onto the fields of Config.
type ConfigParams struct {
	FrequencyRange []float64 `yaml:"FrequencyRange" mapstructure:"FrequencyRange"` // candidate anomaly frequencies in Hz, must be > 0
	CycleRange     []float64 `yaml:"CycleRange" mapstructure:"CycleRange"`         // candidate number of cycles per anomaly
	AmplitudeRange []float64 `yaml:"AmplitudeRange" mapstructure:"AmplitudeRange"` // candidate peak amplitudes

	AnomalyRate *float64 `yaml:"AnomalyRate" mapstructure:"AnomalyRate"` // probability in [0,1] per eligible sample, nil defaults to 0.001
	Locations   []int    `yaml:"Locations" mapstructure:"Locations"`     // eligible sample indices, empty for every index
	NoiseRange  []int    `yaml:"NoiseRange" mapstructure:"NoiseRange"`   // candidate noise bounds, empty for no noise
	Phase       float64  `yaml:"Phase" mapstructure:"Phase"`             // phase offset in radians

	Shape     string `yaml:"Shape" mapstructure:"Shape"`         // shape name, empty defaults to "sinusoidal"
	Amplitude string `yaml:"Amplitude" mapstructure:"Amplitude"` // amplitude strategy name, empty defaults to "constant"
}

// Returns a Config built from params, checking for invalid values.
func NewConfig(params ConfigParams) (*Config, error) {
	c := &Config{phase: params.Phase}

	// Invalid values checked by setters
	if err := c.setFrequencyRange(params.FrequencyRange); err != nil {
		return nil, err
	}
	if err := c.setCycleRange(params.CycleRange); err != nil {
		return nil, err
	}
	if err := c.setAmplitudeRange(params.AmplitudeRange); err != nil {
		return nil, err
	}
	if err := c.setNoiseRange(params.NoiseRange); err != nil {
		return nil, err
	}
	if err := c.setLocations(params.Locations); err != nil {
		return nil, err
	}

	rate := DefaultAnomalyRate
	if params.AnomalyRate != nil {
		rate = *params.AnomalyRate
	}
	if err := c.setAnomalyRate(rate); err != nil {
		return nil, err
	}

	if err := c.setShapeName(params.Shape); err != nil {
		return nil, err
	}
	if err := c.setAmplitudeName(params.Amplitude); err != nil {
		return nil, err
	}

	return c, nil
}

// Rate returns a pointer to rate, for use with ConfigParams.AnomalyRate.
func Rate(rate float64) *float64 {
	return &rate
}

// Initialise a Config when it is unmarshalled from yaml.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var params ConfigParams
	if err := unmarshal(&params); err != nil {
		return err
	}

	// This performs checking for invalid values
	config, err := NewConfig(params)
	if err != nil {
		return err
	}

	*c = *config
	return nil
}

// LoadConfigFile reads a Config from a yaml file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// Params returns the ConfigParams that would rebuild c.
func (c *Config) Params() ConfigParams {
	return ConfigParams{
		FrequencyRange: c.GetFrequencyRange(),
		CycleRange:     c.GetCycleRange(),
		AmplitudeRange: c.GetAmplitudeRange(),
		AnomalyRate:    Rate(c.anomalyRate),
		Locations:      c.GetLocations(),
		NoiseRange:     c.GetNoiseRange(),
		Phase:          c.phase,
		Shape:          c.shapeName,
		Amplitude:      c.amplitudeName,
	}
}

// Setters

func (c *Config) setFrequencyRange(frequencies []float64) error {
	if len(frequencies) == 0 {
		return fmt.Errorf("%w: frequency range must not be empty", ErrInvalidConfig)
	}
	for _, f := range frequencies {
		if f <= 0 {
			return fmt.Errorf("%w: frequency %v must be greater than 0", ErrInvalidConfig, f)
		}
	}
	c.frequencyRange = append([]float64(nil), frequencies...)
	return nil
}

func (c *Config) setCycleRange(cycles []float64) error {
	if len(cycles) == 0 {
		return fmt.Errorf("%w: cycle range must not be empty", ErrInvalidConfig)
	}
	for _, n := range cycles {
		if n < 0 {
			return fmt.Errorf("%w: number of cycles %v must not be negative", ErrInvalidConfig, n)
		}
	}
	c.cycleRange = append([]float64(nil), cycles...)
	return nil
}

func (c *Config) setAmplitudeRange(amplitudes []float64) error {
	if len(amplitudes) == 0 {
		return fmt.Errorf("%w: amplitude range must not be empty", ErrInvalidConfig)
	}
	c.amplitudeRange = append([]float64(nil), amplitudes...)
	return nil
}

func (c *Config) setNoiseRange(noise []int) error {
	if len(noise) == 0 {
		c.noiseRange = nil
		return nil
	}
	for _, n := range noise {
		if n < 0 {
			return fmt.Errorf("%w: noise bound %d must not be negative", ErrInvalidConfig, n)
		}
	}
	c.noiseRange = append([]int(nil), noise...)
	return nil
}

func (c *Config) setLocations(locations []int) error {
	if len(locations) == 0 {
		c.locations = nil
		return nil
	}
	c.locations = make(map[int]bool, len(locations))
	for _, i := range locations {
		if i < 0 {
			return fmt.Errorf("%w: location %d must not be negative", ErrInvalidConfig, i)
		}
		c.locations[i] = true
	}
	return nil
}

func (c *Config) setAnomalyRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return fmt.Errorf("%w: anomaly rate %v must be between 0 and 1", ErrInvalidConfig, rate)
	}
	c.anomalyRate = rate
	return nil
}

func (c *Config) setShapeName(name string) error {
	if name == "" {
		name = DefaultShapeName
	}
	if _, err := GetShapeFromName(name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.shapeName = name
	return nil
}

func (c *Config) setAmplitudeName(name string) error {
	if name == "" {
		name = DefaultAmplitudeName
	}
	if _, err := GetAmplitudeFromName(name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.amplitudeName = name
	return nil
}

// Getters

func (c *Config) GetFrequencyRange() []float64 {
	return append([]float64(nil), c.frequencyRange...)
}

func (c *Config) GetCycleRange() []float64 {
	return append([]float64(nil), c.cycleRange...)
}

func (c *Config) GetAmplitudeRange() []float64 {
	return append([]float64(nil), c.amplitudeRange...)
}

// Returns the candidate noise bounds, nil if no noise is configured.
func (c *Config) GetNoiseRange() []int {
	if c.noiseRange == nil {
		return nil
	}
	return append([]int(nil), c.noiseRange...)
}

func (c *Config) GetAnomalyRate() float64 {
	return c.anomalyRate
}

func (c *Config) GetPhase() float64 {
	return c.phase
}

func (c *Config) GetShapeName() string {
	return c.shapeName
}

func (c *Config) GetAmplitudeName() string {
	return c.amplitudeName
}

// Returns the eligible locations in ascending order, nil if every index is eligible.
func (c *Config) GetLocations() []int {
	if c.locations == nil {
		return nil
	}
	locations := make([]int, 0, len(c.locations))
	for i := range c.locations {
		locations = append(locations, i)
	}
	sort.Ints(locations)
	return locations
}

// IsEligible reports whether an anomaly may start at sample index i.
func (c *Config) IsEligible(i int) bool {
	return c.locations == nil || c.locations[i]
}
