package seqcast

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config holds the sampling and placement settings handed to the pretrained
// pipeline. Nil pointer fields mean the pretrained model's own default is
// used. Zero-valued fields are filled from the default tags by Validate.
type Config struct {
	// NumSamples is the number of trajectories sampled per prediction.
	NumSamples *int `yaml:"num_samples" validate:"omitnil,gt=0"`
	// Temperature scales the sampling distribution.
	Temperature *float64 `yaml:"temperature" validate:"omitnil,gt=0"`
	// TopK restricts sampling to the k most likely tokens.
	TopK *int `yaml:"top_k" validate:"omitnil,gt=0"`
	// TopP restricts sampling to the smallest nucleus of cumulative
	// probability p.
	TopP *float64 `yaml:"top_p" validate:"omitnil,gt=0,lte=1"`
	// LimitPredictionLength asks the pipeline to enforce its own prediction
	// length ceiling. The forecaster handles truncation itself and disables
	// this on every inference call regardless.
	LimitPredictionLength bool `yaml:"limit_prediction_length"`
	// DType is the numeric precision to load the model with.
	DType string `yaml:"dtype" default:"bfloat16" validate:"required"`
	// DeviceMap is the compute placement, e.g. "cpu", "cuda", or "mps".
	DeviceMap string `yaml:"device_map" default:"cpu" validate:"required"`
	// Endpoint is the inference server the default loader talks to.
	Endpoint string `yaml:"endpoint" default:"http://localhost:8089" validate:"required,url"`
	// Seed fixes the sampling seed. When nil a seed is drawn once at
	// forecaster construction and retained.
	Seed *int64 `yaml:"seed"`
}

// NewDefaultConfig returns a Config populated with the documented defaults.
func NewDefaultConfig() *Config {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		panic(fmt.Sprintf("setting config defaults: %v", err))
	}
	return c
}

// Validate fills unset fields from the defaults and checks field ranges.
func (c *Config) Validate() error {
	if err := defaults.Set(c); err != nil {
		return fmt.Errorf("unable to set config defaults, %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config, %w", err)
	}
	return nil
}

// LoadConfig reads a Config from a YAML file, fills defaults, and validates
// it.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file, %w", err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("unable to parse config file, %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
