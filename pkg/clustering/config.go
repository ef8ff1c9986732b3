package clustering

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// MaxWorkers caps the configurable fan-out width.
const MaxWorkers = 1024

// validate is a singleton validator instance
var validate = validator.New()

// Config selects the counting strategy and, for the parallel driver, the
// worker fan-out. Workers of zero means one goroutine per CPU.
type Config struct {
	Strategy string `yaml:"strategy" validate:"required,oneof=naive stamp flag"`
	Workers  int    `yaml:"workers" validate:"min=0,max=1024"`
}

// DefaultConfig returns the configuration used when no file is supplied:
// the stamp strategy, which needs no per-vertex reset, with CPU-sized
// fan-out.
func DefaultConfig() Config {
	return Config{
		Strategy: StrategyStamp.String(),
		Workers:  0,
	}
}

// LoadConfig reads a YAML configuration file, applying defaults for fields
// the file leaves unset.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration using struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
// wrapped in ErrInvalidConfiguration.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, strings.Join(messages, "; "))
}
