package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/rules"
)

// Config holds the configuration for the simulation
type Config struct {
	Size             int           `json:"size"`
	Wrap             bool          `json:"wrap"`
	Ruleset          string        `json:"ruleset"`
	RulesDir         string        `json:"rules_dir"`
	DefaultAction    string        `json:"default_action"`
	FrameRate        time.Duration `json:"frame_rate"`
	MaxGenerations   int           `json:"max_generations"`
	RandomDensity    float64       `json:"random_density"`
	RandomSeed       int64         `json:"random_seed"`
	Pattern          [][2]int      `json:"pattern"`
	StopOnStagnation bool          `json:"stop_on_stagnation"`
	Interactive      bool          `json:"interactive"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Size:          50,
		Wrap:          true,
		Ruleset:       "B3/S23",
		DefaultAction: rules.Unchanged.String(),
		FrameRate:     500 * time.Millisecond,
	}
}

// LoadConfig loads configuration from JSON file, on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks the values that cannot be fixed up later
func (c Config) Validate() error {
	if c.Size <= 0 {
		return errors.Errorf("[Validate] size must be positive, got %d", c.Size)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Errorf("[Validate] random_density must be within [0,1], got %v", c.RandomDensity)
	}
	if c.FrameRate < 0 {
		return errors.Errorf("[Validate] frame_rate must not be negative, got %v", c.FrameRate)
	}
	if c.MaxGenerations < 0 {
		return errors.Errorf("[Validate] max_generations must not be negative, got %d", c.MaxGenerations)
	}
	if _, err := rules.ParseAction(c.DefaultAction); err != nil {
		return errors.Wrap(err, "[Validate] default_action")
	}
	for _, p := range c.Pattern {
		if p[0] < 0 || p[0] >= c.Size || p[1] < 0 || p[1] >= c.Size {
			return errors.Errorf("[Validate] pattern cell %v outside %dx%d grid", p, c.Size, c.Size)
		}
	}
	return nil
}
