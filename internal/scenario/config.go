package scenario

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decimal-drift/decimal"
	"github.com/decimal-drift/decimal/internal/logging"
)

// Output formats of a run.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config describes a drift run.
type Config struct {
	Precisions []int                `yaml:"precisions"`
	Threshold  string               `yaml:"threshold"`
	Rounding   decimal.RoundingMode `yaml:"rounding"`
	Scenarios  []string             `yaml:"scenarios"`
	Format     string               `yaml:"format"`
	Log        logging.Config       `yaml:"log"`
}

// DefaultConfig returns the configuration used when no file is given:
// every scenario at 5, 10, 20 and 64 digits, flagging errors above 1e-10.
func DefaultConfig() Config {
	return Config{
		Precisions: []int{5, 10, 20, 64},
		Threshold:  "1e-10",
		Rounding:   decimal.HalfUp,
		Format:     FormatText,
		Log: logging.Config{
			Level:  "info",
			Pretty: true,
		},
	}
}

// LoadConfig reads a YAML configuration file on top of [DefaultConfig].
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, Error.New("failed to read config file: %v", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, Error.New("failed to parse config file %s: %v", path, err)
	}
	return cfg, nil
}

// ThresholdValue parses the threshold.
func (c Config) ThresholdValue() (decimal.Decimal, error) {
	d, err := decimal.Parse(c.Threshold)
	if err != nil {
		return decimal.Decimal{}, Error.Wrap(err)
	}
	if d.IsNeg() {
		return decimal.Decimal{}, Error.New("threshold %v is negative", d)
	}
	return d, nil
}

// Validate reports the first invalid setting of c.
func (c Config) Validate() error {
	if len(c.Precisions) == 0 {
		return Error.New("no precisions")
	}
	for _, p := range c.Precisions {
		if p < decimal.MinPrecision {
			return Error.Wrap(decimal.PrecisionTooLowError.New("precision %d is less than %d", p, decimal.MinPrecision))
		}
	}
	if _, err := c.ThresholdValue(); err != nil {
		return err
	}
	for _, name := range c.Scenarios {
		if _, ok := Lookup(name); !ok {
			return Error.New("unknown scenario %q", name)
		}
	}
	switch c.Format {
	case FormatText, FormatYAML:
	default:
		return Error.New("unknown format %q", c.Format)
	}
	return nil
}
