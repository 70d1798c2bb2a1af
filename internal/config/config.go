// YAML observation config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ndops/internal/noisediode"
	"ndops/internal/subarray"
)

// AntennaConfig names one receptor and its digitiser control endpoint.
type AntennaConfig struct {
	Name string `yaml:"name"`
	Addr string `yaml:"addr,omitempty"`
}

// SubarrayConfig describes the antennas allocated to the observation.
type SubarrayConfig struct {
	ID         string          `yaml:"id"`
	Simulated  bool            `yaml:"simulated,omitempty"`
	SensorAddr string          `yaml:"sensor_addr,omitempty"`
	Antennas   []AntennaConfig `yaml:"antennas"`
}

// NoiseDiodeConfig is the noise-diode portion of an observation: an
// optional duty-cycle pattern, an optional trigger before the target,
// and whether to switch off afterwards.
type NoiseDiodeConfig struct {
	Setup     *noisediode.Setup `yaml:"setup,omitempty"`
	Trigger   float64           `yaml:"trigger,omitempty"`
	LeadTime  float64           `yaml:"lead_time,omitempty"`
	SwitchOff bool              `yaml:"switch_off,omitempty"`
}

// EventsConfig selects dispatch-event sinks beyond STDOUT.
type EventsConfig struct {
	LogFile string `yaml:"log_file,omitempty"`
}

// Config is the root observation configuration.
type Config struct {
	Subarray   SubarrayConfig   `yaml:"subarray"`
	NoiseDiode NoiseDiodeConfig `yaml:"noise_diode"`
	Events     EventsConfig     `yaml:"events,omitempty"`
	AdminAddr  string           `yaml:"admin_addr,omitempty"`
}

// Load loads a YAML observation file and validates it against a CUE
// schema before decoding.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate applies the checks the schema cannot express.
func (c *Config) Validate() error {
	if c.Subarray.ID == "" {
		return fmt.Errorf("config: subarray id is required")
	}
	if len(c.Subarray.Antennas) == 0 {
		return fmt.Errorf("config: subarray %s has no antennas", c.Subarray.ID)
	}
	seen := make(map[string]bool, len(c.Subarray.Antennas))
	for _, a := range c.Subarray.Antennas {
		if a.Name == "" {
			return fmt.Errorf("config: antenna with empty name in subarray %s", c.Subarray.ID)
		}
		if seen[a.Name] {
			return fmt.Errorf("config: duplicate antenna %s", a.Name)
		}
		seen[a.Name] = true
		if !c.Subarray.Simulated && a.Addr == "" {
			return fmt.Errorf("config: antenna %s has no control endpoint", a.Name)
		}
	}
	if !c.Subarray.Simulated && c.Subarray.SensorAddr == "" {
		return fmt.Errorf("config: live subarray %s needs a sensor endpoint", c.Subarray.ID)
	}
	if c.NoiseDiode.Setup != nil {
		if err := c.NoiseDiode.Setup.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if c.NoiseDiode.Trigger < 0 {
		return fmt.Errorf("config: trigger duration %v must not be negative", c.NoiseDiode.Trigger)
	}
	return nil
}

// AntennaNames returns the configured receptor names.
func (c *Config) AntennaNames() []string {
	names := make([]string, 0, len(c.Subarray.Antennas))
	for _, a := range c.Subarray.Antennas {
		names = append(names, a.Name)
	}
	return names
}

// Endpoints returns the digitiser endpoints for a live subarray.
func (c *Config) Endpoints() []subarray.Endpoint {
	eps := make([]subarray.Endpoint, 0, len(c.Subarray.Antennas))
	for _, a := range c.Subarray.Antennas {
		eps = append(eps, subarray.Endpoint{Name: a.Name, Addr: a.Addr})
	}
	return eps
}
