package main

import (
	"fmt"
	"os"

	"github.com/swdee/go-tmd26721"
	"gopkg.in/yaml.v3"
)

// sensorConfig is the layout of the YAML configuration file
type sensorConfig struct {
	Address       uint8                   `yaml:"address"`
	PulseCount    *uint8                  `yaml:"pulse_count"`
	DriveStrength *tmd26721.DriveStrength `yaml:"drive_strength"`
	Channel       *tmd26721.LEDChannel    `yaml:"channel"`
	Gain          *tmd26721.Gain          `yaml:"gain"`
}

// loadConfig reads the sensor address and settings from a YAML file.  Fields
// missing from the file keep their defaults.
func loadConfig(path string) (uint8, tmd26721.Config, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return 0, tmd26721.Config{}, err
	}

	return parseConfig(data)
}

// parseConfig decodes YAML configuration data
func parseConfig(data []byte) (uint8, tmd26721.Config, error) {

	var sc sensorConfig

	if err := yaml.Unmarshal(data, &sc); err != nil {
		return 0, tmd26721.Config{}, fmt.Errorf("parse config: %w", err)
	}

	addr := tmd26721.Address
	cfg := tmd26721.DefaultConfig()

	if sc.Address != 0 {
		addr = sc.Address
	}

	if sc.PulseCount != nil {
		cfg.PulseCount = *sc.PulseCount
	}

	if sc.DriveStrength != nil {
		cfg.DriveStrength = *sc.DriveStrength
	}

	if sc.Channel != nil {
		cfg.Channel = *sc.Channel
	}

	if sc.Gain != nil {
		cfg.Gain = *sc.Gain
	}

	return addr, cfg, cfg.Validate()
}
