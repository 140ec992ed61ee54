package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type ScaleCfg struct {
	Floor float64 `yaml:"floor"` // e.g. 0.2
	Ceil  float64 `yaml:"ceil"`  // e.g. 2.5
	Ratio float64 `yaml:"ratio"` // shrink multiplier, e.g. 0.99
}

type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0, "" = first port
	SpeedHz int    `yaml:"speed_hz"` // e.g. 2400000
}

type Config struct {
	Driver     string  `yaml:"driver"` // "spi" | "sim"
	ColorOrder string  `yaml:"color_order"`
	Brightness float64 `yaml:"brightness"`
	FPS        int     `yaml:"fps"`

	Mesh  string `yaml:"mesh"`  // "cube" | "prism"
	Table string `yaml:"table"` // "trio" | "hexad"

	Scale ScaleCfg `yaml:"scale"`
	SPI   SPI      `yaml:"spi,omitempty"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
