// Package config loads and validates the nsec3gen configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/hashicorp/go-multierror"
	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/seifreed/NSECGenerator/log"
	"github.com/seifreed/NSECGenerator/nsec3"
)

// Preset is one named NSEC3 hashing configuration used by batch generation
type Preset struct {
	Name       string `yaml:"name"`
	Salt       string `yaml:"salt"`
	Iterations uint32 `yaml:"iterations"`
}

func (p Preset) String() string {
	return fmt.Sprintf("%s (salt: '%s', iterations: %d)", p.Name, p.Salt, p.Iterations)
}

// DefaultPresets returns the NSEC3 configurations commonly seen on public DNS providers, in batch order
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "No salt, no iterations", Salt: "", Iterations: 0},
		{Name: "Google Cloud DNS", Salt: "DEADBEEF", Iterations: 5},
		{Name: "AWS Route53", Salt: "CAFEBABE", Iterations: 10},
		{Name: "Cloudflare minimal", Salt: "00", Iterations: 0},
		{Name: "Light security", Salt: "AABBCCDD", Iterations: 3},
		{Name: "Medium security", Salt: "12345678", Iterations: 5},
		{Name: "High security", Salt: "FEDCBA98", Iterations: 10},
		{Name: "Very high security", Salt: "FFFFFFFF", Iterations: 15},
	}
}

// Config main configuration
type Config struct {
	Domain     string     `yaml:"domain"`
	Wordlist   string     `yaml:"wordlist"`
	Salt       string     `yaml:"salt" default:""`
	Iterations uint32     `yaml:"iterations" default:"0"`
	Mode       HashMode   `yaml:"mode" default:"text"`
	Output     string     `yaml:"output" default:"output"`
	Workers    int        `yaml:"workers" default:"0"`
	Strict     bool       `yaml:"strict" default:"false"`
	Presets    []Preset   `yaml:"presets"`
	Log        log.Config `yaml:"log"`
	Redis      Redis      `yaml:"redis"`
	Database   Database   `yaml:"database"`
	Metrics    Metrics    `yaml:"metrics"`
}

// NewConfig returns the default configuration, overlaid with the YAML file at path if one is given
func NewConfig(path string) (*Config, error) {
	cfg := Config{}

	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("can't apply default values: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("can't read config file: %w", err)
		}

		if err := unmarshalConfig(data, &cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.Presets) == 0 {
		cfg.Presets = DefaultPresets()
	}

	return &cfg, nil
}

func unmarshalConfig(data []byte, cfg *Config) error {
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return fmt.Errorf("wrong file structure: %w", err)
	}

	return nil
}

// Validate reports every problem preventing a generation run at once
func (c *Config) Validate() error {
	var errs *multierror.Error

	if c.Domain == "" {
		errs = multierror.Append(errs, errors.New("domain is required"))
	} else if _, ok := dns.IsDomainName(c.Domain); !ok {
		errs = multierror.Append(errs, fmt.Errorf("'%s' is not a valid domain name", c.Domain))
	}

	if c.Wordlist == "" {
		errs = multierror.Append(errs, errors.New("wordlist is required"))
	}

	if c.Output == "" {
		errs = multierror.Append(errs, errors.New("output directory must not be empty"))
	}

	if c.Mode != HashModeText && c.Mode != HashModeWire {
		errs = multierror.Append(errs, fmt.Errorf("invalid mode %s", c.Mode))
	}

	if c.Workers < 0 {
		errs = multierror.Append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}

	if c.Mode == HashModeWire {
		if c.Iterations > nsec3.MaxWireIterations {
			errs = multierror.Append(errs, fmt.Errorf("iterations %d exceed %d allowed in wire mode",
				c.Iterations, nsec3.MaxWireIterations))
		}

		for _, p := range c.Presets {
			if p.Iterations > nsec3.MaxWireIterations {
				errs = multierror.Append(errs, fmt.Errorf("preset '%s': iterations %d exceed %d allowed in wire mode",
					p.Name, p.Iterations, nsec3.MaxWireIterations))
			}
		}
	}

	for i, p := range c.Presets {
		if p.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("preset #%d has no name", i+1))
		}
	}

	if c.Redis.IsEnabled() && c.Redis.ConnectionAttempts < 1 {
		errs = multierror.Append(errs, errors.New("redis connectionAttempts must be at least 1"))
	}

	if c.Database.IsEnabled() {
		if c.Database.Target == "" {
			errs = multierror.Append(errs, fmt.Errorf("database type %s requires a target", c.Database.Type))
		}

		if c.Database.BatchSize < 1 {
			errs = multierror.Append(errs, errors.New("database batchSize must be at least 1"))
		}
	}

	return errs.ErrorOrNil()
}

// LogConfig prints the effective configuration
func (c *Config) LogConfig(logger *logrus.Entry) {
	logger.Infof("domain: %s", c.Domain)
	logger.Infof("wordlist: %s", c.Wordlist)
	logger.Infof("salt: '%s'", c.Salt)
	logger.Infof("iterations: %d", c.Iterations)
	logger.Infof("mode: %s", c.Mode)
	logger.Infof("output: %s", c.Output)

	if c.Workers > 0 {
		logger.Infof("workers: %d", c.Workers)
	} else {
		logger.Info("workers: auto")
	}

	logger.Debugf("strict: %t", c.Strict)
	logger.Debugf("presets: %d", len(c.Presets))

	for _, p := range c.Presets {
		logger.Debugf("  - %s", p)
	}

	logSection(logger, "redis", &c.Redis)
	logSection(logger, "database", &c.Database)
	logSection(logger, "metrics", &c.Metrics)
}

type configurable interface {
	IsEnabled() bool
	LogConfig(*logrus.Entry)
}

func logSection(logger *logrus.Entry, name string, c configurable) {
	if !c.IsEnabled() {
		logger.Infof("%s: disabled", name)

		return
	}

	logger.Infof("%s:", name)
	c.LogConfig(logger.WithField("section", name))
}
