package config

import "github.com/sirupsen/logrus"

// Metrics contains the config values for prometheus
type Metrics struct {
	// Textfile is written in the node_exporter textfile format after the run
	Textfile string `yaml:"textfile"`
}

// IsEnabled returns true if metrics should be exported
func (c *Metrics) IsEnabled() bool {
	return c.Textfile != ""
}

// LogConfig prints the effective settings
func (c *Metrics) LogConfig(logger *logrus.Entry) {
	logger.Infof("textfile: %s", c.Textfile)
}
