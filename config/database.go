package config

import (
	"github.com/sirupsen/logrus"
)

// Database configures the optional SQL mirror of every written artifact
type Database struct {
	Type             DatabaseType `yaml:"type" default:"none"`
	Target           string       `yaml:"target"`
	BatchSize        int          `yaml:"batchSize" default:"1000"`
	CreationAttempts int          `yaml:"creationAttempts" default:"3"`
	CreationCooldown Duration     `yaml:"creationCooldown" default:"2s"`
}

// IsEnabled returns true if a database type is configured
func (c *Database) IsEnabled() bool {
	return c.Type != DatabaseTypeNone
}

// LogConfig prints the effective settings
func (c *Database) LogConfig(logger *logrus.Entry) {
	logger.Infof("type: %q", c.Type)
	logger.Infof("batchSize: %d", c.BatchSize)
	logger.Debugf("creationAttempts: %d", c.CreationAttempts)
	logger.Debugf("creationCooldown: %s", c.CreationCooldown)
}
