package config

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Redis configures the optional redis mirror of every written artifact
type Redis struct {
	Address            string   `yaml:"address"`
	Username           string   `yaml:"username" default:""`
	Password           string   `yaml:"password" default:""`
	Database           int      `yaml:"database" default:"0"`
	TTL                Duration `yaml:"ttl" default:"0s"`
	ConnectionAttempts int      `yaml:"connectionAttempts" default:"3"`
	ConnectionCooldown Duration `yaml:"connectionCooldown" default:"1s"`
}

// IsEnabled returns true if a redis address is configured
func (c *Redis) IsEnabled() bool {
	return c.Address != ""
}

// LogConfig prints the effective settings
func (c *Redis) LogConfig(logger *logrus.Entry) {
	logger.Info("address: ", c.Address)
	logger.Info("username: ", c.Username)
	logger.Info("password: ", obfuscatePassword(c.Password))
	logger.Info("database: ", c.Database)

	if c.TTL.IsAboveZero() {
		logger.Info("ttl: ", c.TTL)
	} else {
		logger.Info("ttl: none")
	}

	logger.Debug("connectionAttempts: ", c.ConnectionAttempts)
	logger.Debug("connectionCooldown: ", c.ConnectionCooldown)
}

func obfuscatePassword(pass string) string {
	return strings.Repeat("*", len(pass))
}
