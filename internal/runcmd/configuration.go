package runcmd

import (
	"strings"
	"time"

	"github.com/levdimov/cement/internal/shellrunner"
)

const (
	timeoutConfigurationKeyConstant    = "timeout"
	retryConfigurationKeyConstant      = "retry"
	liveOutputConfigurationKeyConstant = "live_output"
)

// Configuration aggregates settings for the run command.
type Configuration struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	Retry      string        `mapstructure:"retry"`
	LiveOutput bool          `mapstructure:"live_output"`
}

// DefaultConfiguration supplies baseline values for the run command. A zero
// timeout defers to the adaptive starting timeout at execution time.
func DefaultConfiguration() Configuration {
	return Configuration{
		Retry:      shellrunner.DefaultRetryStrategy.String(),
		LiveOutput: true,
	}
}

// DefaultConfigurationValues exposes run command defaults keyed beneath the provided configuration root.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		rootKey + "." + timeoutConfigurationKeyConstant:    defaults.Timeout,
		rootKey + "." + retryConfigurationKeyConstant:      defaults.Retry,
		rootKey + "." + liveOutputConfigurationKeyConstant: defaults.LiveOutput,
	}
}

// Sanitize normalizes configured values.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.Retry = strings.ToLower(strings.TrimSpace(configuration.Retry))
	if sanitized.Timeout < 0 {
		sanitized.Timeout = 0
	}
	return sanitized
}
