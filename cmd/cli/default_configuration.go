package cli

import _ "embed"

// The embedded defaults ship the runner's baseline settings (log level/format and
// the runner section) so cement works without any configuration file on disk.
//
//go:embed default_config.yaml
var defaultConfigurationYAML []byte

// EmbeddedDefaultConfiguration returns a copy of the embedded default configuration
// data along with its configuration type identifier.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	configurationCopy := make([]byte, len(defaultConfigurationYAML))
	copy(configurationCopy, defaultConfigurationYAML)
	return configurationCopy, configurationTypeConstant
}
