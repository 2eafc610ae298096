package utils

import "context"

type configurationFilePathContextKey struct{}

// CommandContextAccessor carries resolved configuration metadata through the cobra
// command context, so subcommands can report which file their settings came from
// without reaching back into the loader.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath returns a context carrying the resolved configuration
// file path. A nil parent falls back to the background context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKey{}, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file path stored in the context,
// with false when no path was recorded.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, configurationFilePathAvailable := executionContext.Value(configurationFilePathContextKey{}).(string)
	return configurationFilePath, configurationFilePathAvailable
}
