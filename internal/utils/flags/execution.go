// Package flags provides helpers for declaring and normalizing the
// command-line flags shared by cement commands.
package flags

import (
	"github.com/spf13/cobra"
)

// ExecutionFlagDefinition captures a single execution flag's configuration.
type ExecutionFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Default   bool
	Enabled   bool
}

// BindExecutionFlags attaches the enabled execution flags to the provided
// command using persistent scope.
func BindExecutionFlags(command *cobra.Command, definitions ...ExecutionFlagDefinition) {
	if command == nil {
		return
	}

	persistentFlagSet := command.PersistentFlags()
	for _, definition := range definitions {
		if !definition.Enabled {
			continue
		}
		if len(definition.Name) == 0 {
			continue
		}

		if len(definition.Shorthand) > 0 {
			persistentFlagSet.BoolP(definition.Name, definition.Shorthand, definition.Default, definition.Usage)
			continue
		}
		persistentFlagSet.Bool(definition.Name, definition.Default, definition.Usage)
	}
}
