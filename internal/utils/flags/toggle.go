package flags

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeNameConstant         = "bool"
	toggleTrueLiteralConstant          = "true"
	toggleFalseLiteralConstant         = "false"
	toggleYesLiteralConstant           = "yes"
	toggleNoLiteralConstant            = "no"
	toggleOnLiteralConstant            = "on"
	toggleOffLiteralConstant           = "off"
	commandTextTerminatorConstant      = "--"
	longFlagPrefixConstant             = "--"
	flagPrefixConstant                 = "-"
	assignmentSeparatorConstant        = "="
	usageSeparatorConstant             = " "
	enabledDefaultPlaceholderConstant  = "<YES|no>"
	disabledDefaultPlaceholderConstant = "<yes|NO>"
	invalidToggleValueTemplateConstant = "invalid toggle value %q"
)

// toggleLiteralValues maps each accepted spelling to its boolean meaning.
var toggleLiteralValues = map[string]bool{
	toggleTrueLiteralConstant:  true,
	toggleYesLiteralConstant:   true,
	toggleOnLiteralConstant:    true,
	toggleFalseLiteralConstant: false,
	toggleNoLiteralConstant:    false,
	toggleOffLiteralConstant:   false,
}

var (
	registeredToggleNames     = map[string]struct{}{}
	registeredToggleNamesLock sync.RWMutex
)

// toggleValue stores the parsed state of a single yes/no flag.
type toggleValue struct {
	enabled bool
}

// Set parses rawValue case-insensitively against the accepted spellings.
func (value *toggleValue) Set(rawValue string) error {
	parsedValue, recognized := toggleLiteralValues[strings.ToLower(strings.TrimSpace(rawValue))]
	if !recognized {
		return fmt.Errorf(invalidToggleValueTemplateConstant, rawValue)
	}

	value.enabled = parsedValue

	return nil
}

// String reports the canonical true/false spelling of the current state.
func (value *toggleValue) String() string {
	if value.enabled {
		return toggleTrueLiteralConstant
	}

	return toggleFalseLiteralConstant
}

// Type identifies the flag as a boolean so pflag bool lookups keep working.
func (value *toggleValue) Type() string {
	return toggleFlagTypeNameConstant
}

// AddToggleFlag registers name as a boolean flag that accepts the yes/no style
// spellings true/false, yes/no, and on/off in any letter case. A bare --name
// enables the toggle.
func AddToggleFlag(flagSet *pflag.FlagSet, name string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	registeredFlag := flagSet.VarPF(&toggleValue{enabled: defaultValue}, name, "", formatToggleUsage(usage, defaultValue))
	registeredFlag.NoOptDefVal = toggleTrueLiteralConstant

	registeredToggleNamesLock.Lock()
	registeredToggleNames[name] = struct{}{}
	registeredToggleNamesLock.Unlock()
}

// NormalizeToggleArguments rewrites "--name value" into "--name=value" for
// registered toggles so pflag does not read the spelling as a positional
// argument. Arguments after the -- terminator belong to the command being run
// and pass through untouched.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalizedArguments := make([]string, 0, len(arguments))
	for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex++ {
		currentArgument := arguments[argumentIndex]

		if currentArgument == commandTextTerminatorConstant {
			normalizedArguments = append(normalizedArguments, arguments[argumentIndex:]...)
			break
		}

		if !isDetachedToggleFlag(currentArgument) {
			normalizedArguments = append(normalizedArguments, currentArgument)
			continue
		}

		valueIndex := argumentIndex + 1
		if valueIndex == len(arguments) || strings.HasPrefix(arguments[valueIndex], flagPrefixConstant) {
			normalizedArguments = append(normalizedArguments, currentArgument)
			continue
		}

		normalizedArguments = append(normalizedArguments, currentArgument+assignmentSeparatorConstant+arguments[valueIndex])
		argumentIndex = valueIndex
	}

	return normalizedArguments
}

// isDetachedToggleFlag reports whether the argument names a registered toggle
// without an inline =value assignment.
func isDetachedToggleFlag(argument string) bool {
	flagName, isLongFlag := strings.CutPrefix(argument, longFlagPrefixConstant)
	if !isLongFlag || strings.Contains(flagName, assignmentSeparatorConstant) {
		return false
	}

	registeredToggleNamesLock.RLock()
	defer registeredToggleNamesLock.RUnlock()

	_, registered := registeredToggleNames[flagName]

	return registered
}

// formatToggleUsage appends the accepted value range to the usage text with
// the default side spelled uppercase.
func formatToggleUsage(usage string, defaultValue bool) string {
	placeholder := disabledDefaultPlaceholderConstant
	if defaultValue {
		placeholder = enabledDefaultPlaceholderConstant
	}

	trimmedUsage := strings.TrimSpace(usage)
	if len(trimmedUsage) == 0 {
		return placeholder
	}

	return trimmedUsage + usageSeparatorConstant + placeholder
}
