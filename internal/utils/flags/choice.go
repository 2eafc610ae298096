package flags

import (
	"strings"
)

const (
	choicePlaceholderPrefix = "`<"
	choicePlaceholderSuffix = ">`"
	choiceSeparatorLiteral  = "|"
	choiceUsageSeparator    = " "
)

// FormatChoiceUsage builds flag usage text enumerating the accepted values inside a
// backticked placeholder, with the default value upper-cased. The retry strategy and
// logging flags use it so help output shows the full vocabulary.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	usageBuilder := &strings.Builder{}
	usageBuilder.WriteString(choicePlaceholderPrefix)

	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	seenChoices := make(map[string]struct{}, len(choices))
	firstChoiceWritten := false

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, alreadySeen := seenChoices[normalizedChoice]; alreadySeen {
			continue
		}
		seenChoices[normalizedChoice] = struct{}{}

		if firstChoiceWritten {
			usageBuilder.WriteString(choiceSeparatorLiteral)
		}
		firstChoiceWritten = true

		if normalizedChoice == normalizedDefault {
			usageBuilder.WriteString(strings.ToUpper(trimmedChoice))
			continue
		}
		usageBuilder.WriteString(trimmedChoice)
	}

	usageBuilder.WriteString(choicePlaceholderSuffix)

	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) > 0 {
		usageBuilder.WriteString(choiceUsageSeparator)
		usageBuilder.WriteString(trimmedDescription)
	}

	return usageBuilder.String()
}
