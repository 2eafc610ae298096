package shellrunner

import (
	"fmt"
	"strings"
)

const (
	retryStrategyNoneNameConstant              = "none"
	retryStrategyIfTimeoutNameConstant         = "if-timeout"
	retryStrategyIfTimeoutOrFailedNameConstant = "if-timeout-or-failed"
	unknownRetryStrategyTemplateConstant       = "unsupported retry strategy %q (supported: %s)"
	retryStrategyNamesSeparatorConstant        = ", "
)

// RetryStrategy determines whether a finished attempt is run again.
type RetryStrategy string

// Supported retry strategies.
const (
	// RetryStrategyNone never retries.
	RetryStrategyNone RetryStrategy = RetryStrategy(retryStrategyNoneNameConstant)
	// RetryStrategyIfTimeout retries only when the previous attempt timed out.
	RetryStrategyIfTimeout RetryStrategy = RetryStrategy(retryStrategyIfTimeoutNameConstant)
	// RetryStrategyIfTimeoutOrFailed retries when the previous attempt timed
	// out or returned a non-zero exit code.
	RetryStrategyIfTimeoutOrFailed RetryStrategy = RetryStrategy(retryStrategyIfTimeoutOrFailedNameConstant)
)

// String returns the canonical strategy name.
func (strategy RetryStrategy) String() string {
	return string(strategy)
}

// RetryStrategyNames lists the canonical names of every supported strategy.
func RetryStrategyNames() []string {
	return []string{
		retryStrategyNoneNameConstant,
		retryStrategyIfTimeoutNameConstant,
		retryStrategyIfTimeoutOrFailedNameConstant,
	}
}

// ParseRetryStrategy maps a textual strategy name onto a supported strategy.
func ParseRetryStrategy(candidate string) (RetryStrategy, error) {
	normalizedCandidate := strings.ToLower(strings.TrimSpace(candidate))
	switch normalizedCandidate {
	case retryStrategyNoneNameConstant:
		return RetryStrategyNone, nil
	case retryStrategyIfTimeoutNameConstant:
		return RetryStrategyIfTimeout, nil
	case retryStrategyIfTimeoutOrFailedNameConstant:
		return RetryStrategyIfTimeoutOrFailed, nil
	}

	return "", fmt.Errorf(
		unknownRetryStrategyTemplateConstant,
		candidate,
		strings.Join(RetryStrategyNames(), retryStrategyNamesSeparatorConstant),
	)
}
