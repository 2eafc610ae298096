package shellrunner

import (
	"sync"
	"sync/atomic"
	"time"
)

// Default timeout tiers shared by every runner in the process.
const (
	// ShortDefaultTimeout bounds the first attempt of timeout-sensitive runs.
	ShortDefaultTimeout = 30 * time.Second
	// LongDefaultTimeout bounds escalated attempts and is the facade default.
	LongDefaultTimeout = 10 * time.Minute
)

const startingTimeoutThresholdConstant = 1

// TimeoutEscalation tracks process-wide timeout occurrences and widens
// timeouts for commands that keep running out of time.
type TimeoutEscalation struct {
	timeoutCount atomic.Int64
}

// NewTimeoutEscalation returns an escalation policy with a zero counter.
func NewTimeoutEscalation() *TimeoutEscalation {
	return &TimeoutEscalation{}
}

// Increase records one more timeout and returns the timeout the next attempt
// should use. Timeouts already at or beyond the long tier are kept as-is.
func (escalation *TimeoutEscalation) Increase(previousTimeout time.Duration) time.Duration {
	escalation.timeoutCount.Add(1)
	if previousTimeout < LongDefaultTimeout {
		return LongDefaultTimeout
	}
	return previousTimeout
}

// StartingTimeout picks the initial timeout for a fresh command. Once the
// process has seen more than one timeout the short tier is skipped.
func (escalation *TimeoutEscalation) StartingTimeout() time.Duration {
	if escalation.timeoutCount.Load() > startingTimeoutThresholdConstant {
		return LongDefaultTimeout
	}
	return ShortDefaultTimeout
}

// Reset clears the recorded timeout count.
func (escalation *TimeoutEscalation) Reset() {
	escalation.timeoutCount.Store(0)
}

// LastOutputCell retains the standard output of the most recent successful
// run for callers that inspect it after the fact.
type LastOutputCell struct {
	mutex sync.Mutex
	value string
}

// NewLastOutputCell returns an empty cell.
func NewLastOutputCell() *LastOutputCell {
	return &LastOutputCell{}
}

// Store replaces the retained output.
func (cell *LastOutputCell) Store(output string) {
	cell.mutex.Lock()
	defer cell.mutex.Unlock()
	cell.value = output
}

// Load returns the retained output.
func (cell *LastOutputCell) Load() string {
	cell.mutex.Lock()
	defer cell.mutex.Unlock()
	return cell.value
}

// Process-wide state shared by runners that are not configured with their
// own escalation policy or output cell.
var (
	SharedTimeoutEscalation = NewTimeoutEscalation()
	SharedLastOutput        = NewLastOutputCell()
)
