package shellrunner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/levdimov/cement/internal/console"
	"github.com/levdimov/cement/internal/platform"
)

// Facade defaults applied when callers do not supply their own policy.
const (
	DefaultTimeout       = LongDefaultTimeout
	DefaultRetryStrategy = RetryStrategyIfTimeout
)

const (
	abnormalAbortExitCode            = -1
	launchFaultExitCode              = 1
	successExitCodeConstant          = 0
	currentDirectoryFallbackConstant = "."
	maximumRetryCountConstant        = 2
)

// RemoteReachabilityProbeCommand is the connectivity probe whose timeouts are
// expected during offline operation and therefore kept off the console.
const RemoteReachabilityProbeCommand = "git ls-remote --heads origin"

// ErrLoggerNotConfigured reports a ShellRunner constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ConsolePresenter surfaces human-facing warnings and errors.
type ConsolePresenter interface {
	WriteWarning(message string)
	WriteError(message string)
}

// Dependencies configures a ShellRunner. Logger is required; every other
// field falls back to a process-wide default when nil.
type Dependencies struct {
	Logger        *zap.Logger
	ProcessRunner ProcessRunner
	HostProbe     platform.HostProbe
	Console       ConsolePresenter
	Escalation    *TimeoutEscalation
	LastOutput    *LastOutputCell
	OutputSink    StreamSink
	ErrorSink     StreamSink
}

// ShellRunner executes shell commands with per-attempt timeouts, optional
// retries and captured output. A runner retains the output of its most
// recent command and is not safe for concurrent use.
type ShellRunner struct {
	logger        *zap.Logger
	processRunner ProcessRunner
	hostProbe     platform.HostProbe
	console       ConsolePresenter
	escalation    *TimeoutEscalation
	lastOutput    *LastOutputCell
	outputSink    StreamSink
	errorSink     StreamSink

	outputBuffer bytes.Buffer
	errorBuffer  bytes.Buffer
	hasTimedOut  bool
}

// NewShellRunner validates dependencies and returns a configured runner.
func NewShellRunner(dependencies Dependencies) (*ShellRunner, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.ProcessRunner == nil {
		dependencies.ProcessRunner = NewOSProcessRunner()
	}
	if dependencies.HostProbe == nil {
		dependencies.HostProbe = platform.NewRuntimeHostProbe()
	}
	if dependencies.Console == nil {
		dependencies.Console = console.NewWriter(nil)
	}
	if dependencies.Escalation == nil {
		dependencies.Escalation = SharedTimeoutEscalation
	}
	if dependencies.LastOutput == nil {
		dependencies.LastOutput = SharedLastOutput
	}
	if dependencies.OutputSink == nil {
		dependencies.OutputSink = NopStreamSink{}
	}
	if dependencies.ErrorSink == nil {
		dependencies.ErrorSink = NopStreamSink{}
	}

	return &ShellRunner{
		logger:        dependencies.Logger,
		processRunner: dependencies.ProcessRunner,
		hostProbe:     dependencies.HostProbe,
		console:       dependencies.Console,
		escalation:    dependencies.Escalation,
		lastOutput:    dependencies.LastOutput,
		outputSink:    dependencies.OutputSink,
		errorSink:     dependencies.ErrorSink,
	}, nil
}

// Run executes commandText in the current working directory with the default
// timeout and retry strategy.
func (runner *ShellRunner) Run(executionContext context.Context, commandText string) int {
	return runner.RunInDirectoryWithPolicy(executionContext, currentWorkingDirectory(), commandText, DefaultTimeout, DefaultRetryStrategy)
}

// RunWithPolicy executes commandText in the current working directory with
// the supplied timeout and retry strategy.
func (runner *ShellRunner) RunWithPolicy(executionContext context.Context, commandText string, timeout time.Duration, strategy RetryStrategy) int {
	return runner.RunInDirectoryWithPolicy(executionContext, currentWorkingDirectory(), commandText, timeout, strategy)
}

// RunInDirectory executes commandText in workingDirectory with the default
// timeout and retry strategy.
func (runner *ShellRunner) RunInDirectory(executionContext context.Context, workingDirectory string, commandText string) int {
	return runner.RunInDirectoryWithPolicy(executionContext, workingDirectory, commandText, DefaultTimeout, DefaultRetryStrategy)
}

// RunInDirectoryWithPolicy executes commandText in workingDirectory with the
// supplied timeout and retry strategy and returns the final exit code.
func (runner *ShellRunner) RunInDirectoryWithPolicy(executionContext context.Context, workingDirectory string, commandText string, timeout time.Duration, strategy RetryStrategy) int {
	return runner.runWithRetries(executionContext, executionRequest{
		commandText:      commandText,
		workingDirectory: workingDirectory,
		timeout:          timeout,
	}, strategy)
}

// Output returns the standard output captured from the last run.
func (runner *ShellRunner) Output() string {
	return runner.outputBuffer.String()
}

// Errors returns the standard error captured from the last run, including
// any appended timeout notice.
func (runner *ShellRunner) Errors() string {
	return runner.errorBuffer.String()
}

// HasTimedOut reports whether the most recent attempt timed out.
func (runner *ShellRunner) HasTimedOut() bool {
	return runner.hasTimedOut
}

// SetOutputSink replaces the standard output sink for subsequent runs.
func (runner *ShellRunner) SetOutputSink(sink StreamSink) {
	if sink == nil {
		sink = NopStreamSink{}
	}
	runner.outputSink = sink
}

// SetErrorSink replaces the standard error sink for subsequent runs.
func (runner *ShellRunner) SetErrorSink(sink StreamSink) {
	if sink == nil {
		sink = NopStreamSink{}
	}
	runner.errorSink = sink
}

func (runner *ShellRunner) resetAttemptState() {
	runner.outputBuffer.Reset()
	runner.errorBuffer.Reset()
	runner.hasTimedOut = false
}

func (runner *ShellRunner) runWithRetries(executionContext context.Context, request executionRequest, strategy RetryStrategy) int {
	exitCode := runner.runAttempt(executionContext, request)

	remainingRetries := maximumRetryCountConstant
	for remainingRetries > 0 && shouldRetry(strategy, exitCode, runner.hasTimedOut) {
		remainingRetries--
		if runner.hasTimedOut {
			request.timeout = runner.escalation.Increase(request.timeout)
		}
		exitCode = runner.runAttempt(executionContext, request)
		runner.logger.Debug(
			attemptRetriedMessageConstant,
			zap.String(logFieldCommandConstant, request.commandText),
			zap.String(logFieldDirectoryConstant, request.workingDirectory),
			zap.Int(logFieldExitCodeConstant, exitCode),
			zap.String(logFieldRetryStrategyConstant, strategy.String()),
		)
	}

	return exitCode
}

func shouldRetry(strategy RetryStrategy, exitCode int, hasTimedOut bool) bool {
	switch strategy {
	case RetryStrategyIfTimeout:
		return hasTimedOut
	case RetryStrategyIfTimeoutOrFailed:
		return hasTimedOut || exitCode != successExitCodeConstant
	default:
		return false
	}
}

func currentWorkingDirectory() string {
	workingDirectory, lookupError := os.Getwd()
	if lookupError != nil {
		return currentDirectoryFallbackConstant
	}
	return workingDirectory
}
