package shellrunner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/levdimov/cement/internal/platform"
)

type executionRequest struct {
	commandText      string
	workingDirectory string
	timeout          time.Duration
}

type attemptStatus string

const (
	attemptStatusCompleted attemptStatus = "completed"
	attemptStatusTimedOut  attemptStatus = "timed_out"
	attemptStatusFault     attemptStatus = "fault"
	attemptStatusAborted   attemptStatus = "aborted"
)

type attemptResult struct {
	status   attemptStatus
	exitCode int
	elapsed  time.Duration
	failure  error
}

func (runner *ShellRunner) executeOnce(executionContext context.Context, request executionRequest) attemptResult {
	runner.resetAttemptState()

	shellFamily := platform.DetectFamily(runner.hostProbe)
	invocation := platform.BuildInvocation(shellFamily, request.commandText)

	attemptContext, cancelAttempt := context.WithTimeout(executionContext, request.timeout)
	defer cancelAttempt()

	processResult, runError := runner.processRunner.Run(attemptContext, ProcessRequest{
		Invocation:       invocation,
		WorkingDirectory: request.workingDirectory,
		StandardOutput:   newStreamCapture(&runner.outputBuffer, runner.outputSink),
		StandardError:    newStreamCapture(&runner.errorBuffer, runner.errorSink),
	})

	if runError == nil {
		runner.lastOutput.Store(runner.outputBuffer.String())
		return attemptResult{
			status:   attemptStatusCompleted,
			exitCode: processResult.ExitCode,
			elapsed:  processResult.Duration,
		}
	}

	if errors.Is(runError, ErrProcessCancelled) {
		runner.hasTimedOut = true
		fmt.Fprintf(&runner.errorBuffer, timeoutNoticeLineTemplateConstant, request.timeout, request.commandText, request.workingDirectory)
		return attemptResult{
			status:  attemptStatusTimedOut,
			elapsed: processResult.Duration,
			failure: runError,
		}
	}

	var faultError *ProcessFaultError
	if errors.As(runError, &faultError) {
		return attemptResult{
			status:  attemptStatusFault,
			elapsed: processResult.Duration,
			failure: runError,
		}
	}

	return attemptResult{
		status:  attemptStatusAborted,
		elapsed: processResult.Duration,
		failure: runError,
	}
}

func (runner *ShellRunner) runAttempt(executionContext context.Context, request executionRequest) int {
	attemptIdentifier := uuid.NewString()
	result := runner.executeOnce(executionContext, request)

	switch result.status {
	case attemptStatusCompleted:
		runner.logger.Info(
			attemptCompletedMessageConstant,
			zap.String(logFieldAttemptIDConstant, attemptIdentifier),
			zap.String(logFieldCommandConstant, request.commandText),
			zap.String(logFieldDirectoryConstant, request.workingDirectory),
			zap.Int64(logFieldElapsedMillisecondsConstant, result.elapsed.Milliseconds()),
			zap.Int(logFieldExitCodeConstant, result.exitCode),
		)
		return result.exitCode
	case attemptStatusTimedOut:
		runner.logger.Warn(
			attemptTimedOutMessageConstant,
			zap.String(logFieldAttemptIDConstant, attemptIdentifier),
			zap.String(logFieldCommandConstant, request.commandText),
			zap.String(logFieldDirectoryConstant, request.workingDirectory),
			zap.Int64(logFieldElapsedMillisecondsConstant, result.elapsed.Milliseconds()),
			zap.Duration(logFieldTimeoutConstant, request.timeout),
		)
		if request.commandText != RemoteReachabilityProbeCommand {
			runner.console.WriteWarning(fmt.Sprintf(timeoutNoticeTemplateConstant, request.timeout, request.commandText, request.workingDirectory))
		}
		return abnormalAbortExitCode
	case attemptStatusFault:
		return launchFaultExitCode
	default:
		runner.logger.Error(
			attemptAbortedMessageConstant,
			zap.String(logFieldAttemptIDConstant, attemptIdentifier),
			zap.String(logFieldCommandConstant, request.commandText),
			zap.String(logFieldDirectoryConstant, request.workingDirectory),
			zap.Int64(logFieldElapsedMillisecondsConstant, result.elapsed.Milliseconds()),
			zap.Error(result.failure),
		)
		runner.console.WriteError(fmt.Sprintf(abortNoticeTemplateConstant, request.commandText, request.workingDirectory, result.failure))
		return abnormalAbortExitCode
	}
}
