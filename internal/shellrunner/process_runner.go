package shellrunner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/levdimov/cement/internal/platform"
)

const processWaitDelayConstant = 5 * time.Second

// ErrProcessCancelled reports that the process was stopped before it could
// finish, typically because its attempt timeout elapsed.
var ErrProcessCancelled = errors.New(processCancelledMessageConstant)

// ProcessFaultError reports that the shell interpreter could not be launched
// at all, as opposed to launching and then failing.
type ProcessFaultError struct {
	InterpreterPath string
	Cause           error
}

// Error implements error.
func (faultError *ProcessFaultError) Error() string {
	return fmt.Sprintf(processFaultTemplateConstant, faultError.InterpreterPath, faultError.Cause)
}

// Unwrap exposes the underlying launch failure.
func (faultError *ProcessFaultError) Unwrap() error {
	return faultError.Cause
}

// ProcessRequest describes one shell invocation.
type ProcessRequest struct {
	Invocation       platform.Invocation
	WorkingDirectory string
	StandardOutput   io.Writer
	StandardError    io.Writer
}

// ProcessResult reports how a finished process behaved.
type ProcessResult struct {
	ExitCode int
	Duration time.Duration
}

// ProcessRunner starts a shell process and waits for it to finish.
type ProcessRunner interface {
	Run(executionContext context.Context, request ProcessRequest) (ProcessResult, error)
}

// OSProcessRunner runs processes on the host operating system.
type OSProcessRunner struct{}

// NewOSProcessRunner returns an operating system backed process runner.
func NewOSProcessRunner() *OSProcessRunner {
	return &OSProcessRunner{}
}

// Run implements ProcessRunner. Context expiry kills the process and is
// reported as ErrProcessCancelled; launch failures are reported as
// ProcessFaultError; every other completion yields the process exit code.
func (runner *OSProcessRunner) Run(executionContext context.Context, request ProcessRequest) (ProcessResult, error) {
	command := exec.CommandContext(executionContext, request.Invocation.InterpreterPath, request.Invocation.Arguments...)
	if len(request.WorkingDirectory) > 0 {
		command.Dir = request.WorkingDirectory
	}
	command.Stdout = request.StandardOutput
	command.Stderr = request.StandardError
	command.WaitDelay = processWaitDelayConstant

	startedAt := time.Now()
	runError := command.Run()
	elapsedDuration := time.Since(startedAt)

	if runError == nil {
		return ProcessResult{ExitCode: 0, Duration: elapsedDuration}, nil
	}

	contextError := executionContext.Err()
	if errors.Is(contextError, context.DeadlineExceeded) {
		return ProcessResult{Duration: elapsedDuration}, fmt.Errorf(processCancellationCauseTemplateConstant, ErrProcessCancelled, runError)
	}
	if contextError != nil {
		return ProcessResult{Duration: elapsedDuration}, fmt.Errorf(processAbortedTemplateConstant, contextError)
	}

	if errors.Is(runError, exec.ErrWaitDelay) {
		return ProcessResult{ExitCode: command.ProcessState.ExitCode(), Duration: elapsedDuration}, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		return ProcessResult{ExitCode: exitError.ExitCode(), Duration: elapsedDuration}, nil
	}

	return ProcessResult{Duration: elapsedDuration}, &ProcessFaultError{
		InterpreterPath: request.Invocation.InterpreterPath,
		Cause:           runError,
	}
}
