package shellrunner

const (
	loggerNotConfiguredMessageConstant = "logger not configured"

	processCancelledMessageConstant          = "process cancelled before completion"
	processAbortedTemplateConstant           = "process aborted: %w"
	processFaultTemplateConstant             = "unable to run %s: %v"
	processCancellationCauseTemplateConstant = "%w: %v"

	timeoutNoticeTemplateConstant     = "Running timeout at %s for command %s in %s"
	timeoutNoticeLineTemplateConstant = timeoutNoticeTemplateConstant + newlineConstant
	abortNoticeTemplateConstant       = "Failed to run command %s in %s: %v"
	newlineConstant                   = "\n"

	attemptCompletedMessageConstant = "command completed"
	attemptTimedOutMessageConstant  = "command timed out"
	attemptAbortedMessageConstant   = "command aborted"
	attemptRetriedMessageConstant   = "command retried"

	logFieldAttemptIDConstant           = "attempt_id"
	logFieldCommandConstant             = "command"
	logFieldDirectoryConstant           = "directory"
	logFieldElapsedMillisecondsConstant = "elapsed_ms"
	logFieldExitCodeConstant            = "exit_code"
	logFieldTimeoutConstant             = "timeout"
	logFieldRetryStrategyConstant       = "retry_strategy"
)
