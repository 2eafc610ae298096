package runcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/levdimov/cement/internal/platform"
	"github.com/levdimov/cement/internal/shellrunner"
	"github.com/levdimov/cement/internal/utils"
	flagutils "github.com/levdimov/cement/internal/utils/flags"
	pathutils "github.com/levdimov/cement/internal/utils/path"
)

const (
	runCommandUseConstant                = "run [flags] -- <command> [arguments...]"
	runCommandShortDescriptionConstant   = "Execute a shell command with timeouts and retries"
	runCommandLongDescriptionConstant    = "run executes the given command through the host shell, enforcing a per-attempt timeout and the configured retry strategy. The process exits with the command's own exit code."
	missingCommandErrorMessageConstant   = "run requires a command to execute"
	directoryFlagNameConstant            = "directory"
	directoryFlagShorthandConstant       = "d"
	directoryFlagDescriptionConstant     = "Working directory for the command"
	timeoutFlagNameConstant              = "timeout"
	timeoutFlagShorthandConstant         = "t"
	timeoutFlagDescriptionConstant       = "Maximum duration of a single attempt (0s selects the adaptive default)"
	retryFlagNameConstant                = "retry"
	retryFlagShorthandConstant           = "r"
	retryFlagDescriptionConstant         = "Retry strategy applied after failed attempts"
	liveOutputFlagNameConstant           = "live-output"
	liveOutputFlagDescriptionConstant    = "Stream command output while it runs"
	dryRunFlagNameConstant               = "dry-run"
	dryRunFlagDescriptionConstant        = "Print the resolved invocation without executing it"
	configurationFileFieldConstant       = "config_file"
	configurationFileMessageConstant     = "using configuration file"
	invalidRetryStrategyTemplateConstant = "invalid retry strategy: %w"
	dryRunPlanTemplateConstant           = "would run %s %s in %s (timeout %s, retry %s)\n"
	currentDirectoryDisplayConstant      = "."
)

var (
	runCommandHomeDirectoryExpander = pathutils.NewHomeExpander()
	runCommandContextAccessor       = utils.NewCommandContextAccessor()
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current run command configuration.
type ConfigurationProvider func() Configuration

// CommandRunner executes shell commands and exposes their captured streams.
type CommandRunner interface {
	RunWithPolicy(executionContext context.Context, commandText string, timeout time.Duration, strategy shellrunner.RetryStrategy) int
	RunInDirectoryWithPolicy(executionContext context.Context, workingDirectory string, commandText string, timeout time.Duration, strategy shellrunner.RetryStrategy) int
	SetOutputSink(sink shellrunner.StreamSink)
	SetErrorSink(sink shellrunner.StreamSink)
	Output() string
	Errors() string
}

// RunnerResolver creates command runners for the run command.
type RunnerResolver interface {
	Resolve(logger *zap.Logger) (CommandRunner, error)
}

// CommandBuilder assembles the run command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	RunnerResolver        RunnerResolver
	Escalation            *shellrunner.TimeoutEscalation
	OutputWriter          io.Writer
	ErrorWriter           io.Writer
}

type commandOptions struct {
	CommandText      string
	WorkingDirectory string
	Timeout          time.Duration
	Strategy         shellrunner.RetryStrategy
	LiveOutput       bool
	DryRun           bool
}

// Build constructs the run command with its flags.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	runCommand := &cobra.Command{
		Use:   runCommandUseConstant,
		Short: runCommandShortDescriptionConstant,
		Long:  runCommandLongDescriptionConstant,
		RunE:  builder.run,
	}

	runCommand.Flags().StringP(directoryFlagNameConstant, directoryFlagShorthandConstant, "", directoryFlagDescriptionConstant)
	runCommand.Flags().DurationP(timeoutFlagNameConstant, timeoutFlagShorthandConstant, 0, timeoutFlagDescriptionConstant)
	runCommand.Flags().StringP(
		retryFlagNameConstant,
		retryFlagShorthandConstant,
		"",
		flagutils.FormatChoiceUsage(shellrunner.DefaultRetryStrategy.String(), shellrunner.RetryStrategyNames(), retryFlagDescriptionConstant),
	)
	flagutils.AddToggleFlag(runCommand.Flags(), liveOutputFlagNameConstant, true, liveOutputFlagDescriptionConstant)
	flagutils.BindExecutionFlags(runCommand, flagutils.ExecutionFlagDefinition{
		Name:    dryRunFlagNameConstant,
		Usage:   dryRunFlagDescriptionConstant,
		Enabled: true,
	})

	return runCommand, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	if options.DryRun {
		return builder.describePlan(options)
	}

	logger := builder.resolveLogger()

	configurationFilePath, configurationFileKnown := runCommandContextAccessor.ConfigurationFilePath(command.Context())
	if configurationFileKnown && len(configurationFilePath) > 0 {
		logger.Debug(configurationFileMessageConstant, zap.String(configurationFileFieldConstant, configurationFilePath))
	}

	runner, runnerError := builder.resolveRunner(logger)
	if runnerError != nil {
		return runnerError
	}

	if options.LiveOutput {
		runner.SetOutputSink(shellrunner.NewWriterSink(utils.NewFlushingWriter(builder.resolveOutputWriter())))
		runner.SetErrorSink(shellrunner.NewWriterSink(utils.NewFlushingWriter(builder.resolveErrorWriter())))
	}

	exitCode := builder.execute(command.Context(), runner, options)

	if !options.LiveOutput {
		builder.replayCapturedStreams(runner)
	}

	if exitCode != 0 {
		return &ExitCodeError{Code: exitCode}
	}

	return nil
}

func (builder *CommandBuilder) execute(executionContext context.Context, runner CommandRunner, options commandOptions) int {
	if len(options.WorkingDirectory) > 0 {
		return runner.RunInDirectoryWithPolicy(executionContext, options.WorkingDirectory, options.CommandText, options.Timeout, options.Strategy)
	}
	return runner.RunWithPolicy(executionContext, options.CommandText, options.Timeout, options.Strategy)
}

func (builder *CommandBuilder) describePlan(options commandOptions) error {
	shellFamily := platform.DetectFamily(platform.NewRuntimeHostProbe())
	invocation := platform.BuildInvocation(shellFamily, options.CommandText)

	displayDirectory := options.WorkingDirectory
	if len(displayDirectory) == 0 {
		displayDirectory = currentDirectoryDisplayConstant
	}

	_, writeError := fmt.Fprintf(
		builder.resolveOutputWriter(),
		dryRunPlanTemplateConstant,
		invocation.InterpreterPath,
		strings.Join(invocation.Arguments, " "),
		displayDirectory,
		options.Timeout,
		options.Strategy,
	)
	return writeError
}

func (builder *CommandBuilder) replayCapturedStreams(runner CommandRunner) {
	capturedOutput := runner.Output()
	if len(capturedOutput) > 0 {
		_, _ = io.WriteString(builder.resolveOutputWriter(), capturedOutput)
	}

	capturedErrors := runner.Errors()
	if len(capturedErrors) > 0 {
		_, _ = io.WriteString(builder.resolveErrorWriter(), capturedErrors)
	}
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (commandOptions, error) {
	commandText := strings.TrimSpace(strings.Join(arguments, " "))
	if len(commandText) == 0 {
		return commandOptions{}, errors.New(missingCommandErrorMessageConstant)
	}

	configuration := builder.resolveConfiguration()

	directoryFlagValue, directoryFlagError := command.Flags().GetString(directoryFlagNameConstant)
	if directoryFlagError != nil {
		return commandOptions{}, directoryFlagError
	}
	workingDirectory := runCommandHomeDirectoryExpander.Expand(strings.TrimSpace(directoryFlagValue))

	timeoutValue := configuration.Timeout
	if command.Flags().Changed(timeoutFlagNameConstant) {
		flagTimeoutValue, timeoutFlagError := command.Flags().GetDuration(timeoutFlagNameConstant)
		if timeoutFlagError != nil {
			return commandOptions{}, timeoutFlagError
		}
		timeoutValue = flagTimeoutValue
	}
	if timeoutValue <= 0 {
		timeoutValue = builder.resolveEscalation().StartingTimeout()
	}

	retryFlagValue, retryFlagError := command.Flags().GetString(retryFlagNameConstant)
	if retryFlagError != nil {
		return commandOptions{}, retryFlagError
	}
	strategy := shellrunner.DefaultRetryStrategy
	retryName := selectStringValue(retryFlagValue, configuration.Retry)
	if len(retryName) > 0 {
		parsedStrategy, parseError := shellrunner.ParseRetryStrategy(retryName)
		if parseError != nil {
			return commandOptions{}, fmt.Errorf(invalidRetryStrategyTemplateConstant, parseError)
		}
		strategy = parsedStrategy
	}

	liveOutputValue := configuration.LiveOutput
	if command.Flags().Changed(liveOutputFlagNameConstant) {
		flagLiveOutputValue, liveOutputFlagError := command.Flags().GetBool(liveOutputFlagNameConstant)
		if liveOutputFlagError != nil {
			return commandOptions{}, liveOutputFlagError
		}
		liveOutputValue = flagLiveOutputValue
	}

	dryRunValue := false
	if command.Flags().Changed(dryRunFlagNameConstant) {
		flagDryRunValue, dryRunFlagError := command.Flags().GetBool(dryRunFlagNameConstant)
		if dryRunFlagError != nil {
			return commandOptions{}, dryRunFlagError
		}
		dryRunValue = flagDryRunValue
	}

	return commandOptions{
		CommandText:      commandText,
		WorkingDirectory: workingDirectory,
		Timeout:          timeoutValue,
		Strategy:         strategy,
		LiveOutput:       liveOutputValue,
		DryRun:           dryRunValue,
	}, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	configuration := DefaultConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider().Sanitize()
	}
	return configuration
}

func (builder *CommandBuilder) resolveEscalation() *shellrunner.TimeoutEscalation {
	if builder.Escalation != nil {
		return builder.Escalation
	}
	return shellrunner.SharedTimeoutEscalation
}

func (builder *CommandBuilder) resolveRunner(logger *zap.Logger) (CommandRunner, error) {
	if builder.RunnerResolver != nil {
		return builder.RunnerResolver.Resolve(logger)
	}

	return shellrunner.NewShellRunner(shellrunner.Dependencies{
		Logger:     logger,
		Escalation: builder.Escalation,
	})
}

func (builder *CommandBuilder) resolveOutputWriter() io.Writer {
	if builder.OutputWriter != nil {
		return builder.OutputWriter
	}
	return os.Stdout
}

func (builder *CommandBuilder) resolveErrorWriter() io.Writer {
	if builder.ErrorWriter != nil {
		return builder.ErrorWriter
	}
	return os.Stderr
}

func selectStringValue(flagValue string, configurationValue string) string {
	trimmedFlagValue := strings.TrimSpace(flagValue)
	if len(trimmedFlagValue) > 0 {
		return trimmedFlagValue
	}

	return strings.TrimSpace(configurationValue)
}
