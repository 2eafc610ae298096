package platform

import "runtime"

const (
	unixFamilyNameConstant    = "unix"
	windowsFamilyNameConstant = "windows"

	unixShellInterpreterPathConstant    = "/bin/bash"
	windowsShellInterpreterPathConstant = "cmd"

	unixShellCommandFlagConstant              = "-lc"
	windowsShellDisableAutoRunFlagConstant    = "/D"
	windowsShellRunAndTerminateFlagConstant   = "/C"
	windowsOperatingSystemIdentifierConstant  = "windows"
	expectedInvocationArgumentPaddingConstant = 1
)

// Family identifies an operating system family for shell selection purposes.
type Family string

// Supported operating system families.
const (
	FamilyUnix    Family = Family(unixFamilyNameConstant)
	FamilyWindows Family = Family(windowsFamilyNameConstant)
)

// HostProbe answers whether the host operating system is Unix-like.
type HostProbe interface {
	IsUnixLike() bool
}

// RuntimeHostProbe implements HostProbe from the compiled target operating system.
type RuntimeHostProbe struct{}

// NewRuntimeHostProbe constructs a probe backed by runtime.GOOS.
func NewRuntimeHostProbe() RuntimeHostProbe {
	return RuntimeHostProbe{}
}

// IsUnixLike reports true for every target except Windows.
func (RuntimeHostProbe) IsUnixLike() bool {
	return runtime.GOOS != windowsOperatingSystemIdentifierConstant
}

// ShellProfile describes the interpreter binary and flag sequence used to pass
// a command string for non-interactive execution.
type ShellProfile struct {
	InterpreterPath string
	CommandFlags    []string
}

// Invocation is a fully resolved interpreter call carrying the command text as
// its final argument.
type Invocation struct {
	InterpreterPath string
	Arguments       []string
}

var shellProfilesByFamily = map[Family]ShellProfile{
	FamilyUnix: {
		InterpreterPath: unixShellInterpreterPathConstant,
		CommandFlags:    []string{unixShellCommandFlagConstant},
	},
	FamilyWindows: {
		InterpreterPath: windowsShellInterpreterPathConstant,
		CommandFlags:    []string{windowsShellDisableAutoRunFlagConstant, windowsShellRunAndTerminateFlagConstant},
	},
}

// DetectFamily maps the probe answer onto a supported family.
func DetectFamily(probe HostProbe) Family {
	if probe == nil || probe.IsUnixLike() {
		return FamilyUnix
	}
	return FamilyWindows
}

// ProfileForFamily returns the shell profile registered for the supplied
// family, falling back to the Unix profile for unknown families.
func ProfileForFamily(family Family) ShellProfile {
	profile, profileExists := shellProfilesByFamily[family]
	if !profileExists {
		return shellProfilesByFamily[FamilyUnix]
	}
	return profile
}

// BuildInvocation resolves the shell profile for the family and appends the
// command text as the single trailing argument after the profile flags.
func BuildInvocation(family Family, commandText string) Invocation {
	profile := ProfileForFamily(family)

	arguments := make([]string, 0, len(profile.CommandFlags)+expectedInvocationArgumentPaddingConstant)
	arguments = append(arguments, profile.CommandFlags...)
	arguments = append(arguments, commandText)

	return Invocation{
		InterpreterPath: profile.InterpreterPath,
		Arguments:       arguments,
	}
}
