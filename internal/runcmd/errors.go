package runcmd

import "fmt"

const exitCodeErrorTemplateConstant = "command exited with code %d"

// ExitCodeError carries the non-zero exit code of a finished command so the
// process can terminate with the same code.
type ExitCodeError struct {
	Code int
}

// Error implements error.
func (exitError *ExitCodeError) Error() string {
	return fmt.Sprintf(exitCodeErrorTemplateConstant, exitError.Code)
}
