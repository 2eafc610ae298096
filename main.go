package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/levdimov/cement/cmd/cli"
	"github.com/levdimov/cement/internal/runcmd"
)

const (
	exitErrorTemplateConstant      = "%v\n"
	generalFailureExitCodeConstant = 1
)

// main executes the cement command-line application.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	var exitCodeError *runcmd.ExitCodeError
	if errors.As(executionError, &exitCodeError) {
		os.Exit(exitCodeError.Code)
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	os.Exit(generalFailureExitCodeConstant)
}
