// Package runcmd exposes the CLI command that executes shell commands
// through the resilient runner.
package runcmd
