// Package shellrunner executes shell commands resiliently: it captures the
// output and error streams of one spawned shell process, enforces a deadline,
// escalates the timeout after observed timeouts, and retries failed or
// timed-out attempts according to a configurable strategy.
//
// ShellRunner is the public entry point. Every failure kind is absorbed inside
// the attempt layer and converted to an integer exit code before it reaches
// the retry loop; callers inspect the returned exit code together with
// Output, Errors, and HasTimedOut to distinguish outcomes.
package shellrunner
