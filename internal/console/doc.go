// Package console renders user-facing warning and error messages, keeping
// direct terminal feedback separate from the structured diagnostic log.
package console
