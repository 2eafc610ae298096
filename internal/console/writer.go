package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

const (
	warningLabelConstant        = "WARN"
	errorLabelConstant          = "ERROR"
	messageLineTemplateConstant = "%s %s\n"

	warningColorConstant lipgloss.Color = "#f9e2af"
	errorColorConstant   lipgloss.Color = "#f38ba8"
)

var (
	warningLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(warningColorConstant)
	errorLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(errorColorConstant)
)

// Writer prints styled warning and error lines to a terminal destination.
type Writer struct {
	destination io.Writer
	mutex       sync.Mutex
}

// NewWriter wraps the supplied destination, defaulting to standard error.
func NewWriter(destination io.Writer) *Writer {
	if destination == nil {
		destination = os.Stderr
	}
	return &Writer{destination: destination}
}

// WriteWarning prints a single warning line.
func (writer *Writer) WriteWarning(message string) {
	writer.writeLabeledLine(warningLabelStyle.Render(warningLabelConstant), message)
}

// WriteError prints a single error line.
func (writer *Writer) WriteError(message string) {
	writer.writeLabeledLine(errorLabelStyle.Render(errorLabelConstant), message)
}

func (writer *Writer) writeLabeledLine(renderedLabel string, message string) {
	if writer == nil || writer.destination == nil {
		return
	}

	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	fmt.Fprintf(writer.destination, messageLineTemplateConstant, renderedLabel, message)
}
