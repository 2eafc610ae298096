package shellrunner

import (
	"bytes"
	"io"
)

// StreamSink receives command output chunks as the process emits them.
type StreamSink interface {
	Append(chunk string)
}

// NopStreamSink discards every chunk.
type NopStreamSink struct{}

// Append implements StreamSink.
func (NopStreamSink) Append(string) {}

// WriterSink forwards chunks to an io.Writer.
type WriterSink struct {
	destination io.Writer
}

// NewWriterSink wraps the provided writer in a StreamSink. A nil writer
// yields a sink that discards chunks.
func NewWriterSink(destination io.Writer) *WriterSink {
	return &WriterSink{destination: destination}
}

// Append implements StreamSink.
func (sink *WriterSink) Append(chunk string) {
	if sink.destination == nil {
		return
	}
	_, _ = io.WriteString(sink.destination, chunk)
}

// streamCapture accumulates process output in a buffer while mirroring every
// chunk to the configured sink.
type streamCapture struct {
	buffer *bytes.Buffer
	sink   StreamSink
}

func newStreamCapture(buffer *bytes.Buffer, sink StreamSink) *streamCapture {
	return &streamCapture{buffer: buffer, sink: sink}
}

// Write implements io.Writer.
func (capture *streamCapture) Write(data []byte) (int, error) {
	capture.buffer.Write(data)
	if capture.sink != nil {
		capture.sink.Append(string(data))
	}
	return len(data), nil
}
