package utils

import (
	"io"
	"sync"
)

type flushableWriter interface {
	Flush() error
}

type syncableWriter interface {
	Sync() error
}

// FlushingWriter pushes every write through to the terminal immediately. Live output
// sinks wrap stdout and stderr with it so progress from a long-running command is
// visible while the attempt is still in flight.
type FlushingWriter struct {
	destination io.Writer
	writeGuard  sync.Mutex
}

// NewFlushingWriter wraps the provided writer, flushing or syncing it after each write
// when the writer supports either. A nil writer yields nil; an already wrapped writer
// is returned unchanged.
func NewFlushingWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return nil
	}
	if _, alreadyWrapped := writer.(*FlushingWriter); alreadyWrapped {
		return writer
	}
	return &FlushingWriter{destination: writer}
}

// Write delegates to the underlying writer and forces buffered content out. The guard
// serializes interleaved stdout/stderr chunks arriving from the stream copier goroutines.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.destination == nil {
		return 0, nil
	}

	flushingWriter.writeGuard.Lock()
	defer flushingWriter.writeGuard.Unlock()

	bytesWritten, writeError := flushingWriter.destination.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}

	switch destination := flushingWriter.destination.(type) {
	case flushableWriter:
		if flushError := destination.Flush(); flushError != nil {
			return bytesWritten, flushError
		}
	case syncableWriter:
		// Terminal file descriptors commonly reject Sync; writes reached the fd already.
		_ = destination.Sync()
	}

	return bytesWritten, nil
}
