package utils_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/levdimov/cement/internal/utils"
)

const (
	testFirstChunkConstant  = "first chunk"
	testSecondChunkConstant = "second chunk"
)

type flushRecordingWriter struct {
	buffer     bytes.Buffer
	flushCount int
}

func (writer *flushRecordingWriter) Write(payload []byte) (int, error) {
	return writer.buffer.Write(payload)
}

func (writer *flushRecordingWriter) Flush() error {
	writer.flushCount++
	return nil
}

func TestFlushingWriterFlushesAfterEveryWrite(t *testing.T) {
	recordingWriter := &flushRecordingWriter{}
	flushingWriter := utils.NewFlushingWriter(recordingWriter)

	firstWritten, firstError := flushingWriter.Write([]byte(testFirstChunkConstant))
	require.NoError(t, firstError)
	require.Equal(t, len(testFirstChunkConstant), firstWritten)

	secondWritten, secondError := flushingWriter.Write([]byte(testSecondChunkConstant))
	require.NoError(t, secondError)
	require.Equal(t, len(testSecondChunkConstant), secondWritten)

	require.Equal(t, testFirstChunkConstant+testSecondChunkConstant, recordingWriter.buffer.String())
	require.Equal(t, 2, recordingWriter.flushCount)
}

func TestFlushingWriterPassesThroughPlainWriters(t *testing.T) {
	plainBuffer := &bytes.Buffer{}
	flushingWriter := utils.NewFlushingWriter(plainBuffer)

	written, writeError := flushingWriter.Write([]byte(testFirstChunkConstant))
	require.NoError(t, writeError)
	require.Equal(t, len(testFirstChunkConstant), written)
	require.Equal(t, testFirstChunkConstant, plainBuffer.String())
}

func TestNewFlushingWriterReturnsNilForNilWriter(t *testing.T) {
	require.Nil(t, utils.NewFlushingWriter(nil))
}

func TestNewFlushingWriterAvoidsDoubleWrapping(t *testing.T) {
	flushingWriter := utils.NewFlushingWriter(&bytes.Buffer{})

	require.Same(t, flushingWriter, utils.NewFlushingWriter(flushingWriter))
}
