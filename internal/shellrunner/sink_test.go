package shellrunner_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/levdimov/cement/internal/shellrunner"
)

const (
	testFirstChunkConstant     = "first "
	testSecondChunkConstant    = "second"
	testDiscardedChunkConstant = "dropped"
)

func TestWriterSinkAppendsChunksInOrder(testInstance *testing.T) {
	var destination bytes.Buffer
	writerSink := shellrunner.NewWriterSink(&destination)

	writerSink.Append(testFirstChunkConstant)
	writerSink.Append(testSecondChunkConstant)

	require.Equal(testInstance, testFirstChunkConstant+testSecondChunkConstant, destination.String())
}

func TestWriterSinkToleratesMissingDestination(testInstance *testing.T) {
	writerSink := shellrunner.NewWriterSink(nil)
	require.NotPanics(testInstance, func() {
		writerSink.Append(testDiscardedChunkConstant)
	})
}

func TestNopStreamSinkDiscardsChunks(testInstance *testing.T) {
	require.NotPanics(testInstance, func() {
		shellrunner.NopStreamSink{}.Append(testDiscardedChunkConstant)
	})
}
