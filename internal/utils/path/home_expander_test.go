package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/levdimov/cement/internal/utils/path"
)

const (
	testHomeDirectoryConstant        = "/home/builder"
	testRelativeSegmentConstant      = "project"
	testUntouchedPathConstant        = "plain/relative/path"
	testTildeUserPathConstant        = "~builder/project"
	testLookupFailureMessageConstant = "home directory unavailable"
)

func TestHomeExpanderExpandsTildePrefixes(t *testing.T) {
	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
	}{
		{name: "BareTilde", candidatePath: "~", expectedPath: testHomeDirectoryConstant},
		{name: "TildeWithSegment", candidatePath: "~/" + testRelativeSegmentConstant, expectedPath: filepath.Join(testHomeDirectoryConstant, testRelativeSegmentConstant)},
		{name: "PlainPathUnchanged", candidatePath: testUntouchedPathConstant, expectedPath: testUntouchedPathConstant},
		{name: "EmptyPathUnchanged", candidatePath: "", expectedPath: ""},
		{name: "NamedUserUnchanged", candidatePath: testTildeUserPathConstant, expectedPath: testTildeUserPathConstant},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
				return testHomeDirectoryConstant, nil
			})

			require.Equal(t, testCase.expectedPath, expander.Expand(testCase.candidatePath))
		})
	}
}

func TestHomeExpanderKeepsPathWhenLookupFails(t *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New(testLookupFailureMessageConstant)
	})

	require.Equal(t, "~/"+testRelativeSegmentConstant, expander.Expand("~/"+testRelativeSegmentConstant))
}

func TestHomeExpanderResolvesHomeDirectoryOnce(t *testing.T) {
	lookupCount := 0
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		lookupCount++
		return testHomeDirectoryConstant, nil
	})

	_ = expander.Expand("~/" + testRelativeSegmentConstant)
	_ = expander.Expand("~")

	require.Equal(t, 1, lookupCount)
}
