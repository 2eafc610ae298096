package shellrunner_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/levdimov/cement/internal/shellrunner"
)

const (
	testEscalateShortCaseNameConstant    = "short_escalates_to_long"
	testEscalateLongCaseNameConstant     = "long_stays_long"
	testEscalateExtendedCaseNameConstant = "extended_stays_extended"
	testExtendedTimeoutConstant          = 15 * time.Minute
	testEscalationWorkerCountConstant    = 8
	testEscalationIterationCountConstant = 25
	testRetainedOutputConstant           = "captured"
	testReplacedOutputConstant           = "replaced"
)

func TestTimeoutEscalationIncrease(testInstance *testing.T) {
	testCases := []struct {
		name            string
		previousTimeout time.Duration
		expectedTimeout time.Duration
	}{
		{
			name:            testEscalateShortCaseNameConstant,
			previousTimeout: shellrunner.ShortDefaultTimeout,
			expectedTimeout: shellrunner.LongDefaultTimeout,
		},
		{
			name:            testEscalateLongCaseNameConstant,
			previousTimeout: shellrunner.LongDefaultTimeout,
			expectedTimeout: shellrunner.LongDefaultTimeout,
		},
		{
			name:            testEscalateExtendedCaseNameConstant,
			previousTimeout: testExtendedTimeoutConstant,
			expectedTimeout: testExtendedTimeoutConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			escalation := shellrunner.NewTimeoutEscalation()
			require.Equal(testInstance, testCase.expectedTimeout, escalation.Increase(testCase.previousTimeout))
		})
	}
}

func TestTimeoutEscalationStartingTimeout(testInstance *testing.T) {
	escalation := shellrunner.NewTimeoutEscalation()
	require.Equal(testInstance, shellrunner.ShortDefaultTimeout, escalation.StartingTimeout())

	escalation.Increase(shellrunner.ShortDefaultTimeout)
	require.Equal(testInstance, shellrunner.ShortDefaultTimeout, escalation.StartingTimeout())

	escalation.Increase(shellrunner.ShortDefaultTimeout)
	require.Equal(testInstance, shellrunner.LongDefaultTimeout, escalation.StartingTimeout())

	escalation.Reset()
	require.Equal(testInstance, shellrunner.ShortDefaultTimeout, escalation.StartingTimeout())
}

func TestTimeoutEscalationConcurrentIncrease(testInstance *testing.T) {
	escalation := shellrunner.NewTimeoutEscalation()

	var waitGroup sync.WaitGroup
	for workerIndex := 0; workerIndex < testEscalationWorkerCountConstant; workerIndex++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			for iterationIndex := 0; iterationIndex < testEscalationIterationCountConstant; iterationIndex++ {
				escalation.Increase(shellrunner.ShortDefaultTimeout)
			}
		}()
	}
	waitGroup.Wait()

	require.Equal(testInstance, shellrunner.LongDefaultTimeout, escalation.StartingTimeout())
}

func TestLastOutputCell(testInstance *testing.T) {
	outputCell := shellrunner.NewLastOutputCell()
	require.Empty(testInstance, outputCell.Load())

	outputCell.Store(testRetainedOutputConstant)
	require.Equal(testInstance, testRetainedOutputConstant, outputCell.Load())

	outputCell.Store(testReplacedOutputConstant)
	require.Equal(testInstance, testReplacedOutputConstant, outputCell.Load())
}
