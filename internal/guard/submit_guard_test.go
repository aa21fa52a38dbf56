package guard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testSubmissionKey      = "client-create:draft-1"
	testOtherSubmissionKey = "client-create:draft-2"
)

func TestSubmitGuardRejectsDuplicateWhileOutstanding(testingT *testing.T) {
	submitGuard := NewSubmitGuard()

	require.True(testingT, submitGuard.Begin(testSubmissionKey))
	require.False(testingT, submitGuard.Begin(testSubmissionKey))

	submitGuard.End(testSubmissionKey)
	require.True(testingT, submitGuard.Begin(testSubmissionKey))
}

func TestSubmitGuardKeysAreIndependent(testingT *testing.T) {
	submitGuard := NewSubmitGuard()

	require.True(testingT, submitGuard.Begin(testSubmissionKey))
	require.True(testingT, submitGuard.Begin(testOtherSubmissionKey))
}

func TestSubmitGuardEndWithoutBeginIsNoOp(testingT *testing.T) {
	submitGuard := NewSubmitGuard()
	require.NotPanics(testingT, func() {
		submitGuard.End(testSubmissionKey)
	})
	require.True(testingT, submitGuard.Begin(testSubmissionKey))
}

func TestSubmitGuardAdmitsExactlyOneConcurrentBegin(testingT *testing.T) {
	submitGuard := NewSubmitGuard()

	const attemptCount = 16
	admitted := 0
	var admittedMutex sync.Mutex
	var waitGroup sync.WaitGroup
	waitGroup.Add(attemptCount)
	for attemptIndex := 0; attemptIndex < attemptCount; attemptIndex++ {
		go func() {
			defer waitGroup.Done()
			if submitGuard.Begin(testSubmissionKey) {
				admittedMutex.Lock()
				admitted++
				admittedMutex.Unlock()
			}
		}()
	}
	waitGroup.Wait()

	require.Equal(testingT, 1, admitted)
}
