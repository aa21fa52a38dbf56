package loading

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoordinatorCountMatchesNetOperations(testingT *testing.T) {
	testCases := []struct {
		name        string
		startCalls  int
		stopCalls   int
		expectCount int
	}{
		{name: "no operations", startCalls: 0, stopCalls: 0, expectCount: 0},
		{name: "single outstanding", startCalls: 1, stopCalls: 0, expectCount: 1},
		{name: "balanced", startCalls: 3, stopCalls: 3, expectCount: 0},
		{name: "overlapping", startCalls: 5, stopCalls: 2, expectCount: 3},
		{name: "more stops than starts clamps at zero", startCalls: 2, stopCalls: 6, expectCount: 0},
		{name: "only stops clamps at zero", startCalls: 0, stopCalls: 4, expectCount: 0},
	}

	for _, testCase := range testCases {
		testingT.Run(testCase.name, func(testingT *testing.T) {
			coordinator := NewCoordinator()
			for callIndex := 0; callIndex < testCase.startCalls; callIndex++ {
				coordinator.Start()
			}
			for callIndex := 0; callIndex < testCase.stopCalls; callIndex++ {
				coordinator.Stop()
			}
			require.Equal(testingT, testCase.expectCount, coordinator.Count())
		})
	}
}

func TestCoordinatorBroadcastNeverNegative(testingT *testing.T) {
	coordinator := NewCoordinator()

	var observedCounts []int
	unsubscribe := coordinator.Subscribe(func(outstandingCount int) {
		observedCounts = append(observedCounts, outstandingCount)
	})
	defer unsubscribe()

	coordinator.Stop()
	coordinator.Stop()
	coordinator.Start()
	coordinator.Stop()
	coordinator.Stop()

	for _, observedCount := range observedCounts {
		require.GreaterOrEqual(testingT, observedCount, 0)
	}
	require.Equal(testingT, 0, coordinator.Count())
}

func TestCoordinatorLateSubscriberReceivesCurrentCount(testingT *testing.T) {
	coordinator := NewCoordinator()
	coordinator.Start()
	coordinator.Start()
	coordinator.Stop()
	coordinator.Start()

	var immediateCount int
	unsubscribe := coordinator.Subscribe(func(outstandingCount int) {
		immediateCount = outstandingCount
	})
	defer unsubscribe()

	require.Equal(testingT, 2, immediateCount)
}

func TestCoordinatorUnsubscribeIsIdempotent(testingT *testing.T) {
	coordinator := NewCoordinator()

	var retainedNotifications int
	retainedUnsubscribe := coordinator.Subscribe(func(int) {
		retainedNotifications++
	})
	defer retainedUnsubscribe()

	removedUnsubscribe := coordinator.Subscribe(func(int) {})
	removedUnsubscribe()
	require.NotPanics(testingT, removedUnsubscribe)
	require.NotPanics(testingT, removedUnsubscribe)

	retainedBefore := retainedNotifications
	coordinator.Start()
	require.Equal(testingT, retainedBefore+1, retainedNotifications)
}

func TestCoordinatorConcurrentBracketsSettleAtZero(testingT *testing.T) {
	coordinator := NewCoordinator()

	const workerCount = 32
	var waitGroup sync.WaitGroup
	waitGroup.Add(workerCount)
	for workerIndex := 0; workerIndex < workerCount; workerIndex++ {
		go func() {
			defer waitGroup.Done()
			coordinator.Start()
			coordinator.Stop()
		}()
	}
	waitGroup.Wait()

	require.Equal(testingT, 0, coordinator.Count())
}

func TestCoordinatorDeliveriesArriveInTransitionOrder(testingT *testing.T) {
	coordinator := NewCoordinator()

	var observedMutex sync.Mutex
	var observedCounts []int
	unsubscribe := coordinator.Subscribe(func(outstandingCount int) {
		observedMutex.Lock()
		observedCounts = append(observedCounts, outstandingCount)
		observedMutex.Unlock()
	})
	defer unsubscribe()

	const workerCount = 32
	var waitGroup sync.WaitGroup
	waitGroup.Add(workerCount)
	for workerIndex := 0; workerIndex < workerCount; workerIndex++ {
		go func() {
			defer waitGroup.Done()
			coordinator.Start()
			coordinator.Stop()
		}()
	}
	waitGroup.Wait()

	observedMutex.Lock()
	defer observedMutex.Unlock()
	require.NotEmpty(testingT, observedCounts)
	for deliveryIndex := 1; deliveryIndex < len(observedCounts); deliveryIndex++ {
		step := observedCounts[deliveryIndex] - observedCounts[deliveryIndex-1]
		require.Contains(testingT, []int{-1, 1}, step)
	}
	require.Equal(testingT, coordinator.Count(), observedCounts[len(observedCounts)-1])
	require.Equal(testingT, 0, observedCounts[len(observedCounts)-1])
}
